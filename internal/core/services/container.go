package services

import (
	portsrepo "github.com/himaltex/production_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/himaltex/production_tracking_app/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Workflow:   NewWorkflowService(repos.WorkflowRepo, repos.DepartmentRepo),
		Wage:       NewWageService(repos.WorkLogRepo, repos.WorkerRepo, repos.DepartmentRepo),
		WorkLog:    NewWorkLogService(repos.WorkLogRepo, repos.WorkerRepo, repos.DepartmentRepo),
		Worker:     NewWorkerService(repos.WorkerRepo),
		Department: NewDepartmentService(repos.DepartmentRepo),
	}
}
