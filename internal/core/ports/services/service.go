package services

// ServiceContainer bundles every service implementation for route wiring.
type ServiceContainer struct {
	Workflow   WorkflowSvc
	Wage       WageSvc
	WorkLog    WorkLogSvc
	Worker     WorkerSvc
	Department DepartmentSvc
}
