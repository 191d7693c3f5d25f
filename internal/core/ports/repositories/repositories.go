package repositories

// RepositoryProvider bundles every repository implementation so wiring code
// can pass them around as a unit.
type RepositoryProvider struct {
	WorkflowRepo   WorkflowRepository
	WorkLogRepo    WorkLogRepository
	WorkerRepo     WorkerRepository
	DepartmentRepo DepartmentRepository
}
