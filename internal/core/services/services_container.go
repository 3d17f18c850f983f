package services

import (
	"time"

	portsrepo "github.com/tempushq/timesheet_backend/internal/core/ports/repositories"
	portssvc "github.com/tempushq/timesheet_backend/internal/core/ports/services"
)

// ContainerDeps bundles the driven adapters the services are wired from.
type ContainerDeps struct {
	EntryRepo    portsrepo.TimeEntryRepository
	LedgerRepo   portsrepo.PostponementRepository
	EmployeeRepo portsrepo.EmployeeRepository
	SettingsRepo portsrepo.SettingsRepository
	PMS          portsrepo.PMSGateway
	Notifier     portsrepo.Notifier
	Broadcaster  portsrepo.Broadcaster
	Location     *time.Location
}

// NewServiceContainer creates a service container with properly initialized
// dependencies. The reconciler is built first since the submission gate
// consults it for warnings.
func NewServiceContainer(deps ContainerDeps) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Reconciler = NewReconcilerService(deps.PMS, deps.EntryRepo, deps.EmployeeRepo, deps.SettingsRepo, deps.Location)
	container.TimeEntry = NewTimeEntryService(deps.EntryRepo, deps.PMS)
	container.Approval = NewApprovalService(deps.EntryRepo, deps.EmployeeRepo, deps.Notifier, deps.Broadcaster)
	container.Postponement = NewPostponementService(deps.LedgerRepo, deps.EmployeeRepo, deps.PMS, deps.Notifier, deps.Location)
	container.Submission = NewSubmissionService(deps.EntryRepo, container.Reconciler, deps.Broadcaster, deps.Location)
	container.Settings = NewSettingsService(deps.SettingsRepo)

	return container
}
