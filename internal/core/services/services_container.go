package services

import (
	portsrepo "github.com/SscSPs/claims_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/claims_app/internal/core/ports/services"
	"github.com/SscSPs/claims_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Staff = NewStaffService(repos.StaffRepo)
	container.Project = NewProjectService(repos.ProjectRepo, repos.StaffRepo)
	container.Claim = NewClaimService(repos.ClaimRepo, WithNotifier(notifier))
	container.Reminder = NewReminderService(repos.ClaimRepo, notifier)

	container.Token = NewTokenService(cfg)
	container.Auth = NewAuthService(container.Staff, container.Token)

	return container
}
