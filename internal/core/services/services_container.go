package services

import (
	portsrepo "github.com/sitebooks/site_books_app/internal/core/ports/repositories"
	portssvc "github.com/sitebooks/site_books_app/internal/core/ports/services"
	"github.com/sitebooks/site_books_app/internal/platform/cache"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, reportCache cache.ReportCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.MasterData = NewMasterDataService(repos)
	container.Posting = NewPostingService(repos, reportCache)
	container.Ledger = NewLedgerService(repos)
	container.Reconciliation = NewReconciliationService(repos, reportCache)
	container.Reporting = NewReportingService(repos, reportCache)
	container.Approval = NewApprovalService(repos.ChangeRequestRepo, container.Posting, container.MasterData)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.PostingSvcFacade        = (*postingService)(nil)
	_ portssvc.LedgerService           = (*ledgerService)(nil)
	_ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)
	_ portssvc.ReportingService        = (*reportingService)(nil)
	_ portssvc.ApprovalSvcFacade       = (*approvalService)(nil)
	_ portssvc.MasterDataSvcFacade     = (*masterDataService)(nil)
)
