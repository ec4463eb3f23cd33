package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	PurchaseRepo      PurchaseRepositoryFacade
	BankPaymentRepo   BankPaymentRepositoryFacade
	CashPaymentRepo   CashPaymentRepositoryFacade
	InvoiceRepo       InvoiceRepositoryFacade
	PlotSaleRepo      PlotSaleRepositoryFacade
	ItemRepo          ItemRepositoryFacade
	SupplierRepo      SupplierRepositoryFacade
	CustomerRepo      CustomerRepositoryFacade
	ProjectRepo       ProjectRepositoryFacade
	ChangeRequestRepo ChangeRequestRepositoryFacade
	SequenceRepo      SequenceRepository
}
