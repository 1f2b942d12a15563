package services

// ServiceContainer holds every service facade the handlers depend on.
type ServiceContainer struct {
	Account      AccountSvcFacade
	Product      ProductSvcFacade
	Ledger       LedgerSvcFacade
	EntityLedger EntityLedgerSvcFacade
	Summary      SummarySvcFacade
	Sales        SalesSvcFacade
	Purchase     PurchaseSvcFacade
	Expense      ExpenseSvcFacade
	Payment      PaymentSvcFacade
	Return       ReturnSvcFacade
}
