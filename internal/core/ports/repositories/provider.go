package repositories

// RepositoryProvider bundles the repository facades so they can be wired into
// the service container in one place.
type RepositoryProvider struct {
	AccountRepo        AccountRepositoryFacade
	ProductRepo        ProductRepositoryFacade
	LedgerRepo         LedgerRepositoryFacade
	EntityLedgerRepo   EntityLedgerRepositoryFacade
	SalesOrderRepo     SalesOrderRepository
	PurchaseOrderRepo  PurchaseOrderRepository
	ExpenseRepo        ExpenseRepository
	PaymentRepo        PaymentRepository
	SalesReturnRepo    SalesReturnRepository
	PurchaseReturnRepo PurchaseReturnRepository
}
