package services

import (
	portsrepo "github.com/salesync/salesync_backend/internal/core/ports/repositories"
	portssvc "github.com/salesync/salesync_backend/internal/core/ports/services"
	"github.com/salesync/salesync_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Product = NewProductService(repos.ProductRepo)

	// The ledger service is initialized before the order-level services since
	// the summary projection reads through it.
	container.Ledger = NewLedgerService(repos.LedgerRepo)
	container.EntityLedger = NewEntityLedgerService(repos.EntityLedgerRepo)
	container.Summary = NewSummaryService(container.Ledger)

	container.Sales = NewSalesService(repos.SalesOrderRepo, repos.ProductRepo, cfg.DefaultCashAccount)
	container.Purchase = NewPurchaseService(repos.PurchaseOrderRepo, repos.ProductRepo, cfg.DefaultCashAccount)
	container.Expense = NewExpenseService(repos.ExpenseRepo, cfg.DefaultCashAccount)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.SalesOrderRepo, repos.PurchaseOrderRepo, cfg.DefaultCashAccount)
	container.Return = NewReturnService(repos.SalesReturnRepo, repos.PurchaseReturnRepo, repos.ProductRepo, cfg.DefaultCashAccount)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.LedgerSvcFacade  = (*ledgerService)(nil)
	_ portssvc.SummarySvcFacade = (*summaryService)(nil)
)
