package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/salesync/salesync_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every PostgreSQL repository against one shared
// pool. The ledger repository needs account row locking, and the order,
// payment, and return repositories compose stock and ledger writes into their
// units of work, so those cross-dependencies are threaded here.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := NewAccountRepository(pool)
	productRepo := NewProductRepository(pool)
	ledgerRepo := NewLedgerRepository(pool, accountRepo)
	entityLedgerRepo := NewEntityLedgerRepository(pool)

	return portsrepo.RepositoryProvider{
		AccountRepo:        accountRepo,
		ProductRepo:        productRepo,
		LedgerRepo:         ledgerRepo,
		EntityLedgerRepo:   entityLedgerRepo,
		SalesOrderRepo:     NewSalesOrderRepository(pool, productRepo, ledgerRepo),
		PurchaseOrderRepo:  NewPurchaseOrderRepository(pool, productRepo, ledgerRepo),
		ExpenseRepo:        NewExpenseRepository(pool, ledgerRepo),
		PaymentRepo:        NewPaymentRepository(pool, ledgerRepo, entityLedgerRepo),
		SalesReturnRepo:    NewSalesReturnRepository(pool, productRepo, ledgerRepo, entityLedgerRepo),
		PurchaseReturnRepo: NewPurchaseReturnRepository(pool, productRepo, ledgerRepo, entityLedgerRepo),
	}
}
