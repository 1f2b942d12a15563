package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salesync/salesync_backend/internal/apperrors"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portssvc "github.com/salesync/salesync_backend/internal/core/ports/services"
	"github.com/salesync/salesync_backend/internal/core/services"
	"github.com/salesync/salesync_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, entityEntry domain.EntityLedgerEntry, cashEntry domain.LedgerEntry, settle func(ctx context.Context, tx pgx.Tx) error) error {
	args := m.Called(ctx, payment, entityEntry, cashEntry, settle)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

// --- Mock PurchaseOrderRepository ---
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) SaveReceipt(ctx context.Context, order domain.PurchaseOrder, cashEntry *domain.LedgerEntry) error {
	args := m.Called(ctx, order, cashEntry)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, tx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, orderID string, amountPaid, amountDue decimal.Decimal, status domain.PaymentStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, orderID, amountPaid, amountDue, status, userID, now)
	return args.Error(0)
}

// --- Test Suite ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo  *MockPaymentRepository
	mockSalesRepo    *MockSalesOrderRepository
	mockPurchaseRepo *MockPurchaseOrderRepository
	service          portssvc.PaymentSvcFacade
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockSalesRepo = new(MockSalesOrderRepository)
	suite.mockPurchaseRepo = new(MockPurchaseOrderRepository)
	suite.service = services.NewPaymentService(suite.mockPaymentRepo, suite.mockSalesRepo, suite.mockPurchaseRepo, "Cash at Hand")
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_CustomerIsCashIn() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		EntityType:  "CUSTOMER",
		EntityName:  "Acme Traders",
		TotalAmount: d("500"),
		AmountPaid:  d("200"),
	}

	suite.mockPaymentRepo.On("SavePayment", ctx,
		mock.MatchedBy(func(p domain.Payment) bool {
			return p.PaymentStatus == domain.PaymentPartiallyPaid && p.AccountName == "Cash at Hand"
		}),
		mock.MatchedBy(func(e domain.EntityLedgerEntry) bool {
			return e.CreditAmount.Equal(d("200")) && e.DebitAmount.IsZero()
		}),
		mock.MatchedBy(func(e domain.LedgerEntry) bool {
			return e.Direction == domain.CashIn && e.RefType == domain.RefPayment
		}),
		mock.Anything,
	).Return(nil).Once()

	payment, err := suite.service.CreatePayment(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.NotEmpty(payment.PaymentNo)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_SupplierIsCashOut() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		EntityType:  "SUPPLIER",
		EntityName:  "Metro Wholesale",
		TotalAmount: d("300"),
		AmountPaid:  d("300"),
	}

	suite.mockPaymentRepo.On("SavePayment", ctx,
		mock.MatchedBy(func(p domain.Payment) bool {
			return p.PaymentStatus == domain.PaymentPaid
		}),
		mock.MatchedBy(func(e domain.EntityLedgerEntry) bool {
			return e.DebitAmount.Equal(d("300")) && e.CreditAmount.IsZero()
		}),
		mock.MatchedBy(func(e domain.LedgerEntry) bool {
			return e.Direction == domain.CashOut
		}),
		mock.Anything,
	).Return(nil).Once()

	payment, err := suite.service.CreatePayment(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, payment.PaymentStatus)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_InvalidEntityType() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		EntityType:  "INTERNAL",
		EntityName:  "Office",
		TotalAmount: d("50"),
		AmountPaid:  d("50"),
	}

	payment, err := suite.service.CreatePayment(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrInvalidEntityType)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		EntityType:  "CUSTOMER",
		EntityName:  "Acme Traders",
		TotalAmount: d("100"),
		AmountPaid:  d("0"),
	}

	_, err := suite.service.CreatePayment(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_RefTypeRequiresRefID() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		EntityType:  "CUSTOMER",
		EntityName:  "Acme Traders",
		RefType:     string(domain.RefSaleOrder),
		TotalAmount: d("100"),
		AmountPaid:  d("100"),
	}

	_, err := suite.service.CreatePayment(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_OrderReferenceBuildsSettleCallback() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		EntityType:  "CUSTOMER",
		EntityName:  "Acme Traders",
		RefType:     string(domain.RefSaleOrder),
		RefID:       "order-1",
		TotalAmount: d("500"),
		AmountPaid:  d("500"),
	}

	suite.mockPaymentRepo.On("SavePayment", ctx,
		mock.AnythingOfType("domain.Payment"),
		mock.AnythingOfType("domain.EntityLedgerEntry"),
		mock.AnythingOfType("domain.LedgerEntry"),
		mock.MatchedBy(func(settle func(ctx context.Context, tx pgx.Tx) error) bool {
			return settle != nil
		}),
	).Return(nil).Once()

	payment, err := suite.service.CreatePayment(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_SettleReadsOrderUnderRowLock() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		EntityType:  "CUSTOMER",
		EntityName:  "Acme Traders",
		RefType:     string(domain.RefSaleOrder),
		RefID:       "order-1",
		TotalAmount: d("500"),
		AmountPaid:  d("200"),
	}

	// 100 already settled by an earlier payment. The callback must pick that
	// up through the locked in-transaction read, not a stale pool read.
	order := &domain.SalesOrder{
		OrderID:    "order-1",
		GrandTotal: d("500"),
		AmountPaid: d("100"),
	}
	suite.mockSalesRepo.On("FindOrderByIDForUpdate", ctx, mock.Anything, "order-1").
		Return(order, nil).Once()
	suite.mockSalesRepo.On("UpdatePaymentInTx", ctx, mock.Anything, "order-1",
		mock.MatchedBy(func(paid decimal.Decimal) bool { return paid.Equal(d("300")) }),
		mock.MatchedBy(func(due decimal.Decimal) bool { return due.Equal(d("200")) }),
		domain.PaymentPartiallyPaid,
		"user-1",
		mock.AnythingOfType("time.Time"),
	).Return(nil).Once()

	var settle func(ctx context.Context, tx pgx.Tx) error
	suite.mockPaymentRepo.On("SavePayment", ctx,
		mock.AnythingOfType("domain.Payment"),
		mock.AnythingOfType("domain.EntityLedgerEntry"),
		mock.AnythingOfType("domain.LedgerEntry"),
		mock.Anything,
	).Run(func(args mock.Arguments) {
		settle = args.Get(4).(func(ctx context.Context, tx pgx.Tx) error)
	}).Return(nil).Once()

	_, err := suite.service.CreatePayment(ctx, req, "user-1")
	suite.Require().NoError(err)
	suite.Require().NotNil(settle)

	suite.Require().NoError(settle(ctx, nil))
	suite.mockSalesRepo.AssertExpectations(suite.T())
	suite.mockSalesRepo.AssertNotCalled(suite.T(), "FindOrderByID", mock.Anything, mock.Anything)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
