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

// --- Mock SalesOrderRepository ---
type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) SaveCheckout(ctx context.Context, order domain.SalesOrder, cashEntry *domain.LedgerEntry) error {
	args := m.Called(ctx, order, cashEntry)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.SalesOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.SalesOrder, error) {
	args := m.Called(ctx, tx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, orderID string, amountPaid, amountDue decimal.Decimal, status domain.PaymentStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, orderID, amountPaid, amountDue, status, userID, now)
	return args.Error(0)
}

// --- Mock ProductReader ---
type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductReader) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

// --- Test Suite ---
type SalesServiceTestSuite struct {
	suite.Suite
	mockOrderRepo   *MockSalesOrderRepository
	mockProductRepo *MockProductReader
	service         portssvc.SalesSvcFacade
}

func (suite *SalesServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockSalesOrderRepository)
	suite.mockProductRepo = new(MockProductReader)
	suite.service = services.NewSalesService(suite.mockOrderRepo, suite.mockProductRepo, "Cash at Hand")
}

func (suite *SalesServiceTestSuite) stockedProducts() map[string]domain.Product {
	return map[string]domain.Product{
		"p1": {ProductID: "p1", Name: "Soap", Quantity: 10, SellingPrice: d("50"), IsActive: true},
		"p2": {ProductID: "p2", Name: "Shampoo", Quantity: 4, SellingPrice: d("120"), IsActive: true},
	}
}

func (suite *SalesServiceTestSuite) TestCheckout_Success() {
	ctx := context.Background()
	req := dto.CheckoutRequest{
		CustomerName: "Acme Traders",
		Discount:     d("10"),
		AmountPaid:   d("200"),
		Items: []dto.CheckoutItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: d("50")},
			{ProductID: "p2", Quantity: 1, UnitPrice: d("120")},
		},
	}

	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{"p1", "p2"}).
		Return(suite.stockedProducts(), nil).Once()
	suite.mockOrderRepo.On("SaveCheckout", ctx, mock.MatchedBy(func(o domain.SalesOrder) bool {
		return o.TotalAmount.Equal(d("220")) &&
			o.GrandTotal.Equal(d("210")) &&
			o.AmountDue.Equal(d("10")) &&
			o.PaymentStatus == domain.PaymentPartiallyPaid &&
			len(o.Items) == 2
	}), mock.MatchedBy(func(e *domain.LedgerEntry) bool {
		return e != nil &&
			e.Direction == domain.CashIn &&
			e.Amount.Equal(d("200")) &&
			e.AccountName == "Cash at Hand" &&
			e.RefType == domain.RefSaleOrder &&
			e.EntityType == domain.EntityCustomer
	})).Return(nil).Once()

	order, err := suite.service.Checkout(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(order)
	suite.NotEmpty(order.InvoiceNo)
	suite.Equal("Soap", order.Items[0].ProductName)
	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *SalesServiceTestSuite) TestCheckout_NoPaymentSkipsLedger() {
	ctx := context.Background()
	req := dto.CheckoutRequest{
		CustomerName: "Acme Traders",
		Items: []dto.CheckoutItemRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: d("50")},
		},
	}

	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{"p1"}).
		Return(suite.stockedProducts(), nil).Once()
	suite.mockOrderRepo.On("SaveCheckout", ctx, mock.AnythingOfType("domain.SalesOrder"), (*domain.LedgerEntry)(nil)).
		Return(nil).Once()

	order, err := suite.service.Checkout(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPending, order.PaymentStatus)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *SalesServiceTestSuite) TestCheckout_InsufficientStockRejectsWholeBatch() {
	ctx := context.Background()
	req := dto.CheckoutRequest{
		CustomerName: "Acme Traders",
		Items: []dto.CheckoutItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: d("50")},
			{ProductID: "p2", Quantity: 5, UnitPrice: d("120")}, // only 4 on hand
		},
	}

	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{"p1", "p2"}).
		Return(suite.stockedProducts(), nil).Once()

	order, err := suite.service.Checkout(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveCheckout", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SalesServiceTestSuite) TestCheckout_UnknownProduct() {
	ctx := context.Background()
	req := dto.CheckoutRequest{
		CustomerName: "Acme Traders",
		Items: []dto.CheckoutItemRequest{
			{ProductID: "ghost", Quantity: 1, UnitPrice: d("10")},
		},
	}

	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{"ghost"}).
		Return(map[string]domain.Product{}, nil).Once()

	order, err := suite.service.Checkout(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveCheckout", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SalesServiceTestSuite) TestCheckout_InactiveProduct() {
	ctx := context.Background()
	products := map[string]domain.Product{
		"p1": {ProductID: "p1", Name: "Soap", Quantity: 10, IsActive: false},
	}
	req := dto.CheckoutRequest{
		CustomerName: "Acme Traders",
		Items: []dto.CheckoutItemRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: d("50")},
		},
	}

	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{"p1"}).
		Return(products, nil).Once()

	_, err := suite.service.Checkout(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SalesServiceTestSuite) TestDeleteOrder() {
	ctx := context.Background()
	suite.mockOrderRepo.On("DeleteOrder", ctx, "order-1").Return(nil).Once()

	err := suite.service.DeleteOrder(ctx, "order-1")

	suite.Require().NoError(err)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func TestSalesServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SalesServiceTestSuite))
}
