package services_test

import (
	"context"
	"testing"

	"github.com/salesync/salesync_backend/internal/apperrors"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portssvc "github.com/salesync/salesync_backend/internal/core/ports/services"
	"github.com/salesync/salesync_backend/internal/core/services"
	"github.com/salesync/salesync_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SalesReturnRepository ---
type MockSalesReturnRepository struct {
	mock.Mock
}

func (m *MockSalesReturnRepository) SaveReturn(ctx context.Context, ret domain.SalesReturn, entityEntry domain.EntityLedgerEntry, cashEntry domain.LedgerEntry) error {
	args := m.Called(ctx, ret, entityEntry, cashEntry)
	return args.Error(0)
}

func (m *MockSalesReturnRepository) FindByReturnRefNo(ctx context.Context, returnRefNo string) (*domain.SalesReturn, error) {
	args := m.Called(ctx, returnRefNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesReturn), args.Error(1)
}

// --- Mock PurchaseReturnRepository ---
type MockPurchaseReturnRepository struct {
	mock.Mock
}

func (m *MockPurchaseReturnRepository) SaveReturn(ctx context.Context, ret domain.PurchaseReturn, entityEntry domain.EntityLedgerEntry, cashEntry domain.LedgerEntry) error {
	args := m.Called(ctx, ret, entityEntry, cashEntry)
	return args.Error(0)
}

func (m *MockPurchaseReturnRepository) FindByReturnRefNo(ctx context.Context, returnRefNo string) (*domain.PurchaseReturn, error) {
	args := m.Called(ctx, returnRefNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseReturn), args.Error(1)
}

// --- Test Suite ---
type ReturnServiceTestSuite struct {
	suite.Suite
	mockSalesRepo    *MockSalesReturnRepository
	mockPurchaseRepo *MockPurchaseReturnRepository
	mockProductRepo  *MockProductReader
	service          portssvc.ReturnSvcFacade
}

func (suite *ReturnServiceTestSuite) SetupTest() {
	suite.mockSalesRepo = new(MockSalesReturnRepository)
	suite.mockPurchaseRepo = new(MockPurchaseReturnRepository)
	suite.mockProductRepo = new(MockProductReader)
	suite.service = services.NewReturnService(suite.mockSalesRepo, suite.mockPurchaseRepo, suite.mockProductRepo, "Cash at Hand")
}

func (suite *ReturnServiceTestSuite) TestProcessSalesReturn_Success() {
	ctx := context.Background()
	req := dto.CreateSalesReturnRequest{
		ReturnRefNo:  "SR-001",
		CustomerName: "Acme Traders",
		Items: []dto.SalesReturnItemRequest{
			{ProductID: "p1", QuantityReturned: 2, UnitPrice: d("50")},
			{ProductID: "p2", QuantityReturned: 1, UnitPrice: d("30")},
		},
	}

	suite.mockSalesRepo.On("FindByReturnRefNo", ctx, "SR-001").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{"p1", "p2"}).
		Return(map[string]domain.Product{
			"p1": {ProductID: "p1", Name: "Soap"},
			"p2": {ProductID: "p2", Name: "Shampoo"},
		}, nil).Once()
	suite.mockSalesRepo.On("SaveReturn", ctx,
		mock.MatchedBy(func(r domain.SalesReturn) bool {
			return r.TotalAmount.Equal(d("130")) && len(r.Items) == 2 && r.ReturnRefNo == "SR-001"
		}),
		mock.MatchedBy(func(e domain.EntityLedgerEntry) bool {
			// The customer's receivable shrinks: a credit row.
			return e.EntityType == domain.EntityCustomer &&
				e.CreditAmount.Equal(d("130")) &&
				e.DebitAmount.IsZero() &&
				e.TrnType == domain.RefSaleReturn
		}),
		mock.MatchedBy(func(e domain.LedgerEntry) bool {
			// The refund leaves the till.
			return e.Direction == domain.CashOut &&
				e.Amount.Equal(d("130")) &&
				e.RefType == domain.RefSaleReturn &&
				e.AccountName == "Cash at Hand"
		}),
	).Return(nil).Once()

	ret, err := suite.service.ProcessSalesReturn(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(ret)
	suite.True(ret.TotalAmount.Equal(d("130")))
	suite.mockSalesRepo.AssertExpectations(suite.T())
}

func (suite *ReturnServiceTestSuite) TestProcessSalesReturn_DuplicateRefNo() {
	ctx := context.Background()
	req := dto.CreateSalesReturnRequest{
		ReturnRefNo:  "SR-001",
		CustomerName: "Acme Traders",
		Items: []dto.SalesReturnItemRequest{
			{ProductID: "p1", QuantityReturned: 1, UnitPrice: d("50")},
		},
	}

	suite.mockSalesRepo.On("FindByReturnRefNo", ctx, "SR-001").
		Return(&domain.SalesReturn{ReturnRefNo: "SR-001"}, nil).Once()

	ret, err := suite.service.ProcessSalesReturn(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(ret)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockSalesRepo.AssertNotCalled(suite.T(), "SaveReturn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReturnServiceTestSuite) TestProcessPurchaseReturn_Success() {
	ctx := context.Background()
	req := dto.CreatePurchaseReturnRequest{
		ReturnRefNo:  "PR-001",
		SupplierName: "Metro Wholesale",
		Items: []dto.PurchaseReturnItemRequest{
			{ProductID: "p1", QuantityReturned: 3, UnitCost: d("40")},
		},
	}

	suite.mockPurchaseRepo.On("FindByReturnRefNo", ctx, "PR-001").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{"p1"}).
		Return(map[string]domain.Product{
			"p1": {ProductID: "p1", Name: "Soap"},
		}, nil).Once()
	suite.mockPurchaseRepo.On("SaveReturn", ctx,
		mock.MatchedBy(func(r domain.PurchaseReturn) bool {
			return r.TotalAmount.Equal(d("120")) && r.SupplierName == "Metro Wholesale"
		}),
		mock.MatchedBy(func(e domain.EntityLedgerEntry) bool {
			// The payable shrinks: a debit row.
			return e.EntityType == domain.EntitySupplier &&
				e.DebitAmount.Equal(d("120")) &&
				e.CreditAmount.IsZero() &&
				e.TrnType == domain.RefPurchaseReturn
		}),
		mock.MatchedBy(func(e domain.LedgerEntry) bool {
			// The supplier credit flows back in.
			return e.Direction == domain.CashIn &&
				e.Amount.Equal(d("120")) &&
				e.RefType == domain.RefPurchaseReturn
		}),
	).Return(nil).Once()

	ret, err := suite.service.ProcessPurchaseReturn(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(ret)
	suite.True(ret.TotalAmount.Equal(d("120")))
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *ReturnServiceTestSuite) TestProcessPurchaseReturn_DuplicateRefNo() {
	ctx := context.Background()
	req := dto.CreatePurchaseReturnRequest{
		ReturnRefNo:  "PR-001",
		SupplierName: "Metro Wholesale",
		Items: []dto.PurchaseReturnItemRequest{
			{ProductID: "p1", QuantityReturned: 1, UnitCost: d("40")},
		},
	}

	suite.mockPurchaseRepo.On("FindByReturnRefNo", ctx, "PR-001").
		Return(&domain.PurchaseReturn{ReturnRefNo: "PR-001"}, nil).Once()

	ret, err := suite.service.ProcessPurchaseReturn(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(ret)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "SaveReturn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReturnServiceTestSuite) TestProcessSalesReturn_UnknownProduct() {
	ctx := context.Background()
	req := dto.CreateSalesReturnRequest{
		ReturnRefNo:  "SR-002",
		CustomerName: "Acme Traders",
		Items: []dto.SalesReturnItemRequest{
			{ProductID: "ghost", QuantityReturned: 1, UnitPrice: d("10")},
		},
	}

	suite.mockSalesRepo.On("FindByReturnRefNo", ctx, "SR-002").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{"ghost"}).
		Return(map[string]domain.Product{}, nil).Once()

	ret, err := suite.service.ProcessSalesReturn(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(ret)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSalesRepo.AssertNotCalled(suite.T(), "SaveReturn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReturnServiceTestSuite) TestProcessPurchaseReturn_MoreThanOnHandIsAccepted() {
	ctx := context.Background()
	req := dto.CreatePurchaseReturnRequest{
		ReturnRefNo:  "PR-002",
		SupplierName: "Metro Wholesale",
		Items: []dto.PurchaseReturnItemRequest{
			{ProductID: "p1", QuantityReturned: 5, UnitCost: d("20")},
		},
	}

	suite.mockPurchaseRepo.On("FindByReturnRefNo", ctx, "PR-002").
		Return(nil, apperrors.ErrNotFound).Once()
	// Only 3 on hand. The reduction is not guarded and stock may go negative,
	// so the return still goes through in full.
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{"p1"}).
		Return(map[string]domain.Product{
			"p1": {ProductID: "p1", Name: "Soap", Quantity: 3},
		}, nil).Once()
	suite.mockPurchaseRepo.On("SaveReturn", ctx,
		mock.MatchedBy(func(r domain.PurchaseReturn) bool {
			return r.TotalAmount.Equal(d("100")) && r.Items[0].QuantityReturned == 5
		}),
		mock.AnythingOfType("domain.EntityLedgerEntry"),
		mock.AnythingOfType("domain.LedgerEntry"),
	).Return(nil).Once()

	ret, err := suite.service.ProcessPurchaseReturn(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(ret)
	suite.True(ret.TotalAmount.Equal(d("100")))
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func TestReturnServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReturnServiceTestSuite))
}
