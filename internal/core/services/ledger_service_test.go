package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salesync/salesync_backend/internal/apperrors"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portsrepo "github.com/salesync/salesync_backend/internal/core/ports/repositories"
	portssvc "github.com/salesync/salesync_backend/internal/core/ports/services"
	"github.com/salesync/salesync_backend/internal/core/services"
	"github.com/salesync/salesync_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByAccountName(ctx context.Context, accountName string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByEntity(ctx context.Context, filter portsrepo.LedgerEntryFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLedgerRepository
	service  portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLedgerRepository)
	suite.service = services.NewLedgerService(suite.mockRepo)
}

func (suite *LedgerServiceTestSuite) validRequest() dto.RecordTransactionRequest {
	return dto.RecordTransactionRequest{
		AccountName: "Cash at Hand",
		Amount:      decimal.RequireFromString("150.00"),
		Direction:   domain.CashIn,
		RefType:     string(domain.RefSaleOrder),
		RefID:       "order-1",
		EntityType:  string(domain.EntityCustomer),
		EntityName:  "Acme Traders",
		TrnRefNo:    "INV-001",
	}
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_Success() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockRepo.On("AppendEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.AccountName == req.AccountName &&
			e.Amount.Equal(req.Amount) &&
			e.Direction == domain.CashIn &&
			e.RefType == domain.RefSaleOrder &&
			e.EntityType == domain.EntityCustomer &&
			e.EntryID != "" &&
			e.FinancialYear != "" &&
			!e.TrnDate.IsZero()
	})).Return(&domain.LedgerEntry{
		EntryID:      "entry-1",
		AccountName:  req.AccountName,
		Amount:       req.Amount,
		Direction:    domain.CashIn,
		BalanceAfter: decimal.RequireFromString("150.00"),
	}, nil).Once()

	entry, err := suite.service.RecordTransaction(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.True(entry.BalanceAfter.Equal(decimal.RequireFromString("150.00")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_NegativeAmount() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Amount = decimal.RequireFromString("-5")

	entry, err := suite.service.RecordTransaction(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_InvalidDirection() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Direction = "SIDEWAYS"

	_, err := suite.service.RecordTransaction(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidDirection)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_InvalidRefType() {
	ctx := context.Background()
	req := suite.validRequest()
	req.RefType = "LOTTERY_WIN"

	_, err := suite.service.RecordTransaction(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidReferenceType)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_InvalidEntityType() {
	ctx := context.Background()
	req := suite.validRequest()
	req.EntityType = "ALIEN"

	_, err := suite.service.RecordTransaction(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidEntityType)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_ZeroAmountAllowed() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Amount = decimal.Zero

	suite.mockRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).
		Return(&domain.LedgerEntry{EntryID: "entry-0"}, nil).Once()

	entry, err := suite.service.RecordTransaction(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_RepoError() {
	ctx := context.Background()
	req := suite.validRequest()
	expectedErr := assert.AnError

	suite.mockRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).
		Return(nil, expectedErr).Once()

	entry, err := suite.service.RecordTransaction(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetEntriesByEntity_DateRangeInclusive() {
	ctx := context.Background()

	suite.mockRepo.On("FindEntriesByEntity", ctx, mock.MatchedBy(func(f portsrepo.LedgerEntryFilter) bool {
		if f.FromDate == nil || f.ToDate == nil {
			return false
		}
		from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		// The upper bound covers the whole of the named day.
		return f.FromDate.Equal(from) &&
			f.ToDate.After(time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)) &&
			f.ToDate.Before(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	})).Return([]domain.LedgerEntry{}, nil).Once()

	_, err := suite.service.GetEntriesByEntity(ctx, domain.EntityCustomer, "Acme Traders", "2025-01-01", "2025-01-31")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetEntriesByEntity_BadDate() {
	ctx := context.Background()

	_, err := suite.service.GetEntriesByEntity(ctx, domain.EntityCustomer, "Acme Traders", "01/01/2025", "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindEntriesByEntity", mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
