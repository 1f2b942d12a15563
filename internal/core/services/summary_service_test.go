package services_test

import (
	"context"
	"testing"

	"github.com/salesync/salesync_backend/internal/core/domain"
	portssvc "github.com/salesync/salesync_backend/internal/core/ports/services"
	"github.com/salesync/salesync_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerReaderSvc ---
type MockLedgerReaderSvc struct {
	mock.Mock
}

func (m *MockLedgerReaderSvc) GetEntriesByAccountName(ctx context.Context, accountName string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerReaderSvc) GetEntriesByEntity(ctx context.Context, entityType domain.EntityType, entityName string, fromDate, toDate string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, entityType, entityName, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Test Suite ---
type SummaryServiceTestSuite struct {
	suite.Suite
	mockLedger *MockLedgerReaderSvc
	service    portssvc.SummarySvcFacade
}

func (suite *SummaryServiceTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerReaderSvc)
	suite.service = services.NewSummaryService(suite.mockLedger)
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// threeEntrySlice is a customer's history: 100 in, 30 out, 20 in, with the
// running balance snapshots a recorder would have written.
func threeEntrySlice() []domain.LedgerEntry {
	return []domain.LedgerEntry{
		{EntryID: "e1", Amount: d("100"), Direction: domain.CashIn, BalanceAfter: d("100")},
		{EntryID: "e2", Amount: d("30"), Direction: domain.CashOut, BalanceAfter: d("70")},
		{EntryID: "e3", Amount: d("20"), Direction: domain.CashIn, BalanceAfter: d("90")},
	}
}

func (suite *SummaryServiceTestSuite) TestBuildSummary_CustomerTotals() {
	ctx := context.Background()
	suite.mockLedger.On("GetEntriesByEntity", ctx, domain.EntityCustomer, "Acme Traders", "", "").
		Return(threeEntrySlice(), nil).Once()

	summary, err := suite.service.BuildSummary(ctx, domain.EntityCustomer, "Acme Traders", "", "")

	suite.Require().NoError(err)
	suite.True(summary.Success)
	suite.Equal(3, summary.TotalTransactions)
	suite.True(summary.TotalCredit.Equal(d("120")), "CASH_IN sums into the credit column")
	suite.True(summary.TotalDebit.Equal(d("30")), "CASH_OUT sums into the debit column")
	suite.True(summary.OpeningBalance.Equal(d("0")))
	suite.True(summary.ClosingBalance.Equal(d("90")))
	suite.True(summary.NetBalance.Equal(d("90")), "customer net is credit - debit")
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestBuildSummary_SupplierSignFlip() {
	ctx := context.Background()
	suite.mockLedger.On("GetEntriesByEntity", ctx, domain.EntitySupplier, "Metro Wholesale", "", "").
		Return(threeEntrySlice(), nil).Once()

	summary, err := suite.service.BuildSummary(ctx, domain.EntitySupplier, "Metro Wholesale", "", "")

	suite.Require().NoError(err)
	suite.True(summary.NetBalance.Equal(d("-90")), "supplier net is debit - credit")
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestBuildSummary_OpeningReconstructedFromFirstEntry() {
	ctx := context.Background()
	// The window starts mid-history: the first visible entry carries a balance
	// snapshot that already includes earlier activity.
	entries := []domain.LedgerEntry{
		{EntryID: "e5", Amount: d("50"), Direction: domain.CashIn, BalanceAfter: d("150")},
		{EntryID: "e6", Amount: d("25"), Direction: domain.CashOut, BalanceAfter: d("125")},
	}
	suite.mockLedger.On("GetEntriesByEntity", ctx, domain.EntityCustomer, "Acme Traders", "2025-02-01", "2025-02-28").
		Return(entries, nil).Once()

	summary, err := suite.service.BuildSummary(ctx, domain.EntityCustomer, "Acme Traders", "2025-02-01", "2025-02-28")

	suite.Require().NoError(err)
	suite.True(summary.OpeningBalance.Equal(d("100")), "opening undoes the first entry's own effect")
	suite.True(summary.ClosingBalance.Equal(d("125")))
	suite.Equal("2025-02-01", summary.FromDate)
	suite.Equal("2025-02-28", summary.ToDate)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestBuildSummary_Empty() {
	ctx := context.Background()
	suite.mockLedger.On("GetEntriesByEntity", ctx, domain.EntityCustomer, "Nobody", "", "").
		Return([]domain.LedgerEntry{}, nil).Once()

	summary, err := suite.service.BuildSummary(ctx, domain.EntityCustomer, "Nobody", "", "")

	suite.Require().NoError(err)
	suite.True(summary.Success, "an empty slice is a successful, zeroed report")
	suite.Equal(0, summary.TotalTransactions)
	suite.True(summary.NetBalance.IsZero())
	suite.NotEmpty(summary.Message)
	suite.NotNil(summary.Entries)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestReceivableForCustomer() {
	ctx := context.Background()
	suite.mockLedger.On("GetEntriesByEntity", ctx, domain.EntityCustomer, "Acme Traders", "", "").
		Return(threeEntrySlice(), nil).Once()

	amount, err := suite.service.ReceivableForCustomer(ctx, "Acme Traders")

	suite.Require().NoError(err)
	suite.True(amount.Equal(d("90")))
}

func (suite *SummaryServiceTestSuite) TestPayableForSupplier() {
	ctx := context.Background()
	suite.mockLedger.On("GetEntriesByEntity", ctx, domain.EntitySupplier, "Metro Wholesale", "", "").
		Return([]domain.LedgerEntry{
			{EntryID: "e1", Amount: d("200"), Direction: domain.CashOut, BalanceAfter: d("-200")},
		}, nil).Once()

	amount, err := suite.service.PayableForSupplier(ctx, "Metro Wholesale")

	suite.Require().NoError(err)
	suite.True(amount.Equal(d("200")), "supplier net is debit - credit")
}

func TestSummaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceTestSuite))
}
