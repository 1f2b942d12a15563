package domain_test

import (
	"testing"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerEntry_SignedEffect(t *testing.T) {
	in := domain.LedgerEntry{Amount: d("25.50"), Direction: domain.CashIn}
	out := domain.LedgerEntry{Amount: d("25.50"), Direction: domain.CashOut}

	assert.True(t, in.SignedEffect().Equal(d("25.50")))
	assert.True(t, out.SignedEffect().Equal(d("-25.50")))
}

// applyEntries chains NextBalance over a sequence, stamping each entry's
// BalanceAfter the way the recorder does.
func applyEntries(opening decimal.Decimal, entries []domain.LedgerEntry) (decimal.Decimal, []domain.LedgerEntry) {
	balance := opening
	applied := make([]domain.LedgerEntry, len(entries))
	for i, e := range entries {
		balance = domain.NextBalance(balance, e)
		e.BalanceAfter = balance
		applied[i] = e
	}
	return balance, applied
}

func TestNextBalance_SequenceReconciles(t *testing.T) {
	opening := d("1000")
	entries := []domain.LedgerEntry{
		{Amount: d("100"), Direction: domain.CashIn},
		{Amount: d("30"), Direction: domain.CashOut},
		{Amount: d("20"), Direction: domain.CashIn},
		{Amount: d("0.01"), Direction: domain.CashOut},
		{Amount: d("499.99"), Direction: domain.CashIn},
	}

	final, applied := applyEntries(opening, entries)

	// Final balance equals opening + sum of CASH_IN - sum of CASH_OUT.
	sumIn, sumOut := decimal.Zero, decimal.Zero
	for _, e := range entries {
		if e.Direction == domain.CashIn {
			sumIn = sumIn.Add(e.Amount)
		} else {
			sumOut = sumOut.Add(e.Amount)
		}
	}
	assert.True(t, final.Equal(opening.Add(sumIn).Sub(sumOut)),
		"final=%s want=%s", final, opening.Add(sumIn).Sub(sumOut))

	// Each entry's BalanceAfter reconstructs the next entry's opening balance
	// with no gaps.
	prev := opening
	for i, e := range applied {
		require.True(t, e.BalanceAfter.Equal(prev.Add(e.SignedEffect())),
			"entry %d breaks the chain", i)
		// Undoing the entry's own effect recovers the balance before it.
		assert.True(t, e.BalanceAfter.Sub(e.SignedEffect()).Equal(prev))
		prev = e.BalanceAfter
	}
}
