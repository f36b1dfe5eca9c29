package opening_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhaled-io/ftaledger/internal/opening"
)

func find(t *testing.T, s *opening.Set, cat opening.CategoryName, name string) opening.Account {
	t.Helper()

	for _, c := range s.Categories {
		if c.Category != cat {
			continue
		}
		for _, a := range c.Accounts {
			if a.Name == name {
				return a
			}
		}
	}

	t.Fatalf("account %q not found under %s", name, cat)

	return opening.Account{}
}

func TestMergeExtracted(t *testing.T) {
	s := opening.NewSet()

	s.MergeExtracted(map[string]string{
		"bank_accounts":       "12,500.00",
		"accounts payable":    "3200",
		"share_capital":       "50000",
		"vat":                 "0",       // zero, skipped
		"petty cash float":    "oops",    // malformed, parses to zero, skipped
		"completely unknown":  "999",     // no account matches, dropped
		"accounts_receivable": "-150.25", // negatives pass through
	})

	bank := find(t, s, opening.Assets, "Bank Accounts")
	assert.True(t, bank.Debit.Equal(decimal.RequireFromString("12500")), "assets land on the debit side")
	assert.True(t, bank.Credit.IsZero())

	ap := find(t, s, opening.Liabilities, "Accounts Payable")
	assert.True(t, ap.Credit.Equal(decimal.NewFromInt(3200)), "liabilities land on the credit side")
	assert.True(t, ap.Debit.IsZero())

	sc := find(t, s, opening.Equity, "Share Capital")
	assert.True(t, sc.Credit.Equal(decimal.NewFromInt(50000)))

	ar := find(t, s, opening.Assets, "Accounts Receivable")
	assert.True(t, ar.Debit.Equal(decimal.RequireFromString("-150.25")))

	// Zero and unmatched keys left no trace.
	for _, a := range s.NonZero() {
		assert.NotEqual(t, "completely unknown", a.Name)
	}
}

func TestMergeExtracted_ContainmentMatch(t *testing.T) {
	s := opening.NewSet()

	// "inventory closing value" contains the account name "inventory".
	s.MergeExtracted(map[string]string{"inventory closing value": "700"})

	inv := find(t, s, opening.Assets, "Inventory")
	assert.True(t, inv.Debit.Equal(decimal.NewFromInt(700)))
}

func TestSetValue_AddsUnknownAsNew(t *testing.T) {
	s := opening.NewSet()

	s.SetValue(opening.Liabilities, "Director Loan", decimal.Zero, decimal.NewFromInt(8000))

	acct := find(t, s, opening.Liabilities, "Director Loan")
	require.True(t, acct.IsNew)
	assert.True(t, acct.Credit.Equal(decimal.NewFromInt(8000)))

	// Second write updates in place rather than duplicating.
	s.SetValue(opening.Liabilities, "director loan", decimal.Zero, decimal.NewFromInt(9000))

	count := 0
	for _, c := range s.Categories {
		for _, a := range c.Accounts {
			if a.Name == "Director Loan" {
				count++
			}
		}
	}
	assert.Equal(t, 1, count)
}

func TestNonZero(t *testing.T) {
	s := opening.NewSet()
	assert.Empty(t, s.NonZero())

	s.SetValue(opening.Assets, "Cash on Hand", decimal.NewFromInt(250), decimal.Zero)
	assert.Len(t, s.NonZero(), 1)
}
