package trialbalance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhaled-io/ftaledger/internal/ledger"
	"github.com/akhaled-io/ftaledger/internal/opening"
	"github.com/akhaled-io/ftaledger/internal/trialbalance"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedSet(t *testing.T) *opening.Set {
	t.Helper()

	s := opening.NewSet()
	s.SetValue(opening.Assets, "Bank Accounts", d("1000"), decimal.Zero)
	s.SetValue(opening.Assets, "Accounts Receivable", d("500"), decimal.Zero)
	s.SetValue(opening.Equity, "Share Capital", decimal.Zero, d("1500"))

	return s
}

func TestBuild(t *testing.T) {
	summary := []ledger.CategoryTotal{
		{Account: "Sales Revenue", Credit: d("2000")},
		{Account: "Rent Expense", Debit: d("800")},
		{Account: "Accounts Receivable", Debit: d("100"), Credit: d("250")},
	}

	tb := trialbalance.Build(seedSet(t), summary, d("2700"))

	// Bank row holds the reconciled closing, not opening + movements.
	bank, ok := tb.Get("Bank Accounts")
	require.True(t, ok)
	assert.True(t, bank.Debit.Equal(d("2700")))
	assert.True(t, bank.Credit.IsZero())

	// Opening 500 plus movements 100/-250 nets to 350 debit.
	ar, ok := tb.Get("Accounts Receivable")
	require.True(t, ok)
	assert.True(t, ar.Debit.Equal(d("350")))
	assert.True(t, ar.Credit.IsZero())

	// Every non-Totals row is single-sided after netting.
	for _, e := range tb.Entries {
		if e.Account == trialbalance.TotalsAccount {
			continue
		}
		assert.True(t, e.Debit.IsZero() || e.Credit.IsZero(), "account %s holds both sides", e.Account)
	}

	// Totals row is last and sums the columns.
	last := tb.Entries[len(tb.Entries)-1]
	assert.Equal(t, trialbalance.TotalsAccount, last.Account)
	assert.True(t, last.Debit.Equal(d("3850")))  // 2700 + 350 + 800
	assert.True(t, last.Credit.Equal(d("3500"))) // 1500 + 2000
}

func TestBuild_NegativeBankBecomesCredit(t *testing.T) {
	tb := trialbalance.Build(opening.NewSet(), nil, d("-400"))

	bank, ok := tb.Get("Bank Accounts")
	require.True(t, ok)
	assert.True(t, bank.Debit.IsZero())
	assert.True(t, bank.Credit.Equal(d("400")))
}

func assertTotalsInvariant(t *testing.T, tb *trialbalance.Table) {
	t.Helper()

	debit, credit := decimal.Zero, decimal.Zero
	for _, e := range tb.Entries[:len(tb.Entries)-1] {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}

	last := tb.Entries[len(tb.Entries)-1]
	require.Equal(t, trialbalance.TotalsAccount, last.Account, "Totals must stay last")
	assert.True(t, last.Debit.Equal(debit))
	assert.True(t, last.Credit.Equal(credit))
}

func TestMutations_MaintainTotals(t *testing.T) {
	tb := trialbalance.Build(seedSet(t), nil, d("1000"))

	tb.SetCell("Rent Expense", trialbalance.FieldDebit, d("950"))
	assertTotalsInvariant(t, tb)

	tb.AddAccount("Accrued Expenses")
	assertTotalsInvariant(t, tb)

	tb.SetCell("Accrued Expenses", trialbalance.FieldCredit, d("120.50"))
	assertTotalsInvariant(t, tb)

	tb.SaveBreakdown("Rent Expense", []trialbalance.BreakdownEntry{
		{Description: "Warehouse", Debit: d("700")},
		{Description: "Office", Debit: d("300")},
	})
	assertTotalsInvariant(t, tb)

	// New account lands immediately before Totals.
	idx := -1
	for i, e := range tb.Entries {
		if e.Account == "Accrued Expenses" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, len(tb.Entries)-2, idx)
}

func TestSaveBreakdown_Dominates(t *testing.T) {
	tb := trialbalance.Build(seedSet(t), []ledger.CategoryTotal{
		{Account: "Utilities", Debit: d("999")},
	}, d("1000"))

	tb.SaveBreakdown("Utilities", []trialbalance.BreakdownEntry{
		{Description: "DEWA", Debit: d("600")},
		{Description: "Chiller", Debit: d("150")},
		{Description: "", Debit: decimal.Zero, Credit: decimal.Zero}, // blank, dropped
	})

	entry, ok := tb.Get("Utilities")
	require.True(t, ok)
	assert.True(t, entry.Debit.Equal(d("750")))
	assert.True(t, entry.Credit.IsZero())

	require.True(t, tb.HasBreakdown("utilities"))
	assert.Len(t, tb.Breakdown("Utilities"), 2)
}

func TestSaveBreakdown_AllBlankClears(t *testing.T) {
	tb := trialbalance.Build(seedSet(t), nil, d("1000"))

	tb.SaveBreakdown("Utilities", []trialbalance.BreakdownEntry{{Description: "x", Debit: d("5")}})
	require.True(t, tb.HasBreakdown("Utilities"))

	tb.SaveBreakdown("Utilities", []trialbalance.BreakdownEntry{{}})
	assert.False(t, tb.HasBreakdown("Utilities"))

	entry, ok := tb.Get("Utilities")
	require.True(t, ok)
	assert.True(t, entry.Debit.IsZero())
	assert.True(t, entry.Credit.IsZero())
}

func TestAddAccount_CaseInsensitiveNoop(t *testing.T) {
	tb := trialbalance.Build(seedSet(t), nil, d("1000"))
	before := len(tb.Entries)

	tb.AddAccount("bank accounts")
	assert.Len(t, tb.Entries, before)

	tb.AddAccount("")
	assert.Len(t, tb.Entries, before)

	tb.AddAccount("Corporate Tax Payable")
	assert.Len(t, tb.Entries, before+1)
}

func TestIsBalanced(t *testing.T) {
	tb := trialbalance.Build(seedSet(t), nil, d("1000"))

	// Seed: 1000 + 500 debit vs 1500 credit, bank overwritten to 1000.
	assert.True(t, tb.IsBalanced())

	tb.SetCell("Rent Expense", trialbalance.FieldDebit, d("0.009"))
	assert.True(t, tb.IsBalanced(), "drift below tolerance still balances")

	tb.SetCell("Rent Expense", trialbalance.FieldDebit, d("10"))
	assert.False(t, tb.IsBalanced())
}
