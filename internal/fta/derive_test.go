package fta_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/akhaled-io/ftaledger/internal/fta"
	"github.com/akhaled-io/ftaledger/internal/trialbalance"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// tableWithNetProfit builds a table whose only P&L content is revenue and
// rent, yielding the given net profit.
func tableWithNetProfit(revenue, rent string) *trialbalance.Table {
	t := &trialbalance.Table{}
	t.SetCell("Sales Revenue", trialbalance.FieldCredit, d(revenue))
	t.SetCell("Rent Expense", trialbalance.FieldDebit, d(rent))
	return t
}

func TestDerive_Cascade(t *testing.T) {
	tb := &trialbalance.Table{}
	tb.SetCell("Sales Revenue", trialbalance.FieldCredit, d("100000"))
	tb.SetCell("Service Revenue", trialbalance.FieldCredit, d("20000"))
	tb.SetCell("Cost of Goods Sold", trialbalance.FieldDebit, d("45000"))
	tb.SetCell("Rent Expense", trialbalance.FieldDebit, d("12000"))
	tb.SetCell("Bank Charges", trialbalance.FieldDebit, d("500"))
	tb.SetCell("Interest Income", trialbalance.FieldCredit, d("1500"))
	tb.SetCell("Bank Accounts", trialbalance.FieldDebit, d("64000"))
	tb.SetCell("Accounts Payable", trialbalance.FieldCredit, d("10000"))
	tb.SetCell("Share Capital", trialbalance.FieldCredit, d("54000"))

	v := fta.Derive(tb, false)

	assert.True(t, v.OperatingRevenue.Equal(d("120000")))
	assert.True(t, v.CostOfRevenue.Equal(d("45000")))
	assert.True(t, v.GrossProfit.Equal(d("75000")))
	assert.True(t, v.AdministrativeExpenses.Equal(d("12000")))
	assert.True(t, v.FinanceCosts.Equal(d("500")))
	assert.True(t, v.OtherIncome.Equal(d("1500")))
	assert.True(t, v.NetProfit.Equal(d("64000")))
	assert.True(t, v.TotalComprehensiveIncome.Equal(v.NetProfit))
	assert.True(t, v.OtherComprehensiveIncome.IsZero())

	assert.True(t, v.CurrentAssets.Equal(d("64000")))
	assert.True(t, v.TotalAssets.Equal(d("64000")))
	assert.True(t, v.CurrentLiabilities.Equal(d("10000")))
	assert.True(t, v.TotalEquity.Equal(d("54000")))
	assert.True(t, v.TotalEquityLiabilities.Equal(d("64000")))

	// Below the threshold: taxable but no liability.
	assert.True(t, v.TaxableIncome.Equal(d("64000")))
	assert.True(t, v.CorporateTaxLiability.IsZero())
}

func TestDerive_TaxThreshold(t *testing.T) {
	tests := []struct {
		name    string
		revenue string
		rent    string
		wantTax string
	}{
		{name: "ExactlyAtThreshold", revenue: "375000", rent: "0", wantTax: "0"},
		{name: "AboveThreshold", revenue: "475000", rent: "0", wantTax: "9000"},
		{name: "JustBelow", revenue: "374999.99", rent: "0", wantTax: "0"},
		{name: "ExpensesPullBelow", revenue: "400000", rent: "50000", wantTax: "0"},
		{name: "Loss", revenue: "1000", rent: "5000", wantTax: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := fta.Derive(tableWithNetProfit(tt.revenue, tt.rent), false)
			assert.True(t, v.CorporateTaxLiability.Equal(d(tt.wantTax)),
				"got %s", v.CorporateTaxLiability)
		})
	}
}

func TestDerive_LossYieldsZeroTaxableIncome(t *testing.T) {
	v := fta.Derive(tableWithNetProfit("1000", "5000"), false)
	assert.True(t, v.TaxableIncome.IsZero())
	assert.True(t, v.NetProfit.Equal(d("-4000")))
}

func TestDerive_EmptyTableIsAllZero(t *testing.T) {
	v := fta.Derive(&trialbalance.Table{}, false)
	assert.True(t, v.NetProfit.IsZero())
	assert.True(t, v.TotalAssets.IsZero())
	assert.True(t, v.CorporateTaxLiability.IsZero())
}

// Relief zeroes every figure after the full cascade, keeping only the
// revenue side channel.
func TestDerive_ReliefOverride(t *testing.T) {
	tb := tableWithNetProfit("500000", "20000")

	v := fta.Derive(tb, true)

	assert.True(t, v.ReliefOperatingRevenue.Equal(d("500000")))
	assert.True(t, v.OperatingRevenue.IsZero())
	assert.True(t, v.GrossProfit.IsZero())
	assert.True(t, v.NetProfit.IsZero())
	assert.True(t, v.TaxableIncome.IsZero())
	assert.True(t, v.CorporateTaxLiability.IsZero())
	assert.True(t, v.TotalAssets.IsZero())
	assert.True(t, v.TotalEquityLiabilities.IsZero())
}
