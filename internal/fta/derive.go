// Package fta derives the regulatory form figures from a finished trial
// balance: the profit-and-loss lines, the balance-sheet lines, and the
// corporate tax computation with the small-business-relief override.
package fta

import (
	"github.com/shopspring/decimal"

	"github.com/akhaled-io/ftaledger/internal/trialbalance"
)

// Tax constants for the simplified corporate tax return: income above the
// threshold is taxed at the flat rate, income at or below it is not.
var (
	TaxableIncomeThreshold = decimal.NewFromInt(375000)
	CorporateTaxRate       = decimal.RequireFromString("0.09")
)

// FormValues is the flat derived record behind the final report. It is a
// pure function of the trial balance and the relief flag, recomputed on
// every change and never stored independently of its inputs.
type FormValues struct {
	// Profit and loss.
	OperatingRevenue         decimal.Decimal `json:"operating_revenue"`
	CostOfRevenue            decimal.Decimal `json:"cost_of_revenue"`
	GrossProfit              decimal.Decimal `json:"gross_profit"`
	AdministrativeExpenses   decimal.Decimal `json:"administrative_expenses"`
	SellingExpenses          decimal.Decimal `json:"selling_expenses"`
	FinanceCosts             decimal.Decimal `json:"finance_costs"`
	OtherIncome              decimal.Decimal `json:"other_income"`
	NetProfit                decimal.Decimal `json:"net_profit"`
	OtherComprehensiveIncome decimal.Decimal `json:"other_comprehensive_income"`
	TotalComprehensiveIncome decimal.Decimal `json:"total_comprehensive_income"`

	// Balance sheet.
	CurrentAssets          decimal.Decimal `json:"current_assets"`
	NonCurrentAssets       decimal.Decimal `json:"non_current_assets"`
	TotalAssets            decimal.Decimal `json:"total_assets"`
	CurrentLiabilities     decimal.Decimal `json:"current_liabilities"`
	NonCurrentLiabilities  decimal.Decimal `json:"non_current_liabilities"`
	TotalLiabilities       decimal.Decimal `json:"total_liabilities"`
	TotalEquity            decimal.Decimal `json:"total_equity"`
	TotalEquityLiabilities decimal.Decimal `json:"total_equity_liabilities"`

	// Tax.
	TaxableIncome         decimal.Decimal `json:"taxable_income"`
	CorporateTaxLiability decimal.Decimal `json:"corporate_tax_liability"`

	// ReliefOperatingRevenue retains the pre-override operating revenue when
	// small business relief zeroes everything else, for audit reference.
	ReliefOperatingRevenue decimal.Decimal `json:"relief_operating_revenue"`
}

// sum adds (debit - credit) for each labeled account found in the table.
// Missing accounts contribute zero.
func sum(t *trialbalance.Table, labels []string) decimal.Decimal {
	total := decimal.Zero
	for _, label := range labels {
		if e, ok := t.Get(label); ok {
			total = total.Add(e.Debit.Sub(e.Credit))
		}
	}
	return total
}

// Derive computes the full cascade. Total function: it never fails, and a
// sparse or empty table simply yields zeros. When reliefClaimed is set the
// fully computed values are zeroed after the fact, keeping only the
// operating-revenue side channel; the override is a terminal transform, not
// a short-circuit.
func Derive(t *trialbalance.Table, reliefClaimed bool) FormValues {
	var v FormValues

	// Operating result.
	v.OperatingRevenue = sum(t, operatingRevenueLabels).Abs()
	v.CostOfRevenue = sum(t, costOfRevenueLabels).Abs()
	v.GrossProfit = v.OperatingRevenue.Sub(v.CostOfRevenue)

	// Non-operating buckets, then net profit.
	v.AdministrativeExpenses = sum(t, administrativeLabels).Abs()
	v.SellingExpenses = sum(t, sellingLabels).Abs()
	v.FinanceCosts = sum(t, financeCostLabels).Abs()
	v.OtherIncome = sum(t, otherIncomeLabels).Abs()
	v.NetProfit = v.GrossProfit.
		Sub(v.AdministrativeExpenses).
		Sub(v.SellingExpenses).
		Sub(v.FinanceCosts).
		Add(v.OtherIncome)

	// Other comprehensive income is reserved and currently always zero.
	v.OtherComprehensiveIncome = decimal.Zero
	v.TotalComprehensiveIncome = v.NetProfit.Add(v.OtherComprehensiveIncome)

	// Balance sheet.
	v.CurrentAssets = sum(t, currentAssetLabels).Abs()
	v.NonCurrentAssets = sum(t, nonCurrentAssetLabels).Abs()
	v.TotalAssets = v.CurrentAssets.Add(v.NonCurrentAssets)

	v.CurrentLiabilities = sum(t, currentLiabilityLabels).Abs()
	v.NonCurrentLiabilities = sum(t, nonCurrentLiabilityLabels).Abs()
	v.TotalLiabilities = v.CurrentLiabilities.Add(v.NonCurrentLiabilities)

	v.TotalEquity = sum(t, equityLabels).Abs()
	v.TotalEquityLiabilities = v.TotalEquity.Add(v.TotalLiabilities)

	// Tax computation.
	if v.NetProfit.Sign() > 0 {
		v.TaxableIncome = v.NetProfit
	} else {
		v.TaxableIncome = decimal.Zero
	}

	if v.TaxableIncome.GreaterThan(TaxableIncomeThreshold) {
		v.CorporateTaxLiability = v.TaxableIncome.Sub(TaxableIncomeThreshold).Mul(CorporateTaxRate)
	} else {
		v.CorporateTaxLiability = decimal.Zero
	}

	if reliefClaimed {
		revenue := v.OperatingRevenue
		v = FormValues{ReliefOperatingRevenue: revenue}
	}

	return v
}
