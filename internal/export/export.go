// Package export projects a filing session into the flat row lists the
// external workbook assembler consumes. Styling and file generation happen
// outside this module; everything here is plain data.
package export

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/akhaled-io/ftaledger/internal/fta"
	"github.com/akhaled-io/ftaledger/internal/ledger"
	"github.com/akhaled-io/ftaledger/internal/opening"
	"github.com/akhaled-io/ftaledger/internal/reconcile"
	"github.com/akhaled-io/ftaledger/internal/trialbalance"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

// AccountRow is an account/debit/credit triple.
type AccountRow struct {
	Account string          `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// LedgerRow is one exported transaction.
type LedgerRow struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Category    string          `json:"category"`
	SourceFile  string          `json:"source_file,omitempty"`
}

// LabelRow is a label/value pair for the derived-figure sheets.
type LabelRow struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Workbook is the full flat snapshot handed to the spreadsheet boundary.
type Workbook struct {
	TrialBalance    []AccountRow       `json:"trial_balance"`
	Ledger          []LedgerRow        `json:"ledger"`
	OpeningBalances []AccountRow       `json:"opening_balances"`
	FormValues      []LabelRow         `json:"form_values"`
	Reconciliation  []reconcile.Result `json:"reconciliation"`
}

// Snapshot projects the session's current state.
func Snapshot(s *workflow.Session) Workbook {
	return Workbook{
		TrialBalance:    TrialBalanceRows(s.TrialBalance),
		Ledger:          LedgerRows(s.Ledger),
		OpeningBalances: OpeningRows(s.Opening),
		FormValues:      FormRows(s.Derive()),
		Reconciliation:  s.Reconciliation(),
	}
}

// TrialBalanceRows flattens the table, Totals row included and last.
func TrialBalanceRows(t *trialbalance.Table) []AccountRow {
	if t == nil {
		return nil
	}

	rows := make([]AccountRow, 0, len(t.Entries))
	for _, e := range t.Entries {
		rows = append(rows, AccountRow{Account: e.Account, Debit: e.Debit, Credit: e.Credit})
	}

	return rows
}

// LedgerRows flattens the transaction list in ledger order.
func LedgerRows(l *ledger.Ledger) []LedgerRow {
	if l == nil {
		return nil
	}

	rows := make([]LedgerRow, 0, len(l.Transactions))
	for _, tx := range l.Transactions {
		rows = append(rows, LedgerRow{
			Date:        tx.Date,
			Description: tx.Description,
			Debit:       tx.Debit,
			Credit:      tx.Credit,
			Category:    tx.Category,
			SourceFile:  tx.SourceFile,
		})
	}

	return rows
}

// OpeningRows flattens every non-zero opening balance account.
func OpeningRows(s *opening.Set) []AccountRow {
	if s == nil {
		return nil
	}

	accounts := s.NonZero()

	rows := make([]AccountRow, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, AccountRow{Account: a.Name, Debit: a.Debit, Credit: a.Credit})
	}

	return rows
}

// FormRows lists the derived figures in report order.
func FormRows(v fta.FormValues) []LabelRow {
	return []LabelRow{
		{Label: "Operating Revenue", Value: v.OperatingRevenue},
		{Label: "Cost of Revenue", Value: v.CostOfRevenue},
		{Label: "Gross Profit", Value: v.GrossProfit},
		{Label: "Administrative Expenses", Value: v.AdministrativeExpenses},
		{Label: "Selling & Distribution Expenses", Value: v.SellingExpenses},
		{Label: "Finance Costs", Value: v.FinanceCosts},
		{Label: "Other Income", Value: v.OtherIncome},
		{Label: "Net Profit", Value: v.NetProfit},
		{Label: "Other Comprehensive Income", Value: v.OtherComprehensiveIncome},
		{Label: "Total Comprehensive Income", Value: v.TotalComprehensiveIncome},
		{Label: "Current Assets", Value: v.CurrentAssets},
		{Label: "Non-Current Assets", Value: v.NonCurrentAssets},
		{Label: "Total Assets", Value: v.TotalAssets},
		{Label: "Current Liabilities", Value: v.CurrentLiabilities},
		{Label: "Non-Current Liabilities", Value: v.NonCurrentLiabilities},
		{Label: "Total Liabilities", Value: v.TotalLiabilities},
		{Label: "Total Equity", Value: v.TotalEquity},
		{Label: "Total Equity & Liabilities", Value: v.TotalEquityLiabilities},
		{Label: "Taxable Income", Value: v.TaxableIncome},
		{Label: "Corporate Tax Liability", Value: v.CorporateTaxLiability},
		{Label: "Revenue (Small Business Relief)", Value: v.ReliefOperatingRevenue},
	}
}
