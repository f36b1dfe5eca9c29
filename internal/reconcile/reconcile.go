// Package reconcile checks statement-reported balances against categorized
// movements. Failures surface as warnings; they never block the workflow.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/akhaled-io/ftaledger/internal/money"
)

// Summary is the reported opening/closing balance pair for one source file,
// as supplied by the surrounding application's statement parser.
type Summary struct {
	SourceFile     string          `json:"source_file"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// Result is the outcome of one statement's reconciliation check.
type Result struct {
	SourceFile        string          `json:"source_file"`
	OpeningBalance    decimal.Decimal `json:"opening_balance"`
	TotalDebit        decimal.Decimal `json:"total_debit"`
	TotalCredit       decimal.Decimal `json:"total_credit"`
	ReportedClosing   decimal.Decimal `json:"reported_closing"`
	CalculatedClosing decimal.Decimal `json:"calculated_closing"`
	Difference        decimal.Decimal `json:"difference"`
	IsValid           bool            `json:"is_valid"`
}

// Check compares the reported closing balance against
// opening - totalDebit + totalCredit, within the reconciliation tolerance.
func Check(summary Summary, totalDebit, totalCredit decimal.Decimal) Result {
	calculated := summary.OpeningBalance.Sub(totalDebit).Add(totalCredit)
	diff := calculated.Sub(summary.ClosingBalance)

	return Result{
		SourceFile:        summary.SourceFile,
		OpeningBalance:    summary.OpeningBalance,
		TotalDebit:        totalDebit,
		TotalCredit:       totalCredit,
		ReportedClosing:   summary.ClosingBalance,
		CalculatedClosing: calculated,
		Difference:        diff,
		IsValid:           diff.Abs().LessThanOrEqual(money.ReconcileTolerance),
	}
}

// ClosingTotal sums the reported closing balances across all statements.
// This is the figure that overwrites the Bank Accounts trial-balance row.
func ClosingTotal(summaries []Summary) decimal.Decimal {
	total := decimal.Zero
	for _, s := range summaries {
		total = total.Add(s.ClosingBalance)
	}
	return total
}
