package ledger

import (
	"github.com/shopspring/decimal"

	coreledger "github.com/akhaled-io/ftaledger/internal/ledger"
)

type summaryRow struct {
	Account string          `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

type ledgerResponse struct {
	Transactions  []coreledger.Transaction `json:"transactions"`
	Uncategorized int                      `json:"uncategorized"`
	Summary       []summaryRow             `json:"summary"`
}

func toLedgerResponse(l *coreledger.Ledger) ledgerResponse {
	summary := make([]summaryRow, 0)
	for _, row := range l.CategorySummary() {
		summary = append(summary, summaryRow{Account: row.Account, Debit: row.Debit, Credit: row.Credit})
	}

	return ledgerResponse{
		Transactions:  l.Transactions,
		Uncategorized: l.UncategorizedCount(),
		Summary:       summary,
	}
}
