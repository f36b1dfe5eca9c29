package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one bank-statement row being carried through a filing.
// Debit and Credit are both non-negative; a statement movement is one or the
// other, never a signed amount.
type Transaction struct {
	ID          uuid.UUID        `json:"id"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	Debit       decimal.Decimal  `json:"debit"`
	Credit      decimal.Decimal  `json:"credit"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
	Category    string           `json:"category"`
	SourceFile  string           `json:"source_file,omitempty"`
	Confidence  float64          `json:"confidence,omitempty"`
}

// Categorized reports whether the transaction has been mapped onto the chart
// of accounts.
func (t Transaction) Categorized() bool {
	return t.Category != "" && t.Category != uncategorized
}
