package mashreq

// amountMode determines how movements are extracted from a row.
type amountMode int

const (
	// amountSplit means separate debit and credit columns.
	amountSplit amountMode = iota
	// amountSigned means one signed amount column (card exports).
	amountSigned
)

// Profile describes the column layout of one Mashreq CSV export format.
// Adding a format is just adding a Profile to the profiles slice.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	DebitCol   string // amountSplit
	CreditCol  string // amountSplit
	AmountCol  string // amountSigned
	BalanceCol string // optional running balance
}

// requiredCols returns the columns that must be present for the profile to
// match a header row. The balance column is optional everywhere.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	case amountSigned:
		cols = append(cols, p.AmountCol)
	}

	return cols
}

// profiles is the ordered list of export formats to try. More specific
// layouts come first to avoid false matches.
var profiles = []Profile{
	{
		Name:       "account",
		DateCol:    "Transaction Date",
		DescCol:    "Description",
		AmountMode: amountSplit,
		DebitCol:   "Debit",
		CreditCol:  "Credit",
		BalanceCol: "Balance",
	},
	{
		Name:       "business online",
		DateCol:    "Value Date",
		DescCol:    "Narration",
		AmountMode: amountSplit,
		DebitCol:   "Debit Amount",
		CreditCol:  "Credit Amount",
		BalanceCol: "Running Balance",
	},
	{
		Name:       "card",
		DateCol:    "Transaction Date",
		DescCol:    "Description",
		AmountMode: amountSigned,
		AmountCol:  "Amount",
	},
}
