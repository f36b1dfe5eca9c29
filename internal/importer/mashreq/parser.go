// Package mashreq reads Mashreq bank CSV exports and produces ledger rows.
// The export flavor (account, business online, card) is auto-detected by
// matching column headers against known profiles.
package mashreq

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	enc "github.com/akhaled-io/ftaledger/internal/encoding"
	"github.com/akhaled-io/ftaledger/internal/ledger"
	"github.com/akhaled-io/ftaledger/internal/money"
	"github.com/akhaled-io/ftaledger/internal/reconcile"
	"github.com/akhaled-io/ftaledger/internal/taxonomy"
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader, sourceFile string) ([]ledger.Transaction, *reconcile.Summary, error) {
	utf8r, err := enc.NewStatementReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, nil, fmt.Errorf("no matching Mashreq format found: expected account, business online, or card columns")
	}

	txs, err := parseRows(profile, cols, rows[headerIdx+1:], sourceFile)
	if err != nil {
		return nil, nil, err
	}

	return txs, balanceSummary(profile, txs, sourceFile), nil
}

// colIndex maps column names to their index in the header row.
type colIndex map[string]int

// detectProfile scans rows for a header matching a known profile. Returns
// the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts transactions from data rows using the matched profile.
// Rows with no parseable date (footers, ad banners) are skipped.
func parseRows(p *Profile, cols colIndex, rows [][]string, sourceFile string) ([]ledger.Transaction, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	var txs []ledger.Transaction

	for _, row := range rows {
		date, ok := parseDate(row, dateIdx)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			continue
		}

		debit, credit, ok := parseMovement(p, cols, row)
		if !ok {
			continue
		}

		tx := ledger.Transaction{
			ID:          uuid.New(),
			Date:        date,
			Description: desc,
			Debit:       debit,
			Credit:      credit,
			Category:    taxonomy.Uncategorized,
			SourceFile:  sourceFile,
		}

		if p.BalanceCol != "" {
			if s := cellValue(row, cols[p.BalanceCol]); s != "" {
				bal := money.Parse(s)
				tx.Balance = &bal
			}
		}

		txs = append(txs, tx)
	}

	return txs, nil
}

// balanceSummary derives the reported opening/closing pair from the running
// balance column: closing is the last row's balance, opening is the first
// row's balance with its own movement backed out. Nil when the profile has
// no balance column or no rows carried one.
func balanceSummary(p *Profile, txs []ledger.Transaction, sourceFile string) *reconcile.Summary {
	if p.BalanceCol == "" || len(txs) == 0 {
		return nil
	}

	first, last := txs[0], txs[len(txs)-1]
	if first.Balance == nil || last.Balance == nil {
		return nil
	}

	opening := first.Balance.Add(first.Debit).Sub(first.Credit)

	return &reconcile.Summary{
		SourceFile:     sourceFile,
		OpeningBalance: opening,
		ClosingBalance: *last.Balance,
	}
}

// dateFormats are tried in order; Mashreq flips between them depending on
// the export channel.
var dateFormats = []string{"02/01/2006", "02-01-2006", "2006-01-02"}

func parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseMovement extracts the debit/credit pair for a row.
func parseMovement(p *Profile, cols colIndex, row []string) (decimal.Decimal, decimal.Decimal, bool) {
	switch p.AmountMode {
	case amountSplit:
		debit := money.Parse(cellValue(row, cols[p.DebitCol]))
		credit := money.Parse(cellValue(row, cols[p.CreditCol]))

		if debit.IsZero() && credit.IsZero() {
			return decimal.Zero, decimal.Zero, false
		}

		return debit.Abs(), credit.Abs(), true

	case amountSigned:
		amount := money.Parse(cellValue(row, cols[p.AmountCol]))
		if amount.IsZero() {
			return decimal.Zero, decimal.Zero, false
		}

		// Card exports report spend as positive; money out is a debit.
		if amount.Sign() > 0 {
			return amount, decimal.Zero, true
		}

		return decimal.Zero, amount.Neg(), true
	}

	return decimal.Zero, decimal.Zero, false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
