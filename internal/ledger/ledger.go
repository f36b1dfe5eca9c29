// Package ledger holds the in-memory transaction collection for one filing
// session, with the category mutation operations the review stage exposes:
// single-row edits, bulk apply over a selection, find and replace, and row
// deletion. All mutations are synchronous and last-write-wins.
package ledger

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/akhaled-io/ftaledger/internal/taxonomy"
)

const uncategorized = taxonomy.Uncategorized

// ErrNothingToDo signals a find-and-replace invoked with an empty needle or
// an empty replacement category.
var ErrNothingToDo = errors.New("nothing to do")

// Ledger owns the transactions of a single filing session plus the current
// row selection. Not safe for concurrent use; a session is single-threaded.
type Ledger struct {
	Transactions []Transaction    `json:"transactions"`
	Selection    map[int]struct{} `json:"-"`
}

func New() *Ledger {
	return &Ledger{Selection: make(map[int]struct{})}
}

// Ingest appends transactions, resolving every incoming category through the
// chart of accounts. Externally supplied category strings are never trusted
// as canonical.
func (l *Ledger) Ingest(txs []Transaction) {
	for _, tx := range txs {
		if tx.ID == uuid.Nil {
			tx.ID = uuid.New()
		}
		tx.Category = taxonomy.Resolve(tx.Category)
		l.Transactions = append(l.Transactions, tx)
	}
}

// ApplyCategorized folds externally re-categorized rows back in by ID,
// re-validating each suggested category. Rows whose ID is unknown are
// ignored; the ledger is left untouched for transactions the categorizer
// did not return.
func (l *Ledger) ApplyCategorized(txs []Transaction) {
	byID := make(map[uuid.UUID]int, len(l.Transactions))
	for i, tx := range l.Transactions {
		byID[tx.ID] = i
	}

	for _, tx := range txs {
		i, ok := byID[tx.ID]
		if !ok {
			continue
		}
		l.Transactions[i].Category = taxonomy.Resolve(tx.Category)
		l.Transactions[i].Confidence = tx.Confidence
	}
}

// SetCategory replaces one row's category. The caller is expected to have
// resolved the path already; no re-resolution happens here. Out-of-range
// indices are ignored.
func (l *Ledger) SetCategory(index int, path string) {
	if index < 0 || index >= len(l.Transactions) {
		return
	}
	l.Transactions[index].Category = path
}

// ToggleSelect flips a row in or out of the selection.
func (l *Ledger) ToggleSelect(index int) {
	if index < 0 || index >= len(l.Transactions) {
		return
	}
	if l.Selection == nil {
		l.Selection = make(map[int]struct{})
	}
	if _, ok := l.Selection[index]; ok {
		delete(l.Selection, index)
		return
	}
	l.Selection[index] = struct{}{}
}

// BulkApply sets the category on every selected row and clears the
// selection. Returns the number of rows changed.
func (l *Ledger) BulkApply(path string) int {
	changed := 0
	for i := range l.Selection {
		if i >= 0 && i < len(l.Transactions) {
			l.Transactions[i].Category = path
			changed++
		}
	}
	l.Selection = make(map[int]struct{})

	return changed
}

// FindAndReplace assigns path to every row whose description contains the
// needle, case-insensitively. Returns the count of rows changed, or
// ErrNothingToDo when either argument is empty.
func (l *Ledger) FindAndReplace(needle, path string) (int, error) {
	if strings.TrimSpace(needle) == "" || strings.TrimSpace(path) == "" {
		return 0, ErrNothingToDo
	}

	lowered := strings.ToLower(needle)
	changed := 0

	for i := range l.Transactions {
		if strings.Contains(strings.ToLower(l.Transactions[i].Description), lowered) {
			l.Transactions[i].Category = path
			changed++
		}
	}

	return changed, nil
}

// Delete removes one row and re-indexes the selection: selected indices
// above the removed position shift down by one, the removed index is
// dropped. Out-of-range indices are ignored.
func (l *Ledger) Delete(index int) {
	if index < 0 || index >= len(l.Transactions) {
		return
	}

	l.Transactions = append(l.Transactions[:index], l.Transactions[index+1:]...)

	reindexed := make(map[int]struct{}, len(l.Selection))
	for i := range l.Selection {
		switch {
		case i < index:
			reindexed[i] = struct{}{}
		case i > index:
			reindexed[i-1] = struct{}{}
		}
	}
	l.Selection = reindexed
}

// UncategorizedCount reports how many rows still carry the sentinel
// category. Surfaced as a badge in the review stage; never blocks.
func (l *Ledger) UncategorizedCount() int {
	n := 0
	for _, tx := range l.Transactions {
		if !tx.Categorized() {
			n++
		}
	}
	return n
}

// CategoryTotal is the per-account aggregate of categorized transactions,
// keyed by the chart leaf name.
type CategoryTotal struct {
	Account string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// CategorySummary sums debits and credits per resolved category leaf, in
// first-seen order. Uncategorized rows are excluded; they only feed the
// trial balance once resolved.
func (l *Ledger) CategorySummary() []CategoryTotal {
	index := make(map[taxonomy.AccountKey]int)
	var totals []CategoryTotal

	for _, tx := range l.Transactions {
		if !tx.Categorized() {
			continue
		}

		leaf := taxonomy.LeafName(tx.Category)
		key := taxonomy.Key(leaf)

		i, ok := index[key]
		if !ok {
			i = len(totals)
			index[key] = i
			totals = append(totals, CategoryTotal{Account: leaf})
		}

		totals[i].Debit = totals[i].Debit.Add(tx.Debit)
		totals[i].Credit = totals[i].Credit.Add(tx.Credit)
	}

	return totals
}

// SourceTotals sums debits and credits per source file, for the standalone
// reconciliation check against reported statement balances.
func (l *Ledger) SourceTotals() map[string][2]decimal.Decimal {
	out := make(map[string][2]decimal.Decimal)
	for _, tx := range l.Transactions {
		pair := out[tx.SourceFile]
		pair[0] = pair[0].Add(tx.Debit)
		pair[1] = pair[1].Add(tx.Credit)
		out[tx.SourceFile] = pair
	}
	return out
}
