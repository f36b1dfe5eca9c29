// Package trialbalance implements the aggregation table at the center of a
// filing: opening balances plus categorized transaction totals plus the
// reconciled bank position, merged into one account -> (debit, credit)
// table with a synthetic Totals row that is always last.
package trialbalance

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/akhaled-io/ftaledger/internal/ledger"
	"github.com/akhaled-io/ftaledger/internal/money"
	"github.com/akhaled-io/ftaledger/internal/opening"
	"github.com/akhaled-io/ftaledger/internal/taxonomy"
)

// TotalsAccount names the synthetic column-sum row.
const TotalsAccount = "Totals"

// BankAccount is the one row the reconciled statement balance overwrites
// unconditionally.
const BankAccount = "Bank Accounts"

// Field selects which side of an entry a cell edit targets.
type Field string

const (
	FieldDebit  Field = "debit"
	FieldCredit Field = "credit"
)

// Entry is one trial-balance row.
type Entry struct {
	Account string          `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// BreakdownEntry is one line of a working note backing an account.
type BreakdownEntry struct {
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// Table is the trial balance for one filing session. At most one entry per
// account name (case-insensitive); the Totals row is always the last
// element. Not safe for concurrent use.
type Table struct {
	Entries    []Entry                     `json:"entries"`
	Breakdowns map[string][]BreakdownEntry `json:"breakdowns,omitempty"`
}

// Build assembles the table in five steps: seed from non-zero opening
// balances, add per-category transaction totals, overwrite the Bank
// Accounts row with the reconciled closing position, net every account to a
// single side, then append Totals. The reconciled bank balance is treated
// as ground truth, which is why step three discards whatever the first two
// steps produced for that account.
func Build(open *opening.Set, summary []ledger.CategoryTotal, bankClosing decimal.Decimal) *Table {
	t := &Table{}

	// 1. Opening balance seed.
	if open != nil {
		for _, acct := range open.NonZero() {
			t.add(acct.Name, acct.Debit, acct.Credit)
		}
	}

	// 2. Transaction totals, summed into existing rows.
	for _, ct := range summary {
		t.add(ct.Account, ct.Debit, ct.Credit)
	}

	// 3. Reconciled bank position overwrites.
	bank := Entry{Account: BankAccount}
	if bankClosing.Sign() >= 0 {
		bank.Debit = bankClosing
	} else {
		bank.Credit = bankClosing.Neg()
	}

	if i := t.index(BankAccount); i >= 0 {
		t.Entries[i].Debit = bank.Debit
		t.Entries[i].Credit = bank.Credit
	} else {
		t.Entries = append(t.Entries, bank)
	}

	// 4. Net each account to one side.
	for i := range t.Entries {
		net := t.Entries[i].Debit.Sub(t.Entries[i].Credit)
		if net.Sign() >= 0 {
			t.Entries[i].Debit = net
			t.Entries[i].Credit = decimal.Zero
		} else {
			t.Entries[i].Debit = decimal.Zero
			t.Entries[i].Credit = net.Neg()
		}
	}

	// 5. Totals row.
	t.recomputeTotals()

	return t
}

// add sums into an existing row or appends a new one.
func (t *Table) add(account string, debit, credit decimal.Decimal) {
	if i := t.index(account); i >= 0 {
		t.Entries[i].Debit = t.Entries[i].Debit.Add(debit)
		t.Entries[i].Credit = t.Entries[i].Credit.Add(credit)
		return
	}

	t.Entries = append(t.Entries, Entry{Account: account, Debit: debit, Credit: credit})
}

// index finds a row by account name, case-insensitively.
func (t *Table) index(account string) int {
	key := taxonomy.Key(account)
	for i, e := range t.Entries {
		if taxonomy.Key(e.Account) == key {
			return i
		}
	}
	return -1
}

// SetCell writes one side of one account. Absent accounts are inserted
// immediately before Totals. The table always trusts the last write; the
// read-only rule for accounts backed by a working note is enforced by the
// calling surface, not here.
func (t *Table) SetCell(account string, field Field, value decimal.Decimal) {
	i := t.index(account)
	if i < 0 {
		i = t.insertBeforeTotals(Entry{Account: account})
	}

	if field == FieldCredit {
		t.Entries[i].Credit = value
	} else {
		t.Entries[i].Debit = value
	}

	t.recomputeTotals()
}

// SaveBreakdown stores the working note for an account, dropping entries
// that are entirely blank, and forces the account's row to the sums of what
// remains.
func (t *Table) SaveBreakdown(account string, entries []BreakdownEntry) {
	filtered := make([]BreakdownEntry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Description) == "" && e.Debit.IsZero() && e.Credit.IsZero() {
			continue
		}
		filtered = append(filtered, e)
	}

	key := t.breakdownKey(account)
	if len(filtered) == 0 {
		delete(t.Breakdowns, key)
	} else {
		if t.Breakdowns == nil {
			t.Breakdowns = make(map[string][]BreakdownEntry)
		}
		t.Breakdowns[key] = filtered
	}

	debit, credit := decimal.Zero, decimal.Zero
	for _, e := range filtered {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}

	i := t.index(account)
	if i < 0 {
		i = t.insertBeforeTotals(Entry{Account: account})
	}
	t.Entries[i].Debit = debit
	t.Entries[i].Credit = credit

	t.recomputeTotals()
}

// AddAccount inserts a zero row before Totals. No-op when the name already
// exists, case-insensitively.
func (t *Table) AddAccount(name string) {
	if strings.TrimSpace(name) == "" || t.index(name) >= 0 {
		return
	}

	t.insertBeforeTotals(Entry{Account: name})
	t.recomputeTotals()
}

// HasBreakdown reports whether an account is backed by a non-empty working
// note, which makes its cells read-only in the UI contract.
func (t *Table) HasBreakdown(account string) bool {
	_, ok := t.Breakdowns[t.breakdownKey(account)]
	return ok
}

// Breakdown returns the stored working note for an account, or nil.
func (t *Table) Breakdown(account string) []BreakdownEntry {
	return t.Breakdowns[t.breakdownKey(account)]
}

// breakdownKey maps an account name onto the stored breakdown key,
// preserving the key's original spelling on first store.
func (t *Table) breakdownKey(account string) string {
	key := taxonomy.Key(account)
	for stored := range t.Breakdowns {
		if taxonomy.Key(stored) == key {
			return stored
		}
	}
	return account
}

// Get returns the row for an account.
func (t *Table) Get(account string) (Entry, bool) {
	if i := t.index(account); i >= 0 {
		return t.Entries[i], true
	}
	return Entry{}, false
}

// Totals returns the synthetic column-sum row.
func (t *Table) Totals() Entry {
	if n := len(t.Entries); n > 0 && taxonomy.Key(t.Entries[n-1].Account) == taxonomy.Key(TotalsAccount) {
		return t.Entries[n-1]
	}
	return Entry{Account: TotalsAccount}
}

// IsBalanced reports whether debit and credit totals agree within the
// balance tolerance. The workflow gates entry to the profit-and-loss stage
// on this.
func (t *Table) IsBalanced() bool {
	totals := t.Totals()
	return totals.Debit.Sub(totals.Credit).Abs().LessThan(money.BalanceTolerance)
}

// insertBeforeTotals places a new row just above the Totals row, or appends
// when no Totals row exists yet. Returns the new row's index.
func (t *Table) insertBeforeTotals(e Entry) int {
	n := len(t.Entries)
	if n > 0 && taxonomy.Key(t.Entries[n-1].Account) == taxonomy.Key(TotalsAccount) {
		t.Entries = append(t.Entries[:n-1], e, t.Entries[n-1])
		return n - 1
	}

	t.Entries = append(t.Entries, e)

	return n
}

// recomputeTotals overwrites the Totals row with column sums of every other
// row, creating it as the last element if missing.
func (t *Table) recomputeTotals() {
	debit, credit := decimal.Zero, decimal.Zero
	totalsIdx := -1

	for i, e := range t.Entries {
		if taxonomy.Key(e.Account) == taxonomy.Key(TotalsAccount) {
			totalsIdx = i
			continue
		}
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}

	totals := Entry{Account: TotalsAccount, Debit: debit, Credit: credit}

	switch {
	case totalsIdx < 0:
		t.Entries = append(t.Entries, totals)
	case totalsIdx != len(t.Entries)-1:
		// Keep Totals last no matter how it drifted.
		t.Entries = append(append(t.Entries[:totalsIdx], t.Entries[totalsIdx+1:]...), totals)
	default:
		t.Entries[totalsIdx] = totals
	}
}
