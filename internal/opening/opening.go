// Package opening holds the per-category opening balance seed for a filing
// and the fold that merges extracted document values into it.
package opening

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/akhaled-io/ftaledger/internal/money"
)

// CategoryName is a top-level opening-balance bucket. Assets carry their
// opening value on the debit side; everything else on the credit side.
type CategoryName string

const (
	Assets      CategoryName = "Assets"
	Liabilities CategoryName = "Liabilities"
	Equity      CategoryName = "Equity"
)

// Account is one opening-balance line.
type Account struct {
	Name   string          `json:"name"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
	IsNew  bool            `json:"is_new,omitempty"`
}

// Category groups opening-balance accounts under Assets, Liabilities, or
// Equity.
type Category struct {
	Category CategoryName `json:"category"`
	Accounts []Account    `json:"accounts"`
}

// Set is the complete opening balance seed for one filing session.
type Set struct {
	Categories []Category `json:"categories"`
}

// NewSet returns a set pre-populated with the balance-sheet accounts of the
// chart, all zero.
func NewSet() *Set {
	return &Set{Categories: []Category{
		{Category: Assets, Accounts: []Account{
			{Name: "Bank Accounts"},
			{Name: "Cash on Hand"},
			{Name: "Accounts Receivable"},
			{Name: "Inventory"},
			{Name: "Prepaid Expenses"},
			{Name: "VAT Receivable"},
			{Name: "Property, Plant & Equipment"},
			{Name: "Intangible Assets"},
		}},
		{Category: Liabilities, Accounts: []Account{
			{Name: "Accounts Payable"},
			{Name: "Accrued Expenses"},
			{Name: "VAT Payable"},
			{Name: "Long-Term Loans"},
			{Name: "End of Service Benefits"},
		}},
		{Category: Equity, Accounts: []Account{
			{Name: "Share Capital"},
			{Name: "Retained Earnings"},
			{Name: "Owner's Current Account"},
		}},
	}}
}

// SetValue writes one side of a named account. Unknown accounts are added
// to the given category, flagged as new.
func (s *Set) SetValue(cat CategoryName, name string, debit, credit decimal.Decimal) {
	for ci := range s.Categories {
		if s.Categories[ci].Category != cat {
			continue
		}

		for ai := range s.Categories[ci].Accounts {
			if strings.EqualFold(s.Categories[ci].Accounts[ai].Name, name) {
				s.Categories[ci].Accounts[ai].Debit = debit
				s.Categories[ci].Accounts[ai].Credit = credit
				return
			}
		}

		s.Categories[ci].Accounts = append(s.Categories[ci].Accounts, Account{
			Name:   name,
			Debit:  debit,
			Credit: credit,
			IsNew:  true,
		})

		return
	}
}

// MergeExtracted folds a free-form key/value map returned by the document
// extraction service into the set. Keys are normalized (lowercased,
// underscores to spaces), zero values are skipped, and each key is matched
// against every account name by equality or containment in either
// direction, first hit winning. Matched values land on the debit side for
// Assets and the credit side otherwise. Unmatched keys are dropped.
//
// The merge is additive: it never overwrites a populated side with zero.
func (s *Set) MergeExtracted(values map[string]string) {
	for key, raw := range values {
		amount := money.Parse(raw)
		if amount.IsZero() {
			continue
		}

		norm := normalizeKey(key)

	match:
		for ci := range s.Categories {
			for ai := range s.Categories[ci].Accounts {
				name := normalizeKey(s.Categories[ci].Accounts[ai].Name)
				if name != norm && !strings.Contains(name, norm) && !strings.Contains(norm, name) {
					continue
				}

				acct := &s.Categories[ci].Accounts[ai]
				if s.Categories[ci].Category == Assets {
					acct.Debit = amount
				} else {
					acct.Credit = amount
				}

				break match
			}
		}
	}
}

// NonZero returns every account holding an opening value on either side.
func (s *Set) NonZero() []Account {
	var out []Account
	for _, cat := range s.Categories {
		for _, acct := range cat.Accounts {
			if !acct.Debit.IsZero() || !acct.Credit.IsZero() {
				out = append(out, acct)
			}
		}
	}
	return out
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}
