// Package money centralizes amount parsing and the tolerances used by the
// balance and reconciliation checks. All amounts in the module are
// shopspring decimals; floats only appear at the JSON boundary.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum absolute difference between trial-balance
// debit and credit totals for the workflow to consider the table balanced.
var BalanceTolerance = decimal.RequireFromString("0.01")

// ReconcileTolerance is the maximum drift between a statement's reported and
// calculated closing balance before a reconciliation warning is raised.
var ReconcileTolerance = decimal.RequireFromString("0.1")

// Parse reads a user- or machine-supplied amount leniently. Thousands
// separators and surrounding whitespace are dropped; anything that still
// fails to parse is treated as zero, never as an error.
func Parse(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	return d
}
