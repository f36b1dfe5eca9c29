package reconcile_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/akhaled-io/ftaledger/internal/reconcile"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		opening  string
		debit    string
		credit   string
		closing  string
		wantCalc string
		wantOK   bool
	}{
		{
			// 1000 - 300 + 100 = 800, matches reported.
			name: "Exact", opening: "1000", debit: "300", credit: "100",
			closing: "800", wantCalc: "800", wantOK: true,
		},
		{
			name: "WithinTolerance", opening: "1000", debit: "300", credit: "100",
			closing: "800.05", wantCalc: "800", wantOK: true,
		},
		{
			name: "BeyondTolerance", opening: "1000", debit: "300", credit: "100",
			closing: "801", wantCalc: "800", wantOK: false,
		},
		{
			name: "OverdraftClosing", opening: "100", debit: "500", credit: "0",
			closing: "-400", wantCalc: "-400", wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := reconcile.Check(reconcile.Summary{
				SourceFile:     "jan.csv",
				OpeningBalance: d(tt.opening),
				ClosingBalance: d(tt.closing),
			}, d(tt.debit), d(tt.credit))

			assert.True(t, res.CalculatedClosing.Equal(d(tt.wantCalc)),
				"calculated %s", res.CalculatedClosing)
			assert.Equal(t, tt.wantOK, res.IsValid)
		})
	}
}

func TestClosingTotal(t *testing.T) {
	total := reconcile.ClosingTotal([]reconcile.Summary{
		{ClosingBalance: d("800")},
		{ClosingBalance: d("-150.50")},
	})
	assert.True(t, total.Equal(d("649.5")))

	assert.True(t, reconcile.ClosingTotal(nil).IsZero())
}
