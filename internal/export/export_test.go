package export_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhaled-io/ftaledger/internal/export"
	"github.com/akhaled-io/ftaledger/internal/ledger"
	"github.com/akhaled-io/ftaledger/internal/opening"
	"github.com/akhaled-io/ftaledger/internal/reconcile"
	"github.com/akhaled-io/ftaledger/internal/trialbalance"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSnapshot(t *testing.T) {
	s := workflow.New("FY2025")
	s.Opening.SetValue(opening.Assets, "Bank Accounts", d("1000"), decimal.Zero)
	s.Opening.SetValue(opening.Equity, "Share Capital", decimal.Zero, d("1000"))

	s.IngestTransactions([]ledger.Transaction{{
		ID:          uuid.New(),
		Date:        time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Description: "invoice 7",
		Credit:      d("250"),
		Category:    "Revenue | Sales Revenue",
		SourceFile:  "feb.csv",
	}}, &reconcile.Summary{
		SourceFile:     "feb.csv",
		OpeningBalance: d("1000"),
		ClosingBalance: d("1250"),
	})
	s.RebuildTrialBalance()

	wb := export.Snapshot(s)

	require.NotEmpty(t, wb.TrialBalance)
	last := wb.TrialBalance[len(wb.TrialBalance)-1]
	assert.Equal(t, trialbalance.TotalsAccount, last.Account)

	require.Len(t, wb.Ledger, 1)
	assert.Equal(t, "invoice 7", wb.Ledger[0].Description)

	require.Len(t, wb.OpeningBalances, 2)

	require.NotEmpty(t, wb.FormValues)
	assert.Equal(t, "Operating Revenue", wb.FormValues[0].Label)
	assert.True(t, wb.FormValues[0].Value.Equal(d("250")))

	require.Len(t, wb.Reconciliation, 1)
	assert.True(t, wb.Reconciliation[0].IsValid)
}

func TestProjections_NilInputs(t *testing.T) {
	assert.Nil(t, export.TrialBalanceRows(nil))
	assert.Nil(t, export.LedgerRows(nil))
	assert.Nil(t, export.OpeningRows(nil))
}
