package workflow_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhaled-io/ftaledger/internal/ledger"
	"github.com/akhaled-io/ftaledger/internal/opening"
	"github.com/akhaled-io/ftaledger/internal/reconcile"
	"github.com/akhaled-io/ftaledger/internal/trialbalance"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// balancedSession sets up a session whose trial balance comes out balanced:
// opening bank 1000 debit against share capital 1000 credit, one revenue
// credit matched by the bank closing movement.
func balancedSession(t *testing.T) *workflow.Session {
	t.Helper()

	s := workflow.New("FY2025")

	s.Opening.SetValue(opening.Assets, "Bank Accounts", d("1000"), decimal.Zero)
	s.Opening.SetValue(opening.Equity, "Share Capital", decimal.Zero, d("1000"))

	s.IngestTransactions([]ledger.Transaction{{
		ID:          uuid.New(),
		Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "invoice 42",
		Credit:      d("500"),
		Category:    "Revenue | Sales Revenue",
		SourceFile:  "jan.csv",
	}}, &reconcile.Summary{
		SourceFile:     "jan.csv",
		OpeningBalance: d("1000"),
		ClosingBalance: d("1500"),
	})

	return s
}

func TestNext_FullPathWithoutVat(t *testing.T) {
	s := balancedSession(t)

	require.Equal(t, workflow.StageReview, s.Stage)
	require.NoError(t, s.Next())
	require.Equal(t, workflow.StageSummarize, s.Stage)

	// Not VAT registered: the fork skips the VAT documents stage.
	require.NoError(t, s.Next())
	require.Equal(t, workflow.StageOpeningBalances, s.Stage)

	require.NoError(t, s.Next())
	require.Equal(t, workflow.StageAdjustTrialBalance, s.Stage)
	require.NotNil(t, s.TrialBalance)

	require.NoError(t, s.Next())
	require.Equal(t, workflow.StageProfitLoss, s.Stage)
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	require.Equal(t, workflow.StageQuestionnaire, s.Stage)
}

func TestNext_VatFork(t *testing.T) {
	s := balancedSession(t)
	s.VatRegistered = true
	s.VatFilings = true

	require.NoError(t, s.Next()) // Review -> Summarize
	require.NoError(t, s.Next())
	assert.Equal(t, workflow.StageVatDocs, s.Stage)

	require.NoError(t, s.Next())
	assert.Equal(t, workflow.StageOpeningBalances, s.Stage)

	// Back honors the path taken forward.
	s.Back()
	assert.Equal(t, workflow.StageVatDocs, s.Stage)

	s.VatFilings = false
	s.Next() // -> OpeningBalances
	s.Back()
	assert.Equal(t, workflow.StageSummarize, s.Stage)
}

func TestBack_StopsAtReview(t *testing.T) {
	s := workflow.New("x")
	s.Back()
	assert.Equal(t, workflow.StageReview, s.Stage)
}

func TestNext_BalanceGate(t *testing.T) {
	s := balancedSession(t)

	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	require.NoError(t, s.Next()) // builds trial balance, enters adjust stage

	// Knock the table out of balance.
	require.NoError(t, s.SetCell("Rent Expense", trialbalance.FieldDebit, d("100")))

	err := s.Next()
	assert.ErrorIs(t, err, workflow.ErrNotBalanced)
	assert.Equal(t, workflow.StageAdjustTrialBalance, s.Stage)

	// Correct it and the gate opens.
	require.NoError(t, s.SetCell("Rent Expense", trialbalance.FieldDebit, decimal.Zero))
	assert.NoError(t, s.Next())
	assert.Equal(t, workflow.StageProfitLoss, s.Stage)
}

func TestNext_QuestionnaireGate(t *testing.T) {
	s := balancedSession(t)
	s.Stage = workflow.StageQuestionnaire

	err := s.Next()
	assert.ErrorIs(t, err, workflow.ErrQuestionnaireIncomplete)

	for _, item := range workflow.QuestionnaireItems {
		s.Answer(item.Key, "n/a")
	}
	s.Answer("small_business_relief", "no")

	require.NoError(t, s.Next())
	assert.Equal(t, workflow.StageFinalReport, s.Stage)

	// Terminal stage is re-enterable, not locked.
	assert.NoError(t, s.Next())
	assert.Equal(t, workflow.StageFinalReport, s.Stage)
}

func TestSetCell_LockedByBreakdown(t *testing.T) {
	s := balancedSession(t)
	s.RebuildTrialBalance()

	s.SaveBreakdown("Utilities", []trialbalance.BreakdownEntry{
		{Description: "DEWA", Debit: d("300")},
	})

	err := s.SetCell("utilities", trialbalance.FieldDebit, d("999"))
	assert.ErrorIs(t, err, workflow.ErrAccountLocked)

	entry, ok := s.TrialBalance.Get("Utilities")
	require.True(t, ok)
	assert.True(t, entry.Debit.Equal(d("300")))
}

func TestRebuild_ReplaysBreakdowns(t *testing.T) {
	s := balancedSession(t)
	s.RebuildTrialBalance()

	s.SaveBreakdown("Sales Revenue", []trialbalance.BreakdownEntry{
		{Description: "project A", Credit: d("400")},
		{Description: "project B", Credit: d("250")},
	})

	s.RebuildTrialBalance()

	entry, ok := s.TrialBalance.Get("Sales Revenue")
	require.True(t, ok)
	assert.True(t, entry.Credit.Equal(d("650")), "working note dominates the rebuilt row")
}

func TestReliefClaimed(t *testing.T) {
	s := workflow.New("x")
	assert.False(t, s.ReliefClaimed())

	s.Answer("small_business_relief", "Yes")
	assert.True(t, s.ReliefClaimed())

	s.Answer("small_business_relief", "no")
	assert.False(t, s.ReliefClaimed())
}

func TestDerive_UsesReliefFlag(t *testing.T) {
	s := balancedSession(t)
	s.RebuildTrialBalance()

	v := s.Derive()
	assert.True(t, v.OperatingRevenue.Equal(d("500")))

	s.Answer("small_business_relief", "yes")

	v = s.Derive()
	assert.True(t, v.OperatingRevenue.IsZero())
	assert.True(t, v.ReliefOperatingRevenue.Equal(d("500")))
}

func TestReconciliation(t *testing.T) {
	s := balancedSession(t)

	results := s.Reconciliation()
	require.Len(t, results, 1)
	assert.True(t, results[0].IsValid)
	assert.True(t, results[0].CalculatedClosing.Equal(d("1500")))
}
