// Package workflow owns the FilingSession aggregate: one filing's ledger,
// opening balances, trial balance, statement summaries, and questionnaire,
// plus the stage machine that sequences them. Everything the wizard mutates
// goes through this aggregate, one synchronous action at a time.
package workflow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/akhaled-io/ftaledger/internal/fta"
	"github.com/akhaled-io/ftaledger/internal/ledger"
	"github.com/akhaled-io/ftaledger/internal/opening"
	"github.com/akhaled-io/ftaledger/internal/reconcile"
	"github.com/akhaled-io/ftaledger/internal/trialbalance"
)

var (
	// ErrNotBalanced blocks the transition into the profit-and-loss stage
	// while trial-balance totals disagree.
	ErrNotBalanced = errors.New("trial balance does not balance")

	// ErrQuestionnaireIncomplete blocks the final report until every
	// questionnaire item has an answer.
	ErrQuestionnaireIncomplete = errors.New("questionnaire has unanswered items")

	// ErrAccountLocked rejects direct cell edits on an account backed by a
	// working note.
	ErrAccountLocked = errors.New("account is backed by a working note")
)

// QuestionnaireItem is one fixed question of the final questionnaire.
type QuestionnaireItem struct {
	Key    string
	Prompt string
}

// QuestionnaireItems lists every question, in presentation order. The
// small-business-relief answer doubles as the relief flag for derivation.
var QuestionnaireItems = []QuestionnaireItem{
	{Key: "business_activity", Prompt: "Main business activity"},
	{Key: "license_authority", Prompt: "Trade license issuing authority"},
	{Key: "financial_year_end", Prompt: "Financial year end"},
	{Key: "small_business_relief", Prompt: "Claim Small Business Relief? (yes/no)"},
	{Key: "declaration", Prompt: "Declaration confirmed by"},
}

const reliefKey = "small_business_relief"

// LogEntry records one applied mutation, for the session's audit trail.
type LogEntry struct {
	At     time.Time `json:"at"`
	Action string    `json:"action"`
}

// Session is the aggregate for one filing. Owned by exactly one wizard
// instance; no locking, no cross-session sharing.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Stage Stage `json:"stage"`

	Ledger       *ledger.Ledger      `json:"ledger"`
	Opening      *opening.Set        `json:"opening"`
	TrialBalance *trialbalance.Table `json:"trial_balance,omitempty"`
	Statements   []reconcile.Summary `json:"statements,omitempty"`

	VatRegistered bool `json:"vat_registered"`
	VatFilings    bool `json:"vat_filings"`

	Answers map[string]string `json:"answers,omitempty"`

	Log []LogEntry `json:"log,omitempty"`
}

// New creates an empty session at the review stage.
func New(name string) *Session {
	now := time.Now().UTC()

	return &Session{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Stage:     StageReview,
		Ledger:    ledger.New(),
		Opening:   opening.NewSet(),
		Answers:   make(map[string]string),
	}
}

func (s *Session) record(format string, args ...any) {
	s.UpdatedAt = time.Now().UTC()
	s.Log = append(s.Log, LogEntry{At: s.UpdatedAt, Action: fmt.Sprintf(format, args...)})
}

// routesThroughVat reports whether the Summarize fork visits the VAT
// documents stage: only when the business is VAT registered and has filings
// for the period.
func (s *Session) routesThroughVat() bool {
	return s.VatRegistered && s.VatFilings
}

// Next advances one stage forward, applying the fork and the two gates.
// Gate failures leave the stage unchanged and return the gate's error.
func (s *Session) Next() error {
	switch s.Stage {
	case StageReview:
		s.Stage = StageSummarize

	case StageSummarize:
		if s.routesThroughVat() {
			s.Stage = StageVatDocs
		} else {
			s.Stage = StageOpeningBalances
		}

	case StageVatDocs:
		s.Stage = StageOpeningBalances

	case StageOpeningBalances:
		s.RebuildTrialBalance()
		s.Stage = StageAdjustTrialBalance

	case StageAdjustTrialBalance:
		if s.TrialBalance == nil || !s.TrialBalance.IsBalanced() {
			return ErrNotBalanced
		}
		s.Stage = StageProfitLoss

	case StageProfitLoss:
		s.Stage = StageBalanceSheet

	case StageBalanceSheet:
		s.Stage = StageQuestionnaire

	case StageQuestionnaire:
		if !s.QuestionnaireComplete() {
			return ErrQuestionnaireIncomplete
		}
		s.Stage = StageFinalReport

	case StageFinalReport:
		// Terminal and re-enterable; nothing beyond it.
	}

	s.record("stage -> %s", s.Stage)

	return nil
}

// Back steps to the immediately preceding stage, honoring the fork: when
// VAT documents were skipped on the way forward they are skipped on the way
// back too.
func (s *Session) Back() {
	switch s.Stage {
	case StageReview:
		return
	case StageOpeningBalances:
		if s.routesThroughVat() {
			s.Stage = StageVatDocs
		} else {
			s.Stage = StageSummarize
		}
	default:
		s.Stage--
	}

	s.record("stage -> %s", s.Stage)
}

// IngestTransactions adds statement rows to the ledger along with the
// file's reported balances for reconciliation.
func (s *Session) IngestTransactions(txs []ledger.Transaction, summary *reconcile.Summary) {
	s.Ledger.Ingest(txs)
	if summary != nil {
		s.Statements = append(s.Statements, *summary)
	}
	s.record("ingested %d transactions", len(txs))
}

// RebuildTrialBalance re-runs the aggregation from the session's current
// inputs, then replays stored working notes so their dominance over the
// aggregated rows survives the rebuild.
func (s *Session) RebuildTrialBalance() {
	var breakdowns map[string][]trialbalance.BreakdownEntry
	if s.TrialBalance != nil {
		breakdowns = s.TrialBalance.Breakdowns
	}

	s.TrialBalance = trialbalance.Build(
		s.Opening,
		s.Ledger.CategorySummary(),
		reconcile.ClosingTotal(s.Statements),
	)

	for account, entries := range breakdowns {
		s.TrialBalance.SaveBreakdown(account, entries)
	}

	s.record("trial balance rebuilt")
}

// SetCell edits one trial-balance cell. Accounts backed by a working note
// are locked against direct edits.
func (s *Session) SetCell(account string, field trialbalance.Field, value decimal.Decimal) error {
	if s.TrialBalance == nil {
		s.TrialBalance = &trialbalance.Table{}
	}

	if s.TrialBalance.HasBreakdown(account) {
		return ErrAccountLocked
	}

	s.TrialBalance.SetCell(account, field, value)
	s.record("set %s %s = %s", account, field, value)

	return nil
}

// SaveBreakdown stores a working note and re-derives the account's row.
func (s *Session) SaveBreakdown(account string, entries []trialbalance.BreakdownEntry) {
	if s.TrialBalance == nil {
		s.TrialBalance = &trialbalance.Table{}
	}

	s.TrialBalance.SaveBreakdown(account, entries)
	s.record("breakdown saved for %s", account)
}

// AddAccount inserts an ad-hoc trial-balance row.
func (s *Session) AddAccount(name string) {
	if s.TrialBalance == nil {
		s.TrialBalance = &trialbalance.Table{}
	}

	s.TrialBalance.AddAccount(name)
	s.record("account added: %s", name)
}

// SetVatStatus records the VAT registration answers that select the
// summarize-stage fork.
func (s *Session) SetVatStatus(registered, filings bool) {
	s.VatRegistered = registered
	s.VatFilings = filings
	s.record("vat status: registered=%t filings=%t", registered, filings)
}

// SetOpening writes one opening balance account.
func (s *Session) SetOpening(cat opening.CategoryName, name string, debit, credit decimal.Decimal) {
	if s.Opening == nil {
		s.Opening = opening.NewSet()
	}

	s.Opening.SetValue(cat, name, debit, credit)
	s.record("opening balance set: %s", name)
}

// MergeExtractedOpening folds extracted document figures into the opening
// balance set.
func (s *Session) MergeExtractedOpening(values map[string]string) {
	if s.Opening == nil {
		s.Opening = opening.NewSet()
	}

	s.Opening.MergeExtracted(values)
	s.record("opening balances merged from %d extracted values", len(values))
}

// Answer records one questionnaire response.
func (s *Session) Answer(key, value string) {
	if s.Answers == nil {
		s.Answers = make(map[string]string)
	}

	s.Answers[key] = value
	s.record("answered %s", key)
}

// QuestionnaireComplete reports whether every fixed item has a non-empty
// answer.
func (s *Session) QuestionnaireComplete() bool {
	for _, item := range QuestionnaireItems {
		if strings.TrimSpace(s.Answers[item.Key]) == "" {
			return false
		}
	}
	return true
}

// ReliefClaimed reads the small-business-relief election out of the
// questionnaire.
func (s *Session) ReliefClaimed() bool {
	ans := strings.ToLower(strings.TrimSpace(s.Answers[reliefKey]))
	return ans == "yes" || ans == "y" || ans == "true"
}

// Derive computes the form values for the session's current trial balance
// and relief election.
func (s *Session) Derive() fta.FormValues {
	tb := s.TrialBalance
	if tb == nil {
		tb = &trialbalance.Table{}
	}

	return fta.Derive(tb, s.ReliefClaimed())
}

// Reconciliation runs the statement check for every source file.
func (s *Session) Reconciliation() []reconcile.Result {
	totals := s.Ledger.SourceTotals()

	results := make([]reconcile.Result, 0, len(s.Statements))
	for _, summary := range s.Statements {
		pair := totals[summary.SourceFile]
		results = append(results, reconcile.Check(summary, pair[0], pair[1]))
	}

	return results
}
