package workflow

// Stage is one step of the nine-stage filing wizard. Transitions are
// linear, with a single fork after Summarize and gates in front of
// ProfitLoss and FinalReport.
type Stage int

const (
	StageReview Stage = iota + 1
	StageSummarize
	StageVatDocs
	StageOpeningBalances
	StageAdjustTrialBalance
	StageProfitLoss
	StageBalanceSheet
	StageQuestionnaire
	StageFinalReport
)

var stageNames = map[Stage]string{
	StageReview:             "Review Transactions",
	StageSummarize:          "Summary",
	StageVatDocs:            "VAT Documents",
	StageOpeningBalances:    "Opening Balances",
	StageAdjustTrialBalance: "Adjust Trial Balance",
	StageProfitLoss:         "Profit & Loss",
	StageBalanceSheet:       "Balance Sheet",
	StageQuestionnaire:      "Questionnaire",
	StageFinalReport:        "Final Report",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "Unknown"
}
