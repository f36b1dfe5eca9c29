package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/akhaled-io/ftaledger/internal/workflow"
)

// StatementKind selects which derived statement a StatementModel renders.
type StatementKind int

const (
	StatementProfitLoss StatementKind = iota
	StatementBalanceSheet
)

// StatementModel is a read-only screen over the derivation cascade. The
// figures recompute from the trial balance on every render; nothing here
// is edited.
type StatementModel struct {
	CommonModel
	sess *workflow.Session
	kind StatementKind
}

func NewStatementModel(sess *workflow.Session, kind StatementKind) StatementModel {
	return StatementModel{sess: sess, kind: kind}
}

func (m StatementModel) Title() string {
	if m.kind == StatementBalanceSheet {
		return "Balance Sheet"
	}

	return "Profit & Loss"
}

func (m StatementModel) ShortHelp() string {
	return "Figures derive from the trial balance; adjust there to change them"
}

func (m StatementModel) Init() tea.Cmd {
	return nil
}

func (m StatementModel) Update(_ tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m StatementModel) View() string {
	v := m.sess.Derive()

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.Title()) + "\n\n")

	if m.kind == StatementProfitLoss {
		writeRow(&b, "Operating Revenue", v.OperatingRevenue, false)
		writeRow(&b, "Cost of Revenue", v.CostOfRevenue, false)
		writeRow(&b, "Gross Profit", v.GrossProfit, true)
		writeRow(&b, "Administrative Expenses", v.AdministrativeExpenses, false)
		writeRow(&b, "Selling & Distribution Expenses", v.SellingExpenses, false)
		writeRow(&b, "Finance Costs", v.FinanceCosts, false)
		writeRow(&b, "Other Income", v.OtherIncome, false)
		writeRow(&b, "Net Profit", v.NetProfit, true)
		writeRow(&b, "Other Comprehensive Income", v.OtherComprehensiveIncome, false)
		writeRow(&b, "Total Comprehensive Income", v.TotalComprehensiveIncome, true)
		b.WriteString("\n")
		writeRow(&b, "Taxable Income", v.TaxableIncome, false)
		writeRow(&b, "Corporate Tax Liability", v.CorporateTaxLiability, true)
	} else {
		writeRow(&b, "Current Assets", v.CurrentAssets, false)
		writeRow(&b, "Non-Current Assets", v.NonCurrentAssets, false)
		writeRow(&b, "Total Assets", v.TotalAssets, true)
		b.WriteString("\n")
		writeRow(&b, "Current Liabilities", v.CurrentLiabilities, false)
		writeRow(&b, "Non-Current Liabilities", v.NonCurrentLiabilities, false)
		writeRow(&b, "Total Liabilities", v.TotalLiabilities, true)
		b.WriteString("\n")
		writeRow(&b, "Total Equity", v.TotalEquity, true)
		writeRow(&b, "Total Equity & Liabilities", v.TotalEquityLiabilities, true)
	}

	if m.sess.ReliefClaimed() {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("220")).
			Render("Small business relief claimed: reported figures are zeroed") + "\n")
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func writeRow(b *strings.Builder, label string, value decimal.Decimal, bold bool) {
	line := fmt.Sprintf("  %-35s %16s", label, FormatAmount(value))
	if bold {
		line = lipgloss.NewStyle().Bold(true).Render(line)
	}

	b.WriteString(line + "\n")
}
