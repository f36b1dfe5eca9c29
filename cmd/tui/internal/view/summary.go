package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/akhaled-io/ftaledger/internal/session"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

// SummaryModel shows the per-category totals and statement reconciliation,
// and records the VAT answers that pick the route through the wizard.
type SummaryModel struct {
	CommonModel
	svc  *session.Service
	sess *workflow.Session

	form   *huh.Form
	status string

	formRegistered bool
	formFilings    bool
}

func NewSummaryModel(svc *session.Service, sess *workflow.Session) SummaryModel {
	m := SummaryModel{
		svc:            svc,
		sess:           sess,
		formRegistered: sess.VatRegistered,
		formFilings:    sess.VatFilings,
	}
	m.form = m.vatForm()

	return m
}

func (m SummaryModel) Title() string { return "Summary" }

func (m SummaryModel) ShortHelp() string {
	return "Enter: answer | answers decide whether VAT documents are requested next"
}

func (m SummaryModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if saved, ok := msg.(saveSessionMsg); ok {
		if saved.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", saved.err)
		}

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.sess.SetVatStatus(m.formRegistered, m.formFilings)
	m.status = "VAT answers recorded"
	m.form = m.vatForm()

	sess := m.sess
	svc := m.svc

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return saveSessionMsg{err: svc.Save(ctx, sess)}
	}
}

func (m SummaryModel) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Category Summary") + "\n\n")

	summary := m.sess.Ledger.CategorySummary()
	if len(summary) == 0 {
		b.WriteString("No categorized transactions yet.\n")
	}

	for _, row := range summary {
		b.WriteString(fmt.Sprintf("  %-45s D %12s  C %12s\n",
			row.Account, FormatAmount(row.Debit), FormatAmount(row.Credit)))
	}

	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Statement Reconciliation") + "\n\n")

	results := m.sess.Reconciliation()
	if len(results) == 0 {
		b.WriteString("No statements imported.\n")
	}

	for _, r := range results {
		mark := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("ok")
		if !r.IsValid {
			mark = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render("MISMATCH")
		}

		b.WriteString(fmt.Sprintf("  %-30s computed %12s  reported %12s  %s\n",
			r.SourceFile, FormatAmount(r.CalculatedClosing), FormatAmount(r.ReportedClosing), mark))
	}

	b.WriteString("\n" + m.form.View())

	if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func (m *SummaryModel) vatForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("vat_registered").
				Title("Is the business VAT registered?").
				Affirmative("Yes").
				Negative("No").
				Value(&m.formRegistered),

			huh.NewConfirm().
				Key("vat_filings").
				Title("Were VAT returns filed during the period?").
				Affirmative("Yes").
				Negative("No").
				Value(&m.formFilings),
		),
	).WithWidth(60).WithShowHelp(false)
}
