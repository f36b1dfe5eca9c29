package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/akhaled-io/ftaledger/internal/session"
	"github.com/akhaled-io/ftaledger/internal/trialbalance"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

type tbState int

const (
	tbStateBrowsing tbState = iota
	tbStateEditingCell
	tbStateBreakdown
	tbStateAddingAccount
)

// TrialBalanceModel is the adjustment screen: direct cell edits, account
// breakdowns, extra accounts, and the balance check that gates the
// statements.
type TrialBalanceModel struct {
	CommonModel
	svc  *session.Service
	sess *workflow.Session

	state  tbState
	cursor int
	form   *huh.Form
	status string

	breakdownAccount string
	breakdownEntries []trialbalance.BreakdownEntry

	formField  string
	formValue  string
	formName   string
	formDesc   string
	formDebit  string
	formCredit string
}

func NewTrialBalanceModel(svc *session.Service, sess *workflow.Session) TrialBalanceModel {
	if sess.TrialBalance == nil {
		sess.RebuildTrialBalance()
	}

	return TrialBalanceModel{svc: svc, sess: sess}
}

func (m TrialBalanceModel) Title() string { return "Adjust Trial Balance" }

func (m TrialBalanceModel) ShortHelp() string {
	switch m.state {
	case tbStateBreakdown:
		return "Enter: add line | ctrl+s: save breakdown | ctrl+x: clear | Esc: cancel"
	case tbStateBrowsing:
		return "e: edit cell | b: breakdown | a: add account | r: rebuild"
	default:
		return "Esc: cancel | Enter/Tab: navigate form"
	}
}

func (m TrialBalanceModel) Init() tea.Cmd {
	return nil
}

func (m TrialBalanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if saved, ok := msg.(saveSessionMsg); ok {
		if saved.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", saved.err)
		}

		return m, nil
	}

	switch m.state {
	case tbStateBrowsing:
		return m.updateBrowsing(msg)
	case tbStateBreakdown:
		return m.updateBreakdown(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m TrialBalanceModel) updateBrowsing(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	entries := m.sess.TrialBalance.Entries

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
	case "e":
		if m.cursor >= len(entries) {
			break
		}

		entry := entries[m.cursor]
		if entry.Account == trialbalance.TotalsAccount {
			m.status = "Totals are computed, not edited"
			break
		}

		m.formField = string(trialbalance.FieldDebit)
		m.formValue = FormatAmount(entry.Debit)
		m.form = m.cellForm(entry.Account)
		m.state = tbStateEditingCell

		return m, m.form.Init()
	case "b":
		if m.cursor >= len(entries) {
			break
		}

		entry := entries[m.cursor]
		if entry.Account == trialbalance.TotalsAccount {
			m.status = "Totals cannot carry a breakdown"
			break
		}

		m.breakdownAccount = entry.Account
		m.breakdownEntries = append([]trialbalance.BreakdownEntry(nil), m.sess.TrialBalance.Breakdown(entry.Account)...)
		m.formDesc = ""
		m.formDebit = "0.00"
		m.formCredit = "0.00"
		m.form = m.breakdownLineForm()
		m.state = tbStateBreakdown

		return m, m.form.Init()
	case "a":
		m.formName = ""
		m.form = m.addAccountForm()
		m.state = tbStateAddingAccount

		return m, m.form.Init()
	case "r":
		m.sess.RebuildTrialBalance()
		m.status = "Trial balance rebuilt from ledger and opening balances"

		return m, m.saveCmd()
	}

	return m, nil
}

func (m TrialBalanceModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = tbStateBrowsing
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	state := m.state
	m.state = tbStateBrowsing
	m.form = nil

	switch state {
	case tbStateEditingCell:
		entry := m.sess.TrialBalance.Entries[m.cursor]
		value, _ := decimal.NewFromString(strings.TrimSpace(m.formValue))

		if err := m.sess.SetCell(entry.Account, trialbalance.Field(m.formField), value); err != nil {
			if errors.Is(err, workflow.ErrAccountLocked) {
				m.status = fmt.Sprintf("%s is backed by a breakdown; edit the breakdown instead", entry.Account)
				return m, nil
			}

			m.status = fmt.Sprintf("Edit failed: %v", err)

			return m, nil
		}

		m.status = fmt.Sprintf("%s updated", entry.Account)
	case tbStateAddingAccount:
		m.sess.AddAccount(m.formName)
		m.status = fmt.Sprintf("Account %q available", m.formName)
	}

	return m, m.saveCmd()
}

func (m TrialBalanceModel) updateBreakdown(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = tbStateBrowsing
			m.form = nil

			return m, nil
		case "ctrl+s":
			m.sess.SaveBreakdown(m.breakdownAccount, m.breakdownEntries)
			m.status = fmt.Sprintf("Breakdown saved for %s", m.breakdownAccount)
			m.state = tbStateBrowsing
			m.form = nil

			return m, m.saveCmd()
		case "ctrl+x":
			m.breakdownEntries = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	debit, _ := decimal.NewFromString(strings.TrimSpace(m.formDebit))
	credit, _ := decimal.NewFromString(strings.TrimSpace(m.formCredit))

	m.breakdownEntries = append(m.breakdownEntries, trialbalance.BreakdownEntry{
		Description: m.formDesc,
		Debit:       debit,
		Credit:      credit,
	})

	m.formDesc = ""
	m.formDebit = "0.00"
	m.formCredit = "0.00"
	m.form = m.breakdownLineForm()

	return m, m.form.Init()
}

func (m TrialBalanceModel) View() string {
	switch m.state {
	case tbStateBreakdown:
		return m.breakdownView()
	case tbStateEditingCell, tbStateAddingAccount:
		if m.form != nil {
			return lipgloss.NewStyle().Padding(1).Render(m.form.View())
		}
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Trial Balance") + "\n\n")

	for i, entry := range m.sess.TrialBalance.Entries {
		cursor := "  "
		if i == m.cursor {
			cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render("> ")
		}

		name := entry.Account
		if m.sess.TrialBalance.HasBreakdown(entry.Account) {
			name += " [breakdown]"
		}

		line := fmt.Sprintf("%s%-45s D %14s  C %14s", cursor, name, FormatAmount(entry.Debit), FormatAmount(entry.Credit))
		if entry.Account == trialbalance.TotalsAccount {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}

		b.WriteString(line + "\n")
	}

	b.WriteString("\n")

	if m.sess.TrialBalance.IsBalanced() {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("Balanced") + "\n")
	} else {
		totals := m.sess.TrialBalance.Totals()
		diff := totals.Debit.Sub(totals.Credit)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("203")).
			Render(fmt.Sprintf("Out of balance by %s", FormatAmount(diff))) + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func (m TrialBalanceModel) breakdownView() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Breakdown: "+m.breakdownAccount) + "\n\n")

	total := trialbalance.BreakdownEntry{}
	for _, e := range m.breakdownEntries {
		b.WriteString(fmt.Sprintf("  %-40s D %12s  C %12s\n", e.Description, FormatAmount(e.Debit), FormatAmount(e.Credit)))
		total.Debit = total.Debit.Add(e.Debit)
		total.Credit = total.Credit.Add(e.Credit)
	}

	if len(m.breakdownEntries) > 0 {
		b.WriteString(fmt.Sprintf("  %-40s D %12s  C %12s\n\n", "(sum)", FormatAmount(total.Debit), FormatAmount(total.Credit)))
	}

	if m.form != nil {
		b.WriteString(m.form.View())
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func (m *TrialBalanceModel) cellForm(account string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("field").
				Title(fmt.Sprintf("Edit %s", account)).
				Options(
					huh.NewOption("Debit", string(trialbalance.FieldDebit)),
					huh.NewOption("Credit", string(trialbalance.FieldCredit)),
				).
				Value(&m.formField),

			huh.NewInput().
				Key("value").
				Title("Value").
				Value(&m.formValue).
				Validate(validAmount),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m *TrialBalanceModel) breakdownLineForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Line description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("debit").
				Title("Debit").
				Value(&m.formDebit).
				Validate(validAmount),

			huh.NewInput().
				Key("credit").
				Title("Credit").
				Value(&m.formCredit).
				Validate(validAmount),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m *TrialBalanceModel) addAccountForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Account name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("account name cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m TrialBalanceModel) saveCmd() tea.Cmd {
	sess := m.sess
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return saveSessionMsg{err: svc.Save(ctx, sess)}
	}
}
