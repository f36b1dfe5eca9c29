package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/akhaled-io/ftaledger/internal/opening"
	"github.com/akhaled-io/ftaledger/internal/session"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

type openingState int

const (
	openingStateBrowsing openingState = iota
	openingStateEditing
)

type openingLine struct {
	category opening.CategoryName
	account  opening.Account
}

// OpeningModel edits the opening balance seed: one value per balance-sheet
// account, debit side for assets, credit side otherwise.
type OpeningModel struct {
	CommonModel
	svc  *session.Service
	sess *workflow.Session

	state  openingState
	lines  []openingLine
	cursor int
	form   *huh.Form
	status string

	formCategory string
	formName     string
	formDebit    string
	formCredit   string
}

func NewOpeningModel(svc *session.Service, sess *workflow.Session) OpeningModel {
	m := OpeningModel{svc: svc, sess: sess}
	m.refreshLines()

	return m
}

func (m OpeningModel) Title() string { return "Opening Balances" }

func (m OpeningModel) ShortHelp() string {
	if m.state == openingStateEditing {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Enter: edit | n: new account"
}

func (m OpeningModel) Init() tea.Cmd {
	return nil
}

func (m OpeningModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if saved, ok := msg.(saveSessionMsg); ok {
		if saved.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", saved.err)
		}

		return m, nil
	}

	if m.state == openingStateEditing {
		return m.updateEditing(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.lines)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(m.lines) {
				line := m.lines[m.cursor]
				m.formCategory = string(line.category)
				m.formName = line.account.Name
				m.formDebit = FormatAmount(line.account.Debit)
				m.formCredit = FormatAmount(line.account.Credit)
				m.form = m.editForm(false)
				m.state = openingStateEditing

				return m, m.form.Init()
			}
		case "n":
			m.formCategory = string(opening.Assets)
			m.formName = ""
			m.formDebit = "0.00"
			m.formCredit = "0.00"
			m.form = m.editForm(true)
			m.state = openingStateEditing

			return m, m.form.Init()
		}
	}

	return m, nil
}

func (m OpeningModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = openingStateBrowsing
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

	m.state = openingStateBrowsing
	m.form = nil

	debit, _ := decimal.NewFromString(m.formDebit)
	credit, _ := decimal.NewFromString(m.formCredit)

	m.sess.SetOpening(opening.CategoryName(m.formCategory), m.formName, debit, credit)
	m.status = fmt.Sprintf("Saved %s", m.formName)
	m.refreshLines()

	sess := m.sess
	svc := m.svc

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return saveSessionMsg{err: svc.Save(ctx, sess)}
	}
}

func (m OpeningModel) View() string {
	if m.state == openingStateEditing && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Opening Balances") + "\n\n")

	var last opening.CategoryName
	for i, line := range m.lines {
		if line.category != last {
			b.WriteString(lipgloss.NewStyle().Underline(true).Render(string(line.category)) + "\n")
			last = line.category
		}

		cursor := "  "
		if i == m.cursor {
			cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render("> ")
		}

		name := line.account.Name
		if line.account.IsNew {
			name += " *"
		}

		b.WriteString(fmt.Sprintf("%s%-35s D %12s  C %12s\n",
			cursor, name, FormatAmount(line.account.Debit), FormatAmount(line.account.Credit)))
	}

	if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func (m *OpeningModel) refreshLines() {
	m.lines = m.lines[:0]
	for _, cat := range m.sess.Opening.Categories {
		for _, acct := range cat.Accounts {
			m.lines = append(m.lines, openingLine{category: cat.Category, account: acct})
		}
	}

	if m.cursor >= len(m.lines) {
		m.cursor = 0
	}
}

func (m *OpeningModel) editForm(newAccount bool) *huh.Form {
	fields := []huh.Field{}

	if newAccount {
		fields = append(fields,
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(
					huh.NewOption(string(opening.Assets), string(opening.Assets)),
					huh.NewOption(string(opening.Liabilities), string(opening.Liabilities)),
					huh.NewOption(string(opening.Equity), string(opening.Equity)),
				).
				Value(&m.formCategory),

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
		)
	}

	fields = append(fields,
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
	)

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(50).WithShowHelp(false)
}

func validAmount(s string) error {
	if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("not a number")
	}
	return nil
}
