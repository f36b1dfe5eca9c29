package view

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akhaled-io/ftaledger/internal/session"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

type sessionsState int

const (
	sessionsStateList sessionsState = iota
	sessionsStateNaming
)

// sessionItem wraps a session to implement list.Item.
type sessionItem struct {
	sess *workflow.Session
}

func (i sessionItem) Title() string {
	stage := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.sess.Stage))
	return fmt.Sprintf("%s  %s", i.sess.Name, stage)
}

func (i sessionItem) Description() string {
	return fmt.Sprintf("updated %s", FormatDate(i.sess.UpdatedAt))
}

func (i sessionItem) FilterValue() string { return i.sess.Name }

// SessionChosenMsg carries the session the wizard should open.
type SessionChosenMsg struct {
	Session *workflow.Session
}

type SessionsModel struct {
	CommonModel
	svc *session.Service

	state     sessionsState
	list      list.Model
	nameInput textinput.Model

	loading bool
	status  string
}

func NewSessionsModel(svc *session.Service) SessionsModel {
	l := list.New([]list.Item{}, sessionItemDelegate{}, 0, 0)
	l.Title = "Filing Sessions"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	ti := textinput.New()
	ti.Placeholder = "e.g. FY2025 Trading LLC"
	ti.Width = 40
	ti.Prompt = "Session name: "

	return SessionsModel{
		svc:       svc,
		list:      l,
		nameInput: ti,
		loading:   true,
	}
}

func (m SessionsModel) Title() string { return "Filing Sessions" }

func (m SessionsModel) ShortHelp() string {
	if m.state == sessionsStateNaming {
		return "Esc: cancel | Enter: create"
	}

	return "q: quit | Enter: open | n: new | x: delete | /: filter"
}

func (m SessionsModel) Init() tea.Cmd {
	return m.loadSessionsCmd()
}

func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSessionsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading sessions: %v", msg.err)
			return m, nil
		}

		items := make([]list.Item, len(msg.sessions))
		for i, s := range msg.sessions {
			items[i] = sessionItem{sess: s}
		}

		m.list.SetItems(items)

		return m, nil

	case sessionCreatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error creating session: %v", msg.err)
			m.state = sessionsStateList

			return m, nil
		}

		return m, func() tea.Msg { return SessionChosenMsg{Session: msg.sess} }

	case sessionDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting session: %v", msg.err)
			return m, nil
		}

		m.loading = true

		return m, m.loadSessionsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	if m.state == sessionsStateNaming {
		return m.updateNaming(msg)
	}

	return m.updateList(msg)
}

func (m SessionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.list.FilterState() != list.Filtering {
			switch keyMsg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "n":
				m.state = sessionsStateNaming
				m.nameInput.SetValue("")
				m.nameInput.Focus()

				return m, textinput.Blink
			case "x":
				if selected, ok := m.list.SelectedItem().(sessionItem); ok {
					return m, m.deleteSessionCmd(selected.sess)
				}
			case "enter":
				if selected, ok := m.list.SelectedItem().(sessionItem); ok {
					sess := selected.sess
					return m, func() tea.Msg { return SessionChosenMsg{Session: sess} }
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m SessionsModel) updateNaming(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = sessionsStateList
			return m, nil
		case tea.KeyEnter:
			name := m.nameInput.Value()
			if name == "" {
				m.status = "Session name cannot be empty"
				return m, nil
			}

			return m, m.createSessionCmd(name)
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)

	return m, cmd
}

func (m SessionsModel) View() string {
	if m.state == sessionsStateNaming {
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("New Filing Session\n\n%s\n\n(Enter to create, Esc to cancel)", m.nameInput.View()),
		)
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading sessions...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

type loadSessionsMsg struct {
	sessions []*workflow.Session
	err      error
}

func (m SessionsModel) loadSessionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sessions, err := m.svc.List(ctx)

		return loadSessionsMsg{sessions: sessions, err: err}
	}
}

type sessionCreatedMsg struct {
	sess *workflow.Session
	err  error
}

func (m SessionsModel) createSessionCmd(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sess, err := m.svc.Create(ctx, name)

		return sessionCreatedMsg{sess: sess, err: err}
	}
}

type sessionDeletedMsg struct {
	err error
}

func (m SessionsModel) deleteSessionCmd(sess *workflow.Session) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return sessionDeletedMsg{err: m.svc.Delete(ctx, sess.ID)}
	}
}

// sessionItemDelegate renders items in the session list.
type sessionItemDelegate struct{}

func (d sessionItemDelegate) Height() int                             { return 2 }
func (d sessionItemDelegate) Spacing() int                            { return 0 }
func (d sessionItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d sessionItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(sessionItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
