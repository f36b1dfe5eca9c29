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

// QuestionnaireModel collects the fixed filing questions. Every item needs
// a non-empty answer before the final report opens.
type QuestionnaireModel struct {
	CommonModel
	svc  *session.Service
	sess *workflow.Session

	form    *huh.Form
	answers []string
	status  string
}

func NewQuestionnaireModel(svc *session.Service, sess *workflow.Session) QuestionnaireModel {
	m := QuestionnaireModel{svc: svc, sess: sess}

	m.answers = make([]string, len(workflow.QuestionnaireItems))
	for i, item := range workflow.QuestionnaireItems {
		m.answers[i] = sess.Answers[item.Key]
	}

	fields := make([]huh.Field, len(workflow.QuestionnaireItems))
	for i, item := range workflow.QuestionnaireItems {
		fields[i] = huh.NewInput().
			Key(item.Key).
			Title(item.Prompt).
			Value(&m.answers[i]).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("an answer is required")
				}
				return nil
			})
	}

	m.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(60).WithShowHelp(false)

	return m
}

func (m QuestionnaireModel) Title() string { return "Questionnaire" }

func (m QuestionnaireModel) ShortHelp() string {
	return "Enter/Tab: navigate form | all questions must be answered"
}

func (m QuestionnaireModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m QuestionnaireModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	for i, item := range workflow.QuestionnaireItems {
		m.sess.Answer(item.Key, m.answers[i])
	}

	m.status = "Answers recorded"

	sess := m.sess
	svc := m.svc

	return m, tea.Batch(
		func() tea.Msg {
			ctx, cancel := DbCtx()
			defer cancel()

			return saveSessionMsg{err: svc.Save(ctx, sess)}
		},
		NextStage,
	)
}

func (m QuestionnaireModel) View() string {
	content := m.form.View()

	if m.status != "" {
		content += "\n" + lipgloss.NewStyle().Faint(true).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
