package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/akhaled-io/ftaledger/cmd/tui/internal/view"
	"github.com/akhaled-io/ftaledger/internal/config"
	"github.com/akhaled-io/ftaledger/internal/database"
	"github.com/akhaled-io/ftaledger/internal/extraction"
	"github.com/akhaled-io/ftaledger/internal/extraction/gemini"
	"github.com/akhaled-io/ftaledger/internal/importer"
	"github.com/akhaled-io/ftaledger/internal/session"
	sessionStore "github.com/akhaled-io/ftaledger/internal/session/store"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

type model struct {
	sessionService *session.Service
	importService  *importer.Service
	extractor      extraction.DocumentExtractor
	categorizer    extraction.Categorizer

	sess *workflow.Session

	sessionsView view.SessionsModel
	stageView    view.View

	status string
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	svc := session.NewService(sessionStore.New(db))

	m := model{
		sessionService: svc,
		importService:  importer.NewService(),
		sessionsView:   view.NewSessionsModel(svc),
	}

	// The wizard stays usable without a Gemini key; AI actions report
	// themselves unavailable.
	if ai, err := gemini.New(context.Background(), cfg.Gemini.Model); err == nil {
		m.extractor = ai
		m.categorizer = ai
	}

	return m
}

func (m model) Init() tea.Cmd {
	return m.sessionsView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+n":
			if m.sess != nil {
				return m.advance()
			}
		case "ctrl+p":
			if m.sess != nil {
				return m.stepBack()
			}
		case "ctrl+l":
			if m.sess != nil {
				m.sess = nil
				m.stageView = nil
				m.status = ""
				m.sessionsView = view.NewSessionsModel(m.sessionService)

				return m, m.sessionsView.Init()
			}
		}

	case view.SessionChosenMsg:
		m.sess = msg.Session
		m.status = ""

		return m.enterStage()

	case view.NextStageMsg:
		if m.sess != nil {
			return m.advance()
		}

	case view.PrevStageMsg:
		if m.sess != nil {
			return m.stepBack()
		}

	case view.BackMsg:
		m.sess = nil
		m.stageView = nil
		m.sessionsView = view.NewSessionsModel(m.sessionService)

		return m, m.sessionsView.Init()
	}

	if m.sess == nil {
		newModel, cmd := m.sessionsView.Update(msg)
		m.sessionsView = newModel.(view.SessionsModel)

		return m, cmd
	}

	if m.stageView != nil {
		newModel, cmd := m.stageView.Update(msg)
		if v, ok := newModel.(view.View); ok {
			m.stageView = v
		}

		return m, cmd
	}

	return m, nil
}

func (m model) advance() (tea.Model, tea.Cmd) {
	if err := m.sess.Next(); err != nil {
		m.status = err.Error()
		return m, nil
	}

	m.status = ""

	newModel, cmd := m.enterStage()

	return newModel, tea.Batch(cmd, m.saveCmd())
}

func (m model) stepBack() (tea.Model, tea.Cmd) {
	m.sess.Back()
	m.status = ""

	newModel, cmd := m.enterStage()

	return newModel, tea.Batch(cmd, m.saveCmd())
}

func (m model) enterStage() (tea.Model, tea.Cmd) {
	switch m.sess.Stage {
	case workflow.StageReview:
		m.stageView = view.NewReviewModel(m.sessionService, m.importService, m.categorizer, m.sess)
	case workflow.StageSummarize:
		m.stageView = view.NewSummaryModel(m.sessionService, m.sess)
	case workflow.StageVatDocs:
		m.stageView = view.NewDocumentsModel(m.sessionService, m.extractor, m.sess)
	case workflow.StageOpeningBalances:
		m.stageView = view.NewOpeningModel(m.sessionService, m.sess)
	case workflow.StageAdjustTrialBalance:
		m.stageView = view.NewTrialBalanceModel(m.sessionService, m.sess)
	case workflow.StageProfitLoss:
		m.stageView = view.NewStatementModel(m.sess, view.StatementProfitLoss)
	case workflow.StageBalanceSheet:
		m.stageView = view.NewStatementModel(m.sess, view.StatementBalanceSheet)
	case workflow.StageQuestionnaire:
		m.stageView = view.NewQuestionnaireModel(m.sessionService, m.sess)
	case workflow.StageFinalReport:
		m.stageView = view.NewReportModel(m.sess)
	}

	return m, m.stageView.Init()
}

func (m model) saveCmd() tea.Cmd {
	sess := m.sess
	svc := m.sessionService

	return func() tea.Msg {
		ctx, cancel := view.DbCtx()
		defer cancel()

		if err := svc.Save(ctx, sess); err != nil {
			slog.Error("failed to save session", "error", err)
		}

		return nil
	}
}

func (m model) View() string {
	if m.sess == nil {
		return m.sessionsView.View()
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(
		fmt.Sprintf("%s — Stage %d/9: %s", m.sess.Name, m.sess.Stage, m.sess.Stage),
	)

	body := ""
	if m.stageView != nil {
		body = m.stageView.View()
	}

	help := "ctrl+n: next stage | ctrl+p: previous | ctrl+l: sessions | ctrl+c: quit"
	if m.stageView != nil && m.stageView.ShortHelp() != "" {
		help = m.stageView.ShortHelp() + "\n" + help
	}

	footer := lipgloss.NewStyle().Faint(true).Padding(0, 1).Render(help)

	if m.status != "" {
		footer = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Padding(0, 1).Render(m.status) + "\n" + footer
	}

	return header + "\n" + body + "\n" + footer
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
