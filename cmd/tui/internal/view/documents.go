package view

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akhaled-io/ftaledger/internal/extraction"
	"github.com/akhaled-io/ftaledger/internal/session"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

// DocumentsModel collects VAT return and balance-sheet documents and runs
// the extractor over them. Extracted figures land in the opening balance
// set; anything the merge cannot match is dropped.
type DocumentsModel struct {
	CommonModel
	svc       *session.Service
	extractor extraction.DocumentExtractor
	sess      *workflow.Session

	pathInput textinput.Model
	paths     []string

	loading bool
	status  string
}

func NewDocumentsModel(svc *session.Service, extractor extraction.DocumentExtractor, sess *workflow.Session) DocumentsModel {
	ti := textinput.New()
	ti.Placeholder = "/path/to/vat-return.pdf"
	ti.Width = 60
	ti.Prompt = "Document path: "
	ti.Focus()

	return DocumentsModel{
		svc:       svc,
		extractor: extractor,
		sess:      sess,
		pathInput: ti,
	}
}

func (m DocumentsModel) Title() string { return "VAT Documents" }

func (m DocumentsModel) ShortHelp() string {
	return "Enter: add document | ctrl+e: extract figures | ctrl+x: clear list"
}

func (m DocumentsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m DocumentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case extractDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Extraction failed: %v", msg.err)
			return m, nil
		}

		m.sess.MergeExtractedOpening(msg.values)
		m.status = fmt.Sprintf("Extracted %d values; matched figures merged into opening balances", len(msg.values))

		return m, m.saveCmd()

	case saveSessionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "enter":
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				return m, nil
			}

			if _, err := os.Stat(path); err != nil {
				m.status = fmt.Sprintf("Cannot read %s: %v", path, err)
				return m, nil
			}

			m.paths = append(m.paths, path)
			m.pathInput.SetValue("")
			m.status = fmt.Sprintf("%d document(s) queued", len(m.paths))

			return m, nil
		case "ctrl+x":
			m.paths = nil
			m.status = "Document list cleared"

			return m, nil
		case "ctrl+e":
			if m.extractor == nil {
				m.status = "Extractor not configured (set GEMINI_API_KEY)"
				return m, nil
			}

			if len(m.paths) == 0 {
				m.status = "No documents queued"
				return m, nil
			}

			m.loading = true
			m.status = "Extracting figures..."

			return m, m.extractCmd()
		}
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)

	return m, cmd
}

func (m DocumentsModel) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("VAT Documents") + "\n\n")
	b.WriteString("Add VAT returns or prior balance sheets; extracted figures seed the opening balances.\n\n")
	b.WriteString(m.pathInput.View() + "\n\n")

	if len(m.paths) > 0 {
		b.WriteString("Queued:\n")
		for _, p := range m.paths {
			b.WriteString("  " + p + "\n")
		}
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString(m.status + "\n")
	} else if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(m.status) + "\n")
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

type extractDoneMsg struct {
	values map[string]string
	err    error
}

func (m DocumentsModel) extractCmd() tea.Cmd {
	paths := m.paths
	extractor := m.extractor

	return func() tea.Msg {
		documents := make([][]byte, 0, len(paths))
		for _, p := range paths {
			data, err := os.ReadFile(p)
			if err != nil {
				return extractDoneMsg{err: err}
			}

			documents = append(documents, data)
		}

		ctx, cancel := AiCtx()
		defer cancel()

		values, err := extractor.Extract(ctx, documents)

		return extractDoneMsg{values: values, err: err}
	}
}

func (m DocumentsModel) saveCmd() tea.Cmd {
	sess := m.sess
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return saveSessionMsg{err: svc.Save(ctx, sess)}
	}
}
