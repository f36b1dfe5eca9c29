package view

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akhaled-io/ftaledger/internal/export"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

// ReportModel is the final screen: the derived FTA form values plus the
// reconciliation outcome, with a flat workbook export to disk.
type ReportModel struct {
	CommonModel
	sess *workflow.Session

	status string
}

func NewReportModel(sess *workflow.Session) ReportModel {
	return ReportModel{sess: sess}
}

func (m ReportModel) Title() string { return "Final Report" }

func (m ReportModel) ShortHelp() string {
	return "s: save workbook to disk"
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workbookSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Workbook written to %s", msg.path)
		}

		return m, nil

	case tea.KeyMsg:
		if msg.String() == "s" {
			return m, m.exportCmd()
		}
	}

	return m, nil
}

func (m ReportModel) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("FTA Corporate Tax Figures") + "\n\n")

	for _, row := range export.FormRows(m.sess.Derive()) {
		b.WriteString(fmt.Sprintf("  %-35s %16s\n", row.Label, FormatAmount(row.Value)))
	}

	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Reconciliation") + "\n\n")

	results := m.sess.Reconciliation()
	if len(results) == 0 {
		b.WriteString("  No statements imported.\n")
	}

	for _, r := range results {
		mark := "ok"
		if !r.IsValid {
			mark = fmt.Sprintf("MISMATCH (diff %s)", FormatAmount(r.Difference))
		}

		b.WriteString(fmt.Sprintf("  %-30s %s\n", r.SourceFile, mark))
	}

	if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

type workbookSavedMsg struct {
	path string
	err  error
}

func (m ReportModel) exportCmd() tea.Cmd {
	sess := m.sess

	return func() tea.Msg {
		workbook := export.Snapshot(sess)

		data, err := json.MarshalIndent(workbook, "", "  ")
		if err != nil {
			return workbookSavedMsg{err: err}
		}

		name := strings.ReplaceAll(strings.ToLower(sess.Name), " ", "-")
		if name == "" {
			name = sess.ID.String()
		}

		path := fmt.Sprintf("%s-workbook.json", name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return workbookSavedMsg{err: err}
		}

		return workbookSavedMsg{path: path}
	}
}
