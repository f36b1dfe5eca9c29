package view

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/akhaled-io/ftaledger/internal/extraction"
	"github.com/akhaled-io/ftaledger/internal/importer"
	coreledger "github.com/akhaled-io/ftaledger/internal/ledger"
	"github.com/akhaled-io/ftaledger/internal/session"
	"github.com/akhaled-io/ftaledger/internal/taxonomy"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

type reviewState int

const (
	reviewStateList reviewState = iota
	reviewStateEditing
	reviewStateBulk
	reviewStateFindReplace
	reviewStateImporting
)

// txItem wraps a ledger row to implement list.Item.
type txItem struct {
	tx       coreledger.Transaction
	index    int
	selected bool
}

func (i txItem) Title() string {
	category := i.tx.Category
	if !i.tx.Categorized() {
		category = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(category)
	} else {
		category = lipgloss.NewStyle().Faint(true).Render(category)
	}

	mark := " "
	if i.selected {
		mark = "*"
	}

	return fmt.Sprintf("%s %s  D %s  C %s  %s",
		mark, FormatDate(i.tx.Date), FormatAmount(i.tx.Debit), FormatAmount(i.tx.Credit), category)
}

func (i txItem) Description() string { return i.tx.Description }

func (i txItem) FilterValue() string { return i.tx.Description }

// ReviewModel is the transaction review screen: importing statements,
// categorizing rows by hand or via AI suggestions, bulk edits, deletes.
type ReviewModel struct {
	CommonModel
	svc         *session.Service
	importSvc   *importer.Service
	categorizer extraction.Categorizer
	sess        *workflow.Session

	state reviewState
	list  list.Model
	form  *huh.Form

	editIndex int
	loading   bool
	status    string

	// Form field bindings
	formCategory string
	formFind     string
	formPath     string
	formBank     string
}

func NewReviewModel(svc *session.Service, importSvc *importer.Service, categorizer extraction.Categorizer, sess *workflow.Session) ReviewModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = "Review Transactions"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	m := ReviewModel{
		svc:         svc,
		importSvc:   importSvc,
		categorizer: categorizer,
		sess:        sess,
		list:        l,
	}
	m.refreshListItems()

	return m
}

func (m ReviewModel) Title() string { return "Review Transactions" }

func (m ReviewModel) ShortHelp() string {
	switch m.state {
	case reviewStateList:
		return "Enter: categorize | Space: select | a: apply to selected | f: find & replace | d: delete | i: import | g: AI suggest"
	default:
		return "Esc: cancel | Enter/Tab: navigate form"
	}
}

func (m ReviewModel) Init() tea.Cmd {
	return nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case saveSessionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		return m, nil

	case importDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Import failed: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d transactions from %s", msg.count, msg.file)
		m.refreshListItems()

		return m, m.saveCmd()

	case categorizeDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("AI categorization failed: %v", msg.err)
			return m, nil
		}

		m.sess.Ledger.ApplyCategorized(msg.suggested)
		m.status = fmt.Sprintf("%d rows still uncategorized", m.sess.Ledger.UncategorizedCount())
		m.refreshListItems()

		return m, m.saveCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-10)
		return m, nil
	}

	switch m.state {
	case reviewStateList:
		return m.updateList(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m ReviewModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if m.loading {
			return m, nil
		}

		switch keyMsg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(txItem); ok {
				m.editIndex = item.index
				m.formCategory = item.tx.Category

				return m.startForm(reviewStateEditing, m.categoryForm("Category"))
			}
		case " ":
			if item, ok := m.list.SelectedItem().(txItem); ok {
				m.sess.Ledger.ToggleSelect(item.index)
				m.refreshListItems()

				return m, nil
			}
		case "a":
			if len(m.sess.Ledger.Selection) == 0 {
				m.status = "Nothing selected"
				return m, nil
			}

			m.formCategory = ""

			return m.startForm(reviewStateBulk, m.categoryForm("Apply category to selected rows"))
		case "f":
			m.formFind = ""
			m.formCategory = ""

			return m.startForm(reviewStateFindReplace, m.findReplaceForm())
		case "d":
			if item, ok := m.list.SelectedItem().(txItem); ok {
				m.sess.Ledger.Delete(item.index)
				m.status = "Row deleted"
				m.refreshListItems()

				return m, m.saveCmd()
			}
		case "i":
			m.formPath = ""
			m.formBank = string(importer.BankMashreq)

			return m.startForm(reviewStateImporting, m.importForm())
		case "g":
			if m.categorizer == nil {
				m.status = "AI categorizer not configured (set GEMINI_API_KEY)"
				return m, nil
			}

			m.loading = true
			m.status = "Asking for category suggestions..."

			return m, m.categorizeCmd()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m ReviewModel) startForm(state reviewState, form *huh.Form) (tea.Model, tea.Cmd) {
	m.state = state
	m.form = form

	return m, m.form.Init()
}

func (m ReviewModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = reviewStateList
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
	m.state = reviewStateList
	m.form = nil

	switch state {
	case reviewStateEditing:
		m.sess.Ledger.SetCategory(m.editIndex, m.formCategory)
		m.status = "Category updated"
	case reviewStateBulk:
		n := m.sess.Ledger.BulkApply(m.formCategory)
		m.status = fmt.Sprintf("Applied to %d rows", n)
	case reviewStateFindReplace:
		n, err := m.sess.Ledger.FindAndReplace(m.formFind, m.formCategory)
		if err != nil {
			m.status = fmt.Sprintf("Find & replace: %v", err)
			return m, nil
		}

		m.status = fmt.Sprintf("Recategorized %d rows", n)
	case reviewStateImporting:
		m.loading = true
		m.status = "Importing..."
		m.refreshListItems()

		return m, m.importCmd(m.formPath, importer.Bank(m.formBank))
	}

	m.refreshListItems()

	return m, m.saveCmd()
}

func (m ReviewModel) View() string {
	if m.state != reviewStateList && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	}

	header := fmt.Sprintf("%d transactions, %d uncategorized",
		len(m.sess.Ledger.Transactions), m.sess.Ledger.UncategorizedCount())

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(header + "\n" + statusLine + m.list.View())
}

func (m *ReviewModel) refreshListItems() {
	items := make([]list.Item, len(m.sess.Ledger.Transactions))
	for i, tx := range m.sess.Ledger.Transactions {
		_, selected := m.sess.Ledger.Selection[i]
		items[i] = txItem{tx: tx, index: i, selected: selected}
	}

	m.list.SetItems(items)
}

func (m *ReviewModel) categoryForm(title string) *huh.Form {
	options := make([]huh.Option[string], 0)
	for _, leaf := range taxonomy.Leaves() {
		path := leaf.Path()
		options = append(options, huh.NewOption(path, path))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("category").
				Title(title).
				Options(options...).
				Value(&m.formCategory),
		),
	).WithWidth(70).WithShowHelp(false)
}

func (m *ReviewModel) findReplaceForm() *huh.Form {
	options := make([]huh.Option[string], 0)
	for _, leaf := range taxonomy.Leaves() {
		path := leaf.Path()
		options = append(options, huh.NewOption(path, path))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("find").
				Title("Description contains").
				Value(&m.formFind).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("search text cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("New category").
				Options(options...).
				Value(&m.formCategory),
		),
	).WithWidth(70).WithShowHelp(false)
}

func (m *ReviewModel) importForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Statement CSV path").
				Placeholder("/path/to/statement.csv").
				Value(&m.formPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("bank").
				Title("Bank").
				Options(huh.NewOption("Mashreq", string(importer.BankMashreq))).
				Value(&m.formBank),
		),
	).WithWidth(70).WithShowHelp(false)
}

type importDoneMsg struct {
	count int
	file  string
	err   error
}

func (m ReviewModel) importCmd(path string, bank importer.Bank) tea.Cmd {
	sess := m.sess
	svc := m.importSvc

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{err: err}
		}
		defer f.Close()

		name := f.Name()

		txs, summary, err := svc.Import(bank, f, name)
		if err != nil {
			return importDoneMsg{err: err}
		}

		sess.IngestTransactions(txs, summary)

		return importDoneMsg{count: len(txs), file: name}
	}
}

type categorizeDoneMsg struct {
	suggested []coreledger.Transaction
	err       error
}

func (m ReviewModel) categorizeCmd() tea.Cmd {
	var pending []coreledger.Transaction
	for _, tx := range m.sess.Ledger.Transactions {
		if !tx.Categorized() {
			pending = append(pending, tx)
		}
	}

	categorizer := m.categorizer

	return func() tea.Msg {
		if len(pending) == 0 {
			return categorizeDoneMsg{}
		}

		ctx, cancel := AiCtx()
		defer cancel()

		suggested, err := categorizer.Categorize(ctx, pending)

		return categorizeDoneMsg{suggested: suggested, err: err}
	}
}

type saveSessionMsg struct {
	err error
}

func (m ReviewModel) saveCmd() tea.Cmd {
	sess := m.sess
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return saveSessionMsg{err: svc.Save(ctx, sess)}
	}
}

// txItemDelegate renders items in the transaction list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
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
