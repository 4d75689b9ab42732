package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/prompter-cli/prompter/cli"
	"github.com/prompter-cli/prompter/internal/model"
	"github.com/prompter-cli/prompter/internal/prompt"
	"github.com/prompter-cli/prompter/prompter"
)

// --- Styles ---
var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
	checkedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	statusStyle   = lipgloss.NewStyle().Faint(true)
	diffAddStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	diffDelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	sectionMargin = lipgloss.NewStyle().MarginTop(1)
)

// --- Messages ---
type filesMsg struct{ files []string }

type promptMsg struct {
	text   string
	tokens int // -1 when counting failed
}

type editsMsg struct{ edits []model.ParsedEdit }

type summaryMsg struct {
	model.Summary
}

type errorMsg struct{ err error }

func (e errorMsg) Error() string { return e.err.Error() }

// --- Model ---
type uiState int

const (
	stateScanning uiState = iota
	statePicking
	statePrompt
	stateApply
	stateRestore
	stateSummary
	stateError
)

type Model struct {
	app *prompter.App
	cfg *cli.Config

	state   uiState
	spinner spinner.Model

	// picker
	files   []string
	visible []string
	cursor  int
	filter  textinput.Model
	height  int

	// prompt view
	viewport    viewport.Model
	promptText  string
	tokenCount  int
	copied      bool
	vpReady     bool
	windowWidth int

	// apply view
	edits      []model.ParsedEdit
	editCursor int

	// restore view
	restoreCursor int

	summary summaryMsg
	err     error
}

func New(app *prompter.App, cfg *cli.Config) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = cursorStyle

	filter := textinput.New()
	filter.Placeholder = "filter files..."
	filter.CharLimit = 100
	filter.Width = 40

	return &Model{
		app:     app,
		cfg:     cfg,
		state:   stateScanning,
		spinner: s,
		filter:  filter,
		height:  20,
	}
}

func (m *Model) Init() tea.Cmd {
	if m.cfg.NoAnimation {
		return m.scanCmd
	}
	return tea.Batch(m.spinner.Tick, m.scanCmd)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
		m.viewport = viewport.New(msg.Width, m.height)
		m.viewport.SetContent(m.promptText)
		m.vpReady = true
		return m, nil

	case filesMsg:
		m.files = msg.files
		m.applyFilter()
		m.state = statePicking
		return m, nil

	case promptMsg:
		m.promptText = msg.text
		m.tokenCount = msg.tokens
		m.copied = false
		if m.vpReady {
			m.viewport.SetContent(msg.text)
			m.viewport.GotoTop()
		}
		m.state = statePrompt
		return m, nil

	case editsMsg:
		m.edits = msg.edits
		m.editCursor = 0
		m.state = stateApply
		return m, nil

	case summaryMsg:
		m.state = stateSummary
		m.summary = msg
		return m, nil

	case errorMsg:
		m.state = stateError
		m.err = msg
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		var cmd tea.Cmd
		if m.state == stateScanning {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case statePicking:
		return m.handlePickingKey(msg)
	case statePrompt:
		return m.handlePromptKey(msg)
	case stateApply:
		return m.handleApplyKey(msg)
	case stateRestore:
		return m.handleRestoreKey(msg)
	case stateSummary:
		switch msg.String() {
		case "q", "enter", "esc":
			return m, tea.Quit
		case "p":
			m.state = statePicking
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) handlePickingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filter.Focused() {
		switch msg.String() {
		case "enter", "esc":
			m.filter.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case " ":
		if m.cursor < len(m.visible) {
			m.app.Session.Toggle(m.visible[m.cursor])
		}
	case "f":
		// Toggle the folder containing the file under the cursor.
		if m.cursor < len(m.visible) {
			rel := m.visible[m.cursor]
			dir := ""
			if i := strings.LastIndex(rel, "/"); i >= 0 {
				dir = rel[:i]
			}
			m.app.Session.SetFolder(dir, !m.app.Session.Selection[rel])
		}
	case "a":
		on := m.app.Session.SelectedCount() < len(m.files)
		m.app.Session.SetFolder("", on)
	case "/":
		m.filter.Focus()
		return m, textinput.Blink
	case "v":
		return m, m.pasteCmd
	case "r":
		if len(m.app.Backups()) > 0 {
			m.restoreCursor = 0
			m.state = stateRestore
		}
	case "enter", "g":
		if m.app.Session.SelectedCount() == 0 {
			return m, nil
		}
		m.state = stateScanning
		return m, tea.Batch(m.spinner.Tick, m.buildCmd)
	}
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "p":
		m.state = statePicking
		return m, nil
	case "c":
		if err := clipboard.WriteAll(m.promptText); err == nil {
			m.copied = true
		}
		return m, nil
	case "v":
		return m, m.pasteCmd
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleApplyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.state = statePicking
		return m, nil
	case "up", "k":
		if m.editCursor > 0 {
			m.editCursor--
		}
	case "down", "j":
		if m.editCursor < len(m.edits)-1 {
			m.editCursor++
		}
	case " ":
		if m.editCursor < len(m.edits) {
			m.app.Session.ToggleEdit(m.edits[m.editCursor].Filename)
		}
	case "enter":
		return m, m.applyCmd
	}
	return m, nil
}

func (m *Model) handleRestoreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	backups := m.app.Backups()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.state = statePicking
		return m, nil
	case "up", "k":
		if m.restoreCursor > 0 {
			m.restoreCursor--
		}
	case "down", "j":
		if m.restoreCursor < len(backups)-1 {
			m.restoreCursor++
		}
	case "enter":
		if m.restoreCursor < len(backups) {
			path := backups[m.restoreCursor].Value
			return m, func() tea.Msg {
				summary, err := m.app.RestoreBackup(path)
				if err != nil {
					return summaryMsg{model.Summary{Message: err.Error()}}
				}
				return summaryMsg{summary}
			}
		}
	}
	return m, nil
}

// applyFilter recomputes the visible file list from the fuzzy filter.
func (m *Model) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		m.visible = m.files
	} else {
		matches := fuzzy.Find(query, m.files)
		m.visible = make([]string, len(matches))
		for i, match := range matches {
			m.visible[i] = match.Str
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = 0
	}
}

// --- Views ---

func (m *Model) View() string {
	switch m.state {
	case stateScanning:
		return fmt.Sprintf("%s Working...", m.spinner.View())
	case statePicking:
		return m.viewPicking()
	case statePrompt:
		return m.viewPrompt()
	case stateApply:
		return m.viewApply()
	case stateRestore:
		return m.viewRestore()
	case stateSummary:
		return m.viewSummary()
	case stateError:
		return errorStyle.Render("Error: " + m.err.Error())
	default:
		return ""
	}
}

func (m *Model) viewPicking() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Select files (%s)", m.app.Dir())))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%d file(s) selected of %d", m.app.Session.SelectedCount(), len(m.files))))
	b.WriteString("\n")
	if m.filter.Focused() || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	if len(m.visible) == 0 {
		b.WriteString(faintStyle.Render("\nNo files match the current filters."))
	}

	start, end := m.window(len(m.visible))
	for i := start; i < end; i++ {
		rel := m.visible[i]
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "[ ]"
		if m.app.Session.Selection[rel] {
			check = checkedStyle.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, check, rel))
	}

	b.WriteString(sectionMargin.Render(faintStyle.Render(
		"space toggle · f folder · a all · / filter · enter generate · v paste response · r restore · q quit")))
	return b.String()
}

func (m *Model) window(total int) (int, int) {
	if total <= m.height {
		return 0, total
	}
	start := m.cursor - m.height/2
	if start < 0 {
		start = 0
	}
	end := start + m.height
	if end > total {
		end = total
		start = end - m.height
	}
	return start, end
}

func (m *Model) viewPrompt() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Generated prompt"))
	b.WriteString("\n")

	status := fmt.Sprintf("%d file(s)", m.app.Session.SelectedCount())
	if m.tokenCount >= 0 {
		status = fmt.Sprintf("%s · ~%d tokens", status, m.tokenCount)
	}
	if m.copied {
		status += " · " + successStyle.Render("copied to clipboard")
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")

	if m.vpReady {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.promptText)
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("c copy · v paste response · esc back · q quit"))
	return b.String()
}

func (m *Model) viewApply() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Parsed %d file update(s)", len(m.edits))))
	b.WriteString("\n\n")

	for i, edit := range m.edits {
		cursor := "  "
		if i == m.editCursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "[ ]"
		if m.app.Session.EditSelected(edit.Filename) {
			check = checkedStyle.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, check, edit.Filename))
	}

	if m.editCursor < len(m.edits) {
		b.WriteString("\n")
		b.WriteString(m.renderDiff(m.app.DiffFor(m.edits[m.editCursor])))
	}

	b.WriteString(sectionMargin.Render(faintStyle.Render(
		"space toggle · enter apply · esc back · q quit")))
	return b.String()
}

func (m *Model) renderDiff(d string) string {
	lines := strings.Split(d, "\n")
	if len(lines) > m.height {
		lines = append(lines[:m.height], faintStyle.Render("..."))
	}
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = diffAddStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = diffDelStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewRestore() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Restore from backup"))
	b.WriteString("\n\n")

	backups := m.app.Backups()
	for i, label := range backups {
		cursor := "  "
		if i == m.restoreCursor {
			cursor = cursorStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, label.Name))
	}

	b.WriteString(sectionMargin.Render(faintStyle.Render("enter restore · esc back · q quit")))
	return b.String()
}

func (m *Model) viewSummary() string {
	var b strings.Builder

	if m.summary.Message != "" {
		b.WriteString(headerStyle.Render(m.summary.Message))
		b.WriteString("\n\n")
	}

	if len(m.summary.Applied) > 0 {
		b.WriteString(successStyle.Render("Applied:"))
		b.WriteString("\n")
		for _, f := range m.summary.Applied {
			b.WriteString(fmt.Sprintf("  %s\n", f))
		}
	}
	if len(m.summary.Failed) > 0 {
		b.WriteString(errorStyle.Render("Failed:"))
		b.WriteString("\n")
		for _, f := range m.summary.Failed {
			b.WriteString(fmt.Sprintf("  %s\n", f))
		}
	}

	if len(m.summary.Applied) == 0 && len(m.summary.Failed) == 0 && m.summary.Message == "" {
		b.WriteString(faintStyle.Render("Nothing to do."))
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render("p back to picker · q quit"))
	return b.String()
}

// --- Commands ---

func (m *Model) scanCmd() tea.Msg {
	files, err := m.app.CollectFiles()
	if err != nil {
		return errorMsg{err}
	}
	return filesMsg{files: files}
}

func (m *Model) buildCmd() tea.Msg {
	text, err := m.app.BuildPrompt()
	if err != nil {
		return errorMsg{err}
	}
	tokens := -1
	if n, tokErr := prompt.CountTokens(text); tokErr == nil {
		tokens = n
	}
	return promptMsg{text: text, tokens: tokens}
}

func (m *Model) pasteCmd() tea.Msg {
	content, err := clipboard.ReadAll()
	if err != nil {
		return errorMsg{fmt.Errorf("failed to read from clipboard: %w", err)}
	}
	if strings.TrimSpace(content) == "" {
		return summaryMsg{model.Summary{Message: "Clipboard is empty. Nothing to process."}}
	}
	edits, err := m.app.ParseResponse(content)
	if err != nil {
		return summaryMsg{model.Summary{Message: err.Error()}}
	}
	if len(edits) == 0 {
		return summaryMsg{model.Summary{Message: "No code blocks detected."}}
	}
	return editsMsg{edits: edits}
}

func (m *Model) applyCmd() tea.Msg {
	summary, err := m.app.ApplyEdits()
	if err != nil {
		summary.Message = err.Error()
	}
	return summaryMsg{summary}
}
