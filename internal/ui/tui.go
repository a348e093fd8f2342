// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/task"
	"taskdeck/internal/view"
)

// RunTUI starts the interactive UI over the given store.
func RunTUI(ctx context.Context, store *task.Store, params view.Params) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := NewModel(store, params)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// mode is the current input state of the UI.
type mode int

const (
	modeList mode = iota
	modeAddText
	modeAddPriority
	modeAddCategory
	modeEdit
	modeSearch
)

// KeyMap defines the key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Search   key.Binding
	Filter   key.Binding
	Category key.Binding
	Sort     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit task")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cycle category")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Search, k.Filter, k.Sort, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Add},
		{k.Edit, k.Delete, k.Search, k.Filter},
		{k.Category, k.Sort, k.Help, k.Quit},
	}
}

// Model is the bubbletea model for the task list UI. All task state lives
// in the store; the model only carries widget state and the view params.
type Model struct {
	store   *task.Store
	params  view.Params
	visible []task.Task
	summary view.Summary

	cursor int
	mode   mode
	input  textinput.Model

	// pending add flow state
	pendingText     string
	pendingPriority task.Priority

	// id of the task being edited
	editID string

	keys   KeyMap
	help   help.Model
	width  int
	height int
}

// NewModel builds the initial UI model.
func NewModel(store *task.Store, params view.Params) *Model {
	input := textinput.New()
	input.CharLimit = 256

	m := &Model{
		store:  store,
		params: params,
		input:  input,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// refresh recomputes the projected view after any change to the store or
// the view params.
func (m *Model) refresh() {
	tasks := m.store.Tasks()
	m.visible = view.Project(tasks, m.params)
	m.summary = view.Summarize(tasks)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() (task.Task, bool) {
	if len(m.visible) == 0 || m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeList:
			return m.updateList(msg)
		case modeAddPriority:
			return m.updateAddPriority(msg)
		default:
			return m.updateInput(msg)
		}
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.store.Toggle(t.ID)
			m.refresh()
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.store.Delete(t.ID)
			m.refresh()
		}
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAddText
		m.input.Placeholder = "Task text"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			m.mode = modeEdit
			m.editID = t.ID
			m.input.Placeholder = ""
			m.input.SetValue(t.Text)
			m.input.CursorEnd()
			m.input.Focus()
			return m, textinput.Blink
		}
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.input.Placeholder = "Search"
		m.input.SetValue(m.params.Search)
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Filter):
		m.params.Filter = nextFilter(m.params.Filter)
		m.refresh()
	case key.Matches(msg, m.keys.Sort):
		m.params.Sort = nextSort(m.params.Sort)
		m.refresh()
	case key.Matches(msg, m.keys.Category):
		m.params.Category = nextCategory(view.Categories(m.store.Tasks()), m.params.Category)
		m.refresh()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// updateAddPriority handles the priority step of the add flow.
func (m *Model) updateAddPriority(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = modeList
		return m, nil
	case "l", "1":
		m.pendingPriority = task.PriorityLow
	case "m", "2":
		m.pendingPriority = task.PriorityMedium
	case "h", "3":
		m.pendingPriority = task.PriorityHigh
	case "enter":
		// keep the default
	default:
		return m, nil
	}

	m.mode = modeAddCategory
	m.input.Placeholder = fmt.Sprintf("Category (enter for %s)", task.DefaultCategory)
	m.input.SetValue("")
	m.input.Focus()
	return m, textinput.Blink
}

// updateInput handles the text-entry modes. Enter commits, esc discards.
func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		if m.mode == modeSearch {
			m.params.Search = ""
			m.refresh()
		}
		m.mode = modeList
		m.input.Blur()
		return m, nil
	case "enter":
		return m.commitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Search narrows the list as the user types.
	if m.mode == modeSearch {
		m.params.Search = m.input.Value()
		m.refresh()
	}
	return m, cmd
}

func (m *Model) commitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	switch m.mode {
	case modeAddText:
		if strings.TrimSpace(value) == "" {
			// Blank text is rejected; keep the input open for correction.
			return m, nil
		}
		m.pendingText = value
		m.pendingPriority = task.PriorityMedium
		m.mode = modeAddPriority
		m.input.Blur()
		return m, nil
	case modeAddCategory:
		m.store.Create(m.pendingText, m.pendingPriority, value)
		m.cursor = 0
	case modeEdit:
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		m.store.Edit(m.editID, value)
	case modeSearch:
		m.params.Search = value
	}
	m.mode = modeList
	m.input.Blur()
	m.refresh()
	return m, nil
}

func nextFilter(f view.Filter) view.Filter {
	switch f {
	case view.FilterAll:
		return view.FilterActive
	case view.FilterActive:
		return view.FilterCompleted
	default:
		return view.FilterAll
	}
}

func nextSort(s view.Sort) view.Sort {
	switch s {
	case view.SortDate:
		return view.SortPriority
	case view.SortPriority:
		return view.SortAlphabetical
	default:
		return view.SortDate
	}
}

func nextCategory(categories []string, current string) string {
	for i, c := range categories {
		if c == current {
			return categories[(i+1)%len(categories)]
		}
	}
	return view.CategoryAll
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("taskdeck"))
	b.WriteString("\n\n")

	writeSummary(&b, m.summary)
	writeParams(&b, m.params)

	switch m.mode {
	case modeAddText:
		b.WriteString(promptStyle.Render("New task: ") + m.input.View() + "\n\n")
	case modeAddPriority:
		b.WriteString(promptStyle.Render("Priority: ") + "(l)ow  (m)edium  (h)igh, enter for medium\n\n")
	case modeAddCategory:
		b.WriteString(promptStyle.Render("Category: ") + m.input.View() + "\n\n")
	case modeEdit:
		b.WriteString(promptStyle.Render("Edit task: ") + m.input.View() + "\n\n")
	case modeSearch:
		b.WriteString(promptStyle.Render("Search: ") + m.input.View() + "\n\n")
	}

	writeTasks(&b, m.visible, m.cursor, m.mode == modeList)

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func writeSummary(b *strings.Builder, s view.Summary) {
	b.WriteString(fmt.Sprintf("  %d total · %d done · %d remaining\n", s.Total, s.Completed, s.Remaining))
	b.WriteString("  " + progressBar(s, 24) + "\n\n")
}

func writeParams(b *strings.Builder, p view.Params) {
	line := fmt.Sprintf("filter: %s · category: %s · sort: %s", p.Filter, p.Category, p.Sort)
	if p.Search != "" {
		line += fmt.Sprintf(" · search: %q", p.Search)
	}
	b.WriteString(statusStyle.Render("  "+line) + "\n\n")
}

func writeTasks(b *strings.Builder, tasks []task.Task, cursor int, showCursor bool) {
	if len(tasks) == 0 {
		b.WriteString(statusStyle.Render("  No tasks match the current view.") + "\n")
		return
	}
	for i, t := range tasks {
		marker := "  "
		if showCursor && i == cursor {
			marker = selectedStyle.Render("> ")
		}
		b.WriteString(marker + formatTask(t, showCursor && i == cursor) + "\n")
	}
}

func formatTask(t task.Task, selected bool) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	text := t.Text
	switch {
	case t.Completed:
		text = doneStyle.Render(text)
	case selected:
		text = selectedStyle.Render(text)
	}

	prio := t.Priority
	badge := string(prio)
	if style, ok := priorityStyles[string(prio)]; ok {
		badge = style.Render(string(prio))
	}

	return fmt.Sprintf("%s %s  %s %s", check, text, badge, categoryStyle.Render("#"+t.Category))
}

func progressBar(s view.Summary, width int) string {
	filled := 0
	if s.Total > 0 {
		filled = s.PercentComplete * width / 100
	}
	bar := barFillStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %d%%", bar, s.PercentComplete)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
