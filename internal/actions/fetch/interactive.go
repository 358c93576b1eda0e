package fetch

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/y3pio/unicon/internal/contrib"
	"github.com/y3pio/unicon/internal/format"
)

// pickChoices is what the interactive picker edits: which contribution
// kinds to fetch and from when.
type pickChoices struct {
	Kinds []contrib.Kind
	Since time.Time
}

var (
	pickerTitleStyle    = lipgloss.NewStyle().Bold(true)
	pickerCursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	pickerSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pickerHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	pickerErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// runPicker opens the kind/date picker. The second return value is false
// when the user backed out.
func runPicker(defaults pickChoices) (pickChoices, bool, error) {
	selected := make(map[contrib.Kind]bool, len(defaults.Kinds))
	for _, k := range defaults.Kinds {
		selected[k] = true
	}

	input := textinput.New()
	input.Placeholder = "YYYY-MM-DD"
	input.CharLimit = 10
	input.Width = 12
	if defaults.Since.After(time.Unix(0, 0)) {
		input.SetValue(format.Date(defaults.Since))
	}

	m := pickerModel{selected: selected, since: input, out: defaults}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return defaults, false, err
	}

	fm := final.(pickerModel)
	return fm.out, fm.accepted, nil
}

type pickerModel struct {
	cursor    int
	selected  map[contrib.Kind]bool
	editing   bool
	since     textinput.Model
	problem   string
	accepted  bool
	cancelled bool
	out       pickChoices
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		switch key.String() {
		case "enter", "esc", "tab":
			m.editing = false
			m.since.Blur()
			return m, nil
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.since, cmd = m.since.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(contrib.AllKinds) {
			m.cursor++
		}

	case " ", "x":
		if m.cursor < len(contrib.AllKinds) {
			kind := contrib.AllKinds[m.cursor]
			m.selected[kind] = !m.selected[kind]
			m.problem = ""
		}

	case "tab":
		m.cursor = len(contrib.AllKinds)
		m.editing = true
		m.since.Focus()
		return m, textinput.Blink

	case "enter":
		if m.cursor == len(contrib.AllKinds) {
			m.editing = true
			m.since.Focus()
			return m, textinput.Blink
		}
		return m.accept()
	}

	return m, nil
}

func (m pickerModel) accept() (tea.Model, tea.Cmd) {
	var kinds []contrib.Kind
	for _, k := range contrib.AllKinds {
		if m.selected[k] {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		m.problem = "select at least one kind"
		return m, nil
	}

	since := time.Unix(0, 0).UTC()
	if v := m.since.Value(); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			m.problem = "since must be YYYY-MM-DD"
			return m, nil
		}
		since = t.UTC()
	}

	m.out = pickChoices{Kinds: kinds, Since: since}
	m.accepted = true
	return m, tea.Quit
}

func (m pickerModel) View() string {
	if m.accepted || m.cancelled {
		return ""
	}

	s := pickerTitleStyle.Render("What should be fetched?") + "\n\n"

	for i, kind := range contrib.AllKinds {
		cursor := "  "
		if m.cursor == i {
			cursor = pickerCursorStyle.Render("> ")
		}
		box := "[ ]"
		label := kind.Plural()
		if m.selected[kind] {
			box = pickerSelectedStyle.Render("[x]")
		}
		s += cursor + box + " " + label + "\n"
	}

	cursor := "  "
	if m.cursor == len(contrib.AllKinds) {
		cursor = pickerCursorStyle.Render("> ")
	}
	s += "\n" + cursor + "since: " + m.since.View() + "\n"

	if m.problem != "" {
		s += "\n" + pickerErrorStyle.Render(m.problem) + "\n"
	}
	s += "\n" + pickerHintStyle.Render("space toggle · tab edit date · enter run · q cancel") + "\n"
	return s
}
