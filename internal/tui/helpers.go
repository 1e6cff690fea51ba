package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// fieldDef describes one text input of a form
type fieldDef struct {
	label       string
	placeholder string
	width       int
	limit       int
}

// form is a vertical list of text inputs with one focused field
type form struct {
	title  string
	labels []string
	fields []textinput.Model
	focus  int
	err    error
}

// formAction is what a key press asks the owning screen to do
type formAction int

const (
	formContinue formAction = iota
	formSubmit
	formCancel
)

func newForm(title string, defs []fieldDef, values []string) *form {
	f := &form{
		title:  title,
		labels: make([]string, len(defs)),
		fields: make([]textinput.Model, len(defs)),
	}
	for i, def := range defs {
		in := textinput.New()
		in.Placeholder = def.placeholder
		in.CharLimit = def.limit
		in.Width = def.width
		if i < len(values) {
			in.SetValue(values[i])
		}
		f.labels[i] = def.label
		f.fields[i] = in
	}
	return f
}

// Focus focuses the first field
func (f *form) Focus() tea.Cmd {
	f.focus = 0
	return f.fields[0].Focus()
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].Value())
}

func (f *form) move(delta int) tea.Cmd {
	n := len(f.fields)
	f.fields[f.focus].Blur()
	f.focus = (f.focus + delta + n) % n
	return f.fields[f.focus].Focus()
}

// Update handles navigation keys and forwards the rest to the focused field
func (f *form) Update(msg tea.Msg) (formAction, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return formCancel, nil
		case "tab", "down":
			return formContinue, f.move(1)
		case "shift+tab", "up":
			return formContinue, f.move(-1)
		case "enter":
			// Enter on the last field submits, elsewhere it advances
			if f.focus == len(f.fields)-1 {
				return formSubmit, nil
			}
			return formContinue, f.move(1)
		case "ctrl+s":
			return formSubmit, nil
		}
	}

	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return formContinue, cmd
}

func (f *form) View() string {
	var s string
	s += titleStyle.Render(f.title) + "\n\n"

	for i, label := range f.labels {
		indicator := "  "
		style := subtitleStyle
		if i == f.focus {
			indicator = "> "
			style = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, style.Render(label), f.fields[i].View())
	}

	if f.err != nil {
		s += errStyle.Render(fmt.Sprintf("  Error: %v", f.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")
	return s
}

// cursorLine prefixes a list row with the selection indicator
func cursorLine(selected bool, line string) string {
	if selected {
		return selectedStyle.Render("> " + line)
	}
	return "  " + line
}

// clampCursor keeps a list cursor inside [0, n)
func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// parseNumber accepts both "12.5" and the French "12,5"; empty means zero
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", s)
	}
	return v, nil
}
