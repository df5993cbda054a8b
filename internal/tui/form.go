package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldToggle
)

// formField is a text input or an on/off toggle.
type formField struct {
	key    string
	label  string
	help   string
	kind   fieldKind
	input  textinput.Model
	on     bool
	err    string
	hidden bool
}

func textField(key, label, placeholder, value string) *formField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.SetValue(value)

	return &formField{key: key, label: label, kind: fieldText, input: ti}
}

func toggleField(key, label, help string, on bool) *formField {
	return &formField{key: key, label: label, help: help, kind: fieldToggle, on: on}
}

func (f *formField) value() string {
	return strings.TrimSpace(f.input.Value())
}

// form moves focus over its visible fields and then its button bar.
type form struct {
	fields  []*formField
	buttons buttonBar
	focus   int
}

func (f *form) visible() []*formField {
	var out []*formField
	for _, field := range f.fields {
		if !field.hidden {
			out = append(out, field)
		}
	}
	return out
}

func (f *form) field(key string) *formField {
	for _, field := range f.fields {
		if field.key == key {
			return field
		}
	}
	return nil
}

func (f *form) onButtons() bool {
	return f.focus >= len(f.visible())
}

func (f *form) focused() *formField {
	vis := f.visible()
	if f.focus < len(vis) {
		return vis[f.focus]
	}
	return nil
}

// capturing reports whether keystrokes go to a text input.
func (f *form) capturing() bool {
	field := f.focused()
	return field != nil && field.kind == fieldText
}

func (f *form) setFocus(i int) tea.Cmd {
	vis := f.visible()
	if i < 0 {
		i = 0
	}
	if i > len(vis) {
		i = len(vis)
	}
	f.focus = i

	var cmd tea.Cmd
	for j, field := range vis {
		if field.kind != fieldText {
			continue
		}
		if j == i {
			cmd = field.input.Focus()
		} else {
			field.input.Blur()
		}
	}
	return cmd
}

// focusFirstError moves focus to the first field reporting an error.
func (f *form) focusFirstError() tea.Cmd {
	for i, field := range f.visible() {
		if field.err != "" {
			return f.setFocus(i)
		}
	}
	return nil
}

func (f *form) clearErrors() {
	for _, field := range f.fields {
		field.err = ""
	}
}

// update routes a message to the focused element. It returns the pressed
// button, if any.
func (f *form) update(msg tea.Msg) (ButtonID, bool, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if field := f.focused(); field != nil && field.kind == fieldText {
			var cmd tea.Cmd
			field.input, cmd = field.input.Update(msg)
			return "", false, cmd
		}
		return "", false, nil
	}

	switch key.String() {
	case "tab", "down":
		if !f.onButtons() {
			return "", false, f.setFocus(f.focus + 1)
		}
	case "shift+tab", "up":
		if f.focus > 0 {
			return "", false, f.setFocus(f.focus - 1)
		}
		return "", false, nil
	case "esc":
		if f.buttons.has(ButtonBack) {
			return ButtonBack, true, nil
		}
		return "", false, nil
	}

	if f.onButtons() {
		id, ok := f.buttons.update(key)
		return id, ok, nil
	}

	field := f.focused()
	switch field.kind {
	case fieldToggle:
		switch key.String() {
		case " ", "enter", "x":
			field.on = !field.on
		}
		return "", false, nil

	default:
		if key.String() == "enter" {
			return "", false, f.setFocus(f.focus + 1)
		}
		var cmd tea.Cmd
		field.input, cmd = field.input.Update(key)
		field.err = ""
		return "", false, cmd
	}
}

func (f *form) view(theme Theme) string {
	var b strings.Builder

	for i, field := range f.visible() {
		focused := i == f.focus
		label := theme.Dim.Render("  " + field.label + ":")
		if focused {
			label = theme.Active.Render("> " + field.label + ":")
		}

		switch field.kind {
		case fieldToggle:
			box := "[ ]"
			if field.on {
				box = "[x]"
			}
			line := "  " + box + " " + field.label
			if focused {
				line = theme.Cursor.Render("> "+box+" ") + field.label
			} else if field.on {
				line = "  " + theme.Selected.Render(box) + " " + field.label
			}
			b.WriteString(line)
			if field.help != "" {
				b.WriteString(theme.Dim.Render("  " + field.help))
			}
		default:
			b.WriteString(label + " " + field.input.View())
		}
		b.WriteString("\n")

		if field.err != "" {
			b.WriteString(theme.Error.Render("    " + field.err))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(f.buttons.view(theme, f.onButtons()))
	b.WriteString("\n")

	return b.String()
}

func (f *form) hints() []KeyHint {
	if f.onButtons() {
		return append(buttonHints(), KeyHint{Key: "\u2191", Desc: "fields"})
	}
	if field := f.focused(); field != nil && field.kind == fieldToggle {
		return []KeyHint{
			{Key: "\u2191\u2193", Desc: "move"},
			{Key: "Space", Desc: "toggle"},
			{Key: "Esc", Desc: "back"},
		}
	}
	return []KeyHint{
		{Key: "Tab", Desc: "next field"},
		{Key: "Enter", Desc: "next"},
		{Key: "Esc", Desc: "back"},
	}
}
