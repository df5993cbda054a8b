package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type button struct {
	id    ButtonID
	label string
}

// buttonBar is a row of buttons chosen with left/right and pressed with
// enter.
type buttonBar struct {
	buttons []button
	cursor  int
}

func newButtonBar(buttons ...button) buttonBar {
	return buttonBar{buttons: buttons}
}

func (b *buttonBar) set(buttons ...button) {
	b.buttons = buttons
	b.cursor = 0
}

func (b *buttonBar) has(id ButtonID) bool {
	for _, btn := range b.buttons {
		if btn.id == id {
			return true
		}
	}
	return false
}

func (b *buttonBar) current() ButtonID {
	if len(b.buttons) == 0 {
		return ""
	}
	return b.buttons[b.cursor].id
}

// update handles a key. It returns the pressed button, if any.
func (b *buttonBar) update(msg tea.KeyMsg) (ButtonID, bool) {
	switch msg.String() {
	case "left", "h", "shift+tab":
		if b.cursor > 0 {
			b.cursor--
		}
	case "right", "l", "tab":
		if b.cursor < len(b.buttons)-1 {
			b.cursor++
		}
	case "enter", " ":
		if len(b.buttons) > 0 {
			return b.buttons[b.cursor].id, true
		}
	case "esc":
		if b.has(ButtonBack) {
			return ButtonBack, true
		}
	}

	return "", false
}

func (b *buttonBar) view(theme Theme, focused bool) string {
	var parts []string

	for i, btn := range b.buttons {
		switch {
		case focused && i == b.cursor:
			parts = append(parts, theme.Highlight.Render(" "+btn.label+" "))
		case i == b.cursor:
			parts = append(parts, theme.Cursor.Render("["+btn.label+"]"))
		default:
			parts = append(parts, theme.Dim.Render(" "+btn.label+" "))
		}
	}

	return "  " + strings.Join(parts, "  ")
}

// Cursor returns the selected button (for testing).
func (b *buttonBar) Cursor() int {
	return b.cursor
}

func buttonHints() []KeyHint {
	return []KeyHint{
		{Key: "\u2190\u2192", Desc: "choose"},
		{Key: "Enter", Desc: "press"},
	}
}
