package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andreagrandi/pipecreate/internal/pipeline"
)

// ChooseTypeScreen asks for a template-based or custom pipeline.
type ChooseTypeScreen struct {
	session *Session
	buttons buttonBar
}

// NewChooseTypeScreen creates the pipeline type screen.
func NewChooseTypeScreen(sess *Session) *ChooseTypeScreen {
	return &ChooseTypeScreen{
		session: sess,
		buttons: newButtonBar(
			button{ButtonTypeNfcore, "Template-based pipeline"},
			button{ButtonTypeCustom, "Custom pipeline"},
			button{ButtonBack, "Back"},
		),
	}
}

func (c *ChooseTypeScreen) Init() tea.Cmd { return nil }

func (c *ChooseTypeScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if id, ok := c.buttons.update(key); ok {
			return c, pressed(id)
		}
	}
	return c, nil
}

func (c *ChooseTypeScreen) View() string {
	theme := c.session.Theme()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  Choose the type of pipeline you want to create.\n\n")
	b.WriteString("  " + theme.Active.Render("Template-based") + "\n")
	b.WriteString("    Published in the " + pipeline.TemplateOrg + " organisation with the full community\n")
	b.WriteString("    setup: CI, badges, schema and changelog are always included.\n\n")
	b.WriteString("  " + theme.Active.Render("Custom") + "\n")
	b.WriteString("    Any organisation. Every optional part of the template can be turned off.\n\n")

	if t := c.session.PipelineType; t != pipeline.TypeUnset {
		b.WriteString(theme.Dim.Render("  Currently selected: "+t.Label()) + "\n\n")
	}

	b.WriteString(c.buttons.view(theme, true))
	b.WriteString("\n")

	return b.String()
}

func (c *ChooseTypeScreen) StatusHints() []KeyHint {
	return append(buttonHints(), KeyHint{Key: "Esc", Desc: "back"})
}

// Cursor returns the selected button (for testing).
func (c *ChooseTypeScreen) Cursor() int {
	return c.buttons.Cursor()
}
