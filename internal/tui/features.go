package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andreagrandi/pipecreate/internal/features"
	"github.com/andreagrandi/pipecreate/internal/pipeline"
)

// FeaturesScreen lets the user turn template features on and off. The
// same screen backs the template-based and the custom details screens;
// each lists the features that apply to its pipeline type.
type FeaturesScreen struct {
	session  *Session
	kind     pipeline.Type
	features []features.Feature
	form     form
}

// NewFeaturesScreen creates the feature toggles for id, which is either
// ScreenTemplatePipeline or ScreenCustomPipeline.
func NewFeaturesScreen(sess *Session, svc *Services, id ScreenID) *FeaturesScreen {
	kind := pipeline.TypeCustom
	if id == ScreenTemplatePipeline {
		kind = pipeline.TypeTemplate
	}

	catalog := svc.Catalog
	if catalog == nil {
		catalog = features.MustDefault()
	}

	s := &FeaturesScreen{
		session:  sess,
		kind:     kind,
		features: catalog.ForType(kind),
	}

	for _, f := range s.features {
		on := f.Default && !sess.Config.Skips(f.Name)
		s.form.fields = append(s.form.fields, toggleField(f.Name, f.ShortDescription, f.Description, on))
	}
	s.form.buttons = newButtonBar(
		button{ButtonContinue, "Continue"},
		button{ButtonBack, "Back"},
	)

	return s
}

func (s *FeaturesScreen) Init() tea.Cmd {
	return s.form.setFocus(s.form.focus)
}

func (s *FeaturesScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	id, ok, cmd := s.form.update(msg)
	if !ok {
		return s, cmd
	}

	if id == ButtonContinue {
		s.session.Config.SetSkipFeatures(s.Skipped())
		s.session.Logger.Debug("Features selected", "skip", strings.Join(s.session.Config.SkipFeatures, ","))
	}
	return s, pressed(id)
}

// Skipped lists the features that are switched off.
func (s *FeaturesScreen) Skipped() []string {
	var skip []string
	for _, field := range s.form.fields {
		if !field.on {
			skip = append(skip, field.key)
		}
	}
	slices.Sort(skip)
	return skip
}

func (s *FeaturesScreen) View() string {
	theme := s.session.Theme()
	var b strings.Builder

	b.WriteString("\n")
	if s.kind == pipeline.TypeTemplate {
		b.WriteString("  Template features. Parts required by the community guidelines are always included.\n\n")
	} else {
		b.WriteString("  Choose the template features to include in your custom pipeline.\n\n")
	}

	if len(s.features) == 0 {
		b.WriteString(theme.Dim.Render("  No optional features for this pipeline type.") + "\n")
	}

	b.WriteString(s.form.view(theme))

	return b.String()
}

func (s *FeaturesScreen) StatusHints() []KeyHint {
	return s.form.hints()
}

// Toggle flips a feature by name (for testing).
func (s *FeaturesScreen) Toggle(name string) {
	if field := s.form.field(name); field != nil {
		field.on = !field.on
	}
}
