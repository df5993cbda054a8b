package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andreagrandi/pipecreate/internal/pipeline"
)

// BasicDetailsScreen collects the organisation, name, description and
// author of the pipeline.
type BasicDetailsScreen struct {
	session *Session
	form    form
}

// NewBasicDetailsScreen creates the basic details form prefilled from the
// session config.
func NewBasicDetailsScreen(sess *Session) *BasicDetailsScreen {
	cfg := sess.Config

	return &BasicDetailsScreen{
		session: sess,
		form: form{
			fields: []*formField{
				textField("org", "GitHub organisation", "acme", cfg.Org),
				textField("name", "Pipeline name", "rnaseq", cfg.Name),
				textField("description", "Description", "A pipeline that analyses RNA sequencing data", cfg.Description),
				textField("author", "Author(s)", "Jane Doe", cfg.Author),
			},
			buttons: newButtonBar(
				button{ButtonNext, "Next"},
				button{ButtonBack, "Back"},
			),
		},
	}
}

// Init hides the organisation for template-based pipelines. Entered values
// are kept between visits.
func (s *BasicDetailsScreen) Init() tea.Cmd {
	s.form.field("org").hidden = s.session.PipelineType == pipeline.TypeTemplate
	return s.form.setFocus(s.form.focus)
}

func (s *BasicDetailsScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	id, ok, cmd := s.form.update(msg)
	if !ok {
		return s, cmd
	}

	if id == ButtonNext {
		return s, s.next()
	}
	return s, pressed(id)
}

func (s *BasicDetailsScreen) next() tea.Cmd {
	cfg := s.session.Config.Clone()
	if s.session.PipelineType != pipeline.TypeTemplate {
		cfg.Org = s.form.field("org").value()
	}
	cfg.Name = s.form.field("name").value()
	cfg.Description = s.form.field("description").value()
	cfg.Author = s.form.field("author").value()
	cfg.ApplyType(s.session.PipelineType)

	s.form.clearErrors()
	if err := cfg.ValidateBasic(); err != nil {
		var errs pipeline.FieldErrors
		if !errors.As(err, &errs) {
			s.session.Logger.Error("Validation failed", "err", err)
			return nil
		}
		for _, fe := range errs {
			if field := s.form.field(fe.Field); field != nil {
				field.err = fe.Message
			}
		}
		return s.form.focusFirstError()
	}

	*s.session.Config = *cfg
	s.session.Logger.Debug("Basic details set", "pipeline", cfg.FullName())

	target := ScreenCustomPipeline
	if s.session.PipelineType == pipeline.TypeTemplate {
		target = ScreenTemplatePipeline
	}
	return func() tea.Msg { return NavigateMsg{Screen: target, Mode: NavPush} }
}

func (s *BasicDetailsScreen) View() string {
	theme := s.session.Theme()
	var b strings.Builder

	b.WriteString("\n")
	if s.session.PipelineType == pipeline.TypeTemplate {
		b.WriteString(theme.Dim.Render("  Template-based pipelines are created in the "+pipeline.TemplateOrg+" organisation.") + "\n\n")
	} else {
		b.WriteString(theme.Dim.Render("  The organisation is where the GitHub repository will be created.") + "\n\n")
	}

	b.WriteString(s.form.view(theme))

	return b.String()
}

func (s *BasicDetailsScreen) StatusHints() []KeyHint {
	return s.form.hints()
}

func (s *BasicDetailsScreen) CapturingInput() bool {
	return s.form.capturing()
}

// FieldError returns the validation message shown for a field (for testing).
func (s *BasicDetailsScreen) FieldError(key string) string {
	if field := s.form.field(key); field != nil {
		return field.err
	}
	return ""
}
