package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andreagrandi/pipecreate/internal/pipeline"
)

const (
	finalSubStateForm = iota
	finalSubStateRunning
	finalSubStateDone
)

// FinalDetailsScreen collects the version and output directory, then runs
// the scaffolding engine.
type FinalDetailsScreen struct {
	session  *Session
	services *Services
	form     form
	spinner  spinner.Model
	log      logView
	subState int
	dir      string
}

// NewFinalDetailsScreen creates the last form of the wizard.
func NewFinalDetailsScreen(sess *Session, svc *Services) *FinalDetailsScreen {
	cfg := sess.Config

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &FinalDetailsScreen{
		session:  sess,
		services: svc,
		form: form{
			fields: []*formField{
				textField("version", "Version", pipeline.DefaultVersion, cfg.Version),
				textField("outdir", "Output directory", ".", cfg.OutDir),
				toggleField("force", "Overwrite an existing pipeline", "", cfg.Force),
			},
			buttons: newButtonBar(
				button{ButtonFinish, "Finish"},
				button{ButtonBack, "Back"},
			),
		},
		spinner: sp,
		log:     newLogView(sess.Logs, 5),
	}
}

func (s *FinalDetailsScreen) Init() tea.Cmd {
	if s.subState == finalSubStateRunning {
		return s.spinner.Tick
	}
	return s.form.setFocus(s.form.focus)
}

func (s *FinalDetailsScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.log.resize(contentHeightFromTerminal(msg.Height) - 8)
		return s, nil

	case spinner.TickMsg:
		if s.subState != finalSubStateRunning {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case ScaffoldDoneMsg:
		if msg.Err != nil {
			s.subState = finalSubStateForm
			return s, s.form.setFocus(len(s.form.visible()))
		}
		s.subState = finalSubStateDone
		s.dir = msg.Dir
		s.form.buttons.set(button{ButtonCloseScreen, "Continue"})
		s.form.setFocus(len(s.form.visible()))
		return s, nil
	}

	if s.subState == finalSubStateRunning {
		return s, nil
	}

	if s.subState == finalSubStateDone {
		if key, ok := msg.(tea.KeyMsg); ok {
			if s.log.update(key) {
				return s, nil
			}
			if id, ok := s.form.buttons.update(key); ok {
				return s, pressed(id)
			}
		}
		return s, nil
	}

	id, ok, cmd := s.form.update(msg)
	if !ok {
		return s, cmd
	}

	if id == ButtonFinish {
		return s, s.finish()
	}
	return s, pressed(id)
}

func (s *FinalDetailsScreen) finish() tea.Cmd {
	cfg := s.session.Config.Clone()
	cfg.Version = s.form.field("version").value()
	cfg.OutDir = s.form.field("outdir").value()
	cfg.Force = s.form.field("force").on

	s.form.clearErrors()
	if err := cfg.ValidateFinal(); err != nil {
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

	if s.services.Scaffold == nil {
		return func() tea.Msg {
			return ScaffoldDoneMsg{Err: errors.New("no scaffolding engine configured")}
		}
	}

	s.subState = finalSubStateRunning
	s.session.Logger.Info("Creating pipeline", "name", cfg.FullName(), "type", s.session.PipelineType.Label())

	ctx := s.session.Ctx
	scaffold := s.services.Scaffold
	snapshot := cfg.Clone()

	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		dir, err := scaffold(ctx, snapshot)
		return ScaffoldDoneMsg{Dir: dir, Err: err}
	})
}

func (s *FinalDetailsScreen) View() string {
	theme := s.session.Theme()
	var b strings.Builder

	b.WriteString("\n")

	switch s.subState {
	case finalSubStateRunning:
		b.WriteString("  " + s.spinner.View() + " Creating " + s.session.Config.FullName() + "...\n\n")
		b.WriteString(s.log.view(theme))

	case finalSubStateDone:
		b.WriteString(theme.Completed.Render("  \u2713 Pipeline created in "+s.dir) + "\n\n")
		b.WriteString(s.log.view(theme))
		b.WriteString("\n")
		b.WriteString(s.form.buttons.view(theme, true))
		b.WriteString("\n")

	default:
		b.WriteString(s.form.view(theme))
	}

	return b.String()
}

func (s *FinalDetailsScreen) StatusHints() []KeyHint {
	switch s.subState {
	case finalSubStateRunning:
		return nil
	case finalSubStateDone:
		return append(buttonHints(), s.log.hints()...)
	}
	return s.form.hints()
}

func (s *FinalDetailsScreen) CapturingInput() bool {
	return s.subState == finalSubStateForm && s.form.capturing()
}

// SubState returns the current sub-state (for testing).
func (s *FinalDetailsScreen) SubState() int {
	return s.subState
}

// FieldError returns the validation message shown for a field (for testing).
func (s *FinalDetailsScreen) FieldError(key string) string {
	if field := s.form.field(key); field != nil {
		return field.err
	}
	return ""
}
