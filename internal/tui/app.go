package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andreagrandi/pipecreate/internal/app"
	"github.com/andreagrandi/pipecreate/internal/pipeline"
)

// WizardModel is the root Bubble Tea model. It owns the navigation stack
// and the session, and turns button presses into navigation.
type WizardModel struct {
	session  *Session
	services *Services
	screens  *registry
	stack    *navStack
	version  string
	cancel   context.CancelFunc
	width    int
	height   int
}

// NewWizardModel creates the root model. The stack stays empty until the
// program reports it is ready.
func NewWizardModel(sess *Session, svc *Services, version string) WizardModel {
	if svc == nil {
		svc = &Services{}
	}

	parent := sess.Ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	sess.Ctx = ctx

	return WizardModel{
		session:  sess,
		services: svc,
		screens:  newRegistry(sess, svc),
		stack:    &navStack{},
		version:  version,
		cancel:   cancel,
	}
}

func (m WizardModel) Init() tea.Cmd {
	return func() tea.Msg { return readyMsg{} }
}

func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readyMsg:
		if m.stack.depth() == 0 {
			return m, m.push(ScreenWelcome)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Forward to screen so it can adjust (e.g. scroll bounds).

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()
		case "d", "q":
			if !m.capturingInput() {
				if msg.String() == "q" {
					return m, m.quit()
				}
				m.session.ToggleDark()
				return m, nil
			}
		}

	case ButtonPressedMsg:
		return m.dispatch(msg.ID)

	case NavigateMsg:
		if msg.Mode == NavSwitch {
			return m, m.switchTo(msg.Screen)
		}
		return m, m.push(msg.Screen)

	case ScaffoldDoneMsg:
		if msg.Err != nil {
			return m, tea.Batch(m.deliver(ScreenFinalDetails, msg), m.fail(msg.Err))
		}
		m.session.PipelineDir = msg.Dir
		return m, m.deliver(ScreenFinalDetails, msg)

	case RepoCreatedMsg:
		if msg.Err != nil {
			return m, tea.Batch(m.deliver(ScreenGithubRepo, msg), m.fail(msg.Err))
		}
		return m, m.deliver(ScreenGithubRepo, msg)
	}

	return m, m.forward(msg)
}

// dispatch performs the navigation bound to a button.
func (m WizardModel) dispatch(id ButtonID) (tea.Model, tea.Cmd) {
	m.session.Logger.Debug("Button pressed", "id", string(id), "screen", m.Top().String())

	switch id {
	case ButtonStart:
		return m, m.push(ScreenChooseType)
	case ButtonTypeNfcore:
		m.session.SetPipelineType(pipeline.TypeTemplate)
		return m, m.push(ScreenBasicDetails)
	case ButtonTypeCustom:
		m.session.SetPipelineType(pipeline.TypeCustom)
		return m, m.push(ScreenBasicDetails)
	case ButtonContinue:
		return m, m.push(ScreenFinalDetails)
	case ButtonGithubRepo:
		return m, m.push(ScreenGithubRepo)
	case ButtonCloseScreen:
		return m, m.switchTo(ScreenGithubRepoQuestion)
	case ButtonExit:
		return m, m.push(ScreenGithubExit)
	case ButtonShowLogging:
		m.session.LoggingState = LoggingRepoCreated
		return m, m.switchTo(ScreenLogging)
	case ButtonCloseApp:
		return m, m.quit()
	case ButtonBack:
		return m, m.back()
	default:
		m.session.Logger.Warn("Ignoring unexpected button", "id", string(id))
		return m, nil
	}
}

func (m WizardModel) push(id ScreenID) tea.Cmd {
	s := m.screens.get(id)
	m.stack.push(id, s)
	return m.enter(s)
}

func (m WizardModel) switchTo(id ScreenID) tea.Cmd {
	s := m.screens.get(id)
	m.stack.replace(id, s)
	return m.enter(s)
}

// back pops the top screen. Leaving the last screen quits.
func (m WizardModel) back() tea.Cmd {
	if !m.stack.pop() {
		return m.quit()
	}

	top, _ := m.stack.top()
	return m.enter(top.screen)
}

// enter initialises a screen that just became visible and tells it the
// current window size.
func (m WizardModel) enter(s Screen) tea.Cmd {
	cmds := []tea.Cmd{initScreen(s)}
	if m.width > 0 || m.height > 0 {
		size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
		cmds = append(cmds, m.forward(size))
	}
	return tea.Batch(cmds...)
}

func (m WizardModel) fail(err error) tea.Cmd {
	m.session.LastErr = err
	m.session.Logger.Error("Operation failed", "err", err)
	return m.push(ScreenError)
}

func (m WizardModel) quit() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	return tea.Quit
}

// forward delivers a message to the visible screen.
func (m WizardModel) forward(msg tea.Msg) tea.Cmd {
	top, ok := m.stack.top()
	if !ok {
		return nil
	}

	next, cmd := top.screen.Update(msg)
	m.stack.setTop(next)
	m.screens.store(top.id, next)
	return cmd
}

// deliver sends a collaborator result to the screen that started the work,
// even when the user has navigated away from it.
func (m WizardModel) deliver(id ScreenID, msg tea.Msg) tea.Cmd {
	if top, ok := m.stack.top(); ok && top.id == id {
		return m.forward(msg)
	}

	s := m.screens.get(id)
	next, cmd := s.Update(msg)
	m.screens.store(id, next)
	return cmd
}

func (m WizardModel) capturingInput() bool {
	top, ok := m.stack.top()
	if !ok {
		return false
	}
	c, ok := top.screen.(InputCapturer)
	return ok && c.CapturingInput()
}

// Top returns the visible screen id.
func (m WizardModel) Top() ScreenID {
	top, _ := m.stack.top()
	return top.id
}

// TopScreen returns the visible screen (for testing).
func (m WizardModel) TopScreen() Screen {
	top, _ := m.stack.top()
	return top.screen
}

// Stack returns the screen ids from bottom to top (for testing).
func (m WizardModel) Stack() []ScreenID {
	return m.stack.ids()
}

// Session returns the shared session (for testing).
func (m WizardModel) Session() *Session {
	return m.session
}

func (m WizardModel) View() string {
	theme := m.session.Theme()

	// Title bar.
	titleLabel := app.Name
	if m.version != "" {
		titleLabel += " v" + m.version
	}

	titleText := theme.Title.Render(titleLabel)
	breadcrumb := RenderBreadcrumb(theme, m.breadcrumbSteps())

	var titleBar string
	if breadcrumb != "" {
		titleBar = titleText + "  " + breadcrumb
	} else {
		titleBar = titleText
	}

	// Separator line.
	sepWidth := m.width
	if sepWidth <= 0 {
		sepWidth = 40
	}

	separator := theme.Separator.Render(strings.Repeat("\u2500", sepWidth))

	top, ok := m.stack.top()
	if !ok {
		return titleBar + "\n" + separator + "\n"
	}

	content := padToHeight(top.screen.View(), m.contentHeight())
	statusBar := RenderStatusBar(theme, append(top.screen.StatusHints(), globalHints(m.capturingInput())...), m.width)

	return titleBar + "\n" + separator + "\n" + content + "\n" + statusBar
}

func globalHints(capturing bool) []KeyHint {
	if capturing {
		return []KeyHint{{Key: "Ctrl+C", Desc: "quit"}}
	}
	return []KeyHint{
		{Key: "d", Desc: "dark/light"},
		{Key: "q", Desc: "quit"},
	}
}

func (m WizardModel) contentHeight() int {
	return contentHeightFromTerminal(m.height)
}

// contentHeightFromTerminal calculates the content area height from the
// terminal height, subtracting the chrome lines (title + separator + status bar).
func contentHeightFromTerminal(termHeight int) int {
	if termHeight <= 0 {
		return ContentHeight
	}

	h := termHeight - ChromeLines
	if h < 1 {
		h = 1
	}

	return h
}

// padToHeight pads or truncates content to exactly targetHeight lines.
func padToHeight(content string, targetHeight int) string {
	content = strings.TrimRight(content, "\n")

	lines := strings.Split(content, "\n")
	for len(lines) < targetHeight {
		lines = append(lines, "")
	}

	if len(lines) > targetHeight {
		lines = lines[:targetHeight]
	}

	return strings.Join(lines, "\n")
}

// Run starts the full-screen TUI and blocks until the user quits.
func Run(sess *Session, svc *Services, version string) error {
	p := tea.NewProgram(NewWizardModel(sess, svc, version), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
