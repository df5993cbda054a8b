package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andreagrandi/pipecreate/internal/github"
)

// ScreenID identifies a wizard screen.
type ScreenID int

const (
	ScreenWelcome ScreenID = iota
	ScreenBasicDetails
	ScreenChooseType
	ScreenCustomPipeline
	ScreenTemplatePipeline
	ScreenFinalDetails
	ScreenGithubRepoQuestion
	ScreenGithubRepo
	ScreenGithubExit
	ScreenError
	ScreenLogging
)

var screenNames = map[ScreenID]string{
	ScreenWelcome:            "welcome",
	ScreenBasicDetails:       "basic-details",
	ScreenChooseType:         "choose-type",
	ScreenCustomPipeline:     "custom-pipeline-details",
	ScreenTemplatePipeline:   "template-pipeline-details",
	ScreenFinalDetails:       "final-details",
	ScreenGithubRepoQuestion: "github-repo-question",
	ScreenGithubRepo:         "github-repo",
	ScreenGithubExit:         "github-exit",
	ScreenError:              "error",
	ScreenLogging:            "logging",
}

func (id ScreenID) String() string {
	if name, ok := screenNames[id]; ok {
		return name
	}
	return "unknown"
}

// KeyHint describes a keybinding shown in the status bar.
type KeyHint struct {
	Key  string
	Desc string
}

// Screen defines the interface each wizard screen must implement.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	StatusHints() []KeyHint
}

// InputCapturer is implemented by screens with text fields. While it
// reports true, the global d and q keys are delivered to the screen.
type InputCapturer interface {
	CapturingInput() bool
}

// ButtonID names a button. The set is closed; ids are unique across all
// screens.
type ButtonID string

// Buttons routed through the controller.
const (
	ButtonStart       ButtonID = "start"
	ButtonTypeNfcore  ButtonID = "type_nfcore"
	ButtonTypeCustom  ButtonID = "type_custom"
	ButtonContinue    ButtonID = "continue"
	ButtonGithubRepo  ButtonID = "github_repo"
	ButtonCloseScreen ButtonID = "close_screen"
	ButtonExit        ButtonID = "exit"
	ButtonShowLogging ButtonID = "show_logging"
	ButtonCloseApp    ButtonID = "close_app"
	ButtonBack        ButtonID = "back"
)

// Buttons handled by the screen that shows them.
const (
	ButtonNext         ButtonID = "next"
	ButtonFinish       ButtonID = "finish"
	ButtonCreateGithub ButtonID = "create_github"
)

// ButtonPressedMsg is emitted when a controller button is pressed.
type ButtonPressedMsg struct {
	ID ButtonID
}

func pressed(id ButtonID) tea.Cmd {
	return func() tea.Msg { return ButtonPressedMsg{ID: id} }
}

// NavMode selects how NavigateMsg changes the stack.
type NavMode int

const (
	NavPush NavMode = iota
	NavSwitch
)

// NavigateMsg requests navigation started by a screen rather than by a
// button in the transition table.
type NavigateMsg struct {
	Screen ScreenID
	Mode   NavMode
}

// ScaffoldDoneMsg reports the end of pipeline scaffolding.
type ScaffoldDoneMsg struct {
	Dir string
	Err error
}

// RepoCreatedMsg reports the end of repository creation.
type RepoCreatedMsg struct {
	Result *github.Result
	Err    error
}

// readyMsg fires once when the program starts.
type readyMsg struct{}
