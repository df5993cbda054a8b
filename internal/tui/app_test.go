package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreagrandi/pipecreate/internal/github"
	"github.com/andreagrandi/pipecreate/internal/pipeline"
)

func TestNewWizardModel_StartsEmpty(t *testing.T) {
	model := NewWizardModel(testSession(t), testServices(), "1.0.0")

	assert.Empty(t, model.Stack())
	assert.Equal(t, "1.0.0", model.version)
	assert.Contains(t, model.View(), "pipecreate v1.0.0")
}

func TestWizardModel_ReadyPushesWelcome(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())
	assert.Equal(t, []ScreenID{ScreenWelcome}, model.Stack())

	// A second ready message does not push again.
	updated, _ := model.Update(readyMsg{})
	assert.Equal(t, []ScreenID{ScreenWelcome}, updated.(WizardModel).Stack())
}

func TestWizardModel_StartPushesChooseType(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())

	model, _ = press(t, model, ButtonStart)

	assert.Equal(t, []ScreenID{ScreenWelcome, ScreenChooseType}, model.Stack())
}

func TestWizardModel_TypeCustomPushesBasicDetails(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())

	model, _ = press(t, model, ButtonStart, ButtonTypeCustom)

	assert.Equal(t, []ScreenID{ScreenWelcome, ScreenChooseType, ScreenBasicDetails}, model.Stack())
	assert.Equal(t, pipeline.TypeCustom, model.Session().PipelineType)
	assert.False(t, model.Session().Config.IsNfcore)
}

func TestWizardModel_BackKeepsPipelineType(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())

	model, _ = press(t, model, ButtonStart, ButtonTypeCustom, ButtonBack)

	assert.Equal(t, []ScreenID{ScreenWelcome, ScreenChooseType}, model.Stack())
	assert.Equal(t, pipeline.TypeCustom, model.Session().PipelineType)
}

func TestWizardModel_PipelineTypeIdempotentAndOverwritten(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())

	model, _ = press(t, model, ButtonStart, ButtonTypeNfcore)
	assert.Equal(t, pipeline.TypeTemplate, model.Session().PipelineType)
	assert.Equal(t, pipeline.TemplateOrg, model.Session().Config.Org)
	first := *model.Session().Config

	model, _ = press(t, model, ButtonBack, ButtonTypeNfcore)
	assert.Equal(t, pipeline.TypeTemplate, model.Session().PipelineType)
	assert.Equal(t, first, *model.Session().Config)

	model, _ = press(t, model, ButtonBack, ButtonTypeCustom)
	assert.Equal(t, pipeline.TypeCustom, model.Session().PipelineType)
	assert.False(t, model.Session().Config.IsNfcore)
}

func TestWizardModel_BackRestoresExactScreen(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())
	model, _ = press(t, model, ButtonStart)

	// Move the button cursor so the screen has local state.
	model, _ = sendKey(t, model, tea.KeyMsg{Type: tea.KeyRight})
	before := model.TopScreen()
	require.Equal(t, 1, before.(*ChooseTypeScreen).Cursor())

	model, _ = press(t, model, ButtonTypeCustom, ButtonBack)

	assert.Same(t, before, model.TopScreen())
	assert.Equal(t, 1, model.TopScreen().(*ChooseTypeScreen).Cursor())
}

func TestWizardModel_CachedScreensAreReused(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())

	model, _ = press(t, model, ButtonStart)
	first := model.TopScreen()

	model, _ = press(t, model, ButtonBack, ButtonStart)
	assert.Same(t, first, model.TopScreen())
}

func TestWizardModel_SwitchIsNotUndoneByBack(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())

	model, _ = press(t, model, ButtonStart, ButtonTypeNfcore, ButtonContinue)
	require.Equal(t, ScreenFinalDetails, model.Top())

	model, _ = press(t, model, ButtonCloseScreen)
	assert.Equal(t, []ScreenID{ScreenWelcome, ScreenChooseType, ScreenBasicDetails, ScreenGithubRepoQuestion}, model.Stack())

	model, _ = press(t, model, ButtonBack)
	assert.Equal(t, ScreenBasicDetails, model.Top())
}

func TestWizardModel_CloseScreenAtGithubExitReplacesOnlyTop(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())

	model, _ = press(t, model, ButtonStart, ButtonTypeNfcore, ButtonContinue, ButtonCloseScreen, ButtonExit)
	require.Equal(t, ScreenGithubExit, model.Top())
	below := model.Stack()[:len(model.Stack())-1]

	model, _ = press(t, model, ButtonCloseScreen)

	assert.Equal(t, ScreenGithubRepoQuestion, model.Top())
	assert.Equal(t, below, model.Stack()[:len(model.Stack())-1])
}

func TestWizardModel_ShowLoggingBuildsFreshScreen(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())
	model, _ = press(t, model, ButtonStart, ButtonGithubRepo)

	model, _ = press(t, model, ButtonShowLogging)
	assert.Equal(t, []ScreenID{ScreenWelcome, ScreenChooseType, ScreenLogging}, model.Stack())
	assert.Equal(t, LoggingRepoCreated, model.Session().LoggingState)

	first := model.TopScreen()
	assert.Equal(t, ButtonCloseApp, first.(*LoggingScreen).Button())

	model, _ = press(t, model, ButtonShowLogging)
	assert.NotSame(t, first, model.TopScreen())
	assert.Equal(t, 3, len(model.Stack()))
}

func TestWizardModel_CloseAppQuits(t *testing.T) {
	for _, path := range [][]ButtonID{
		nil,
		{ButtonStart},
		{ButtonStart, ButtonTypeCustom, ButtonContinue},
		{ButtonStart, ButtonExit},
	} {
		sess := testSession(t)
		model := startedModel(t, sess, testServices())
		model, _ = press(t, model, path...)

		_, cmd := press(t, model, ButtonCloseApp)
		assert.True(t, isQuit(cmd), "path %v", path)
		assert.Error(t, sess.Ctx.Err(), "context should be cancelled")
	}
}

func TestWizardModel_BackOnLastScreenQuits(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())

	model, cmd := press(t, model, ButtonBack)

	assert.True(t, isQuit(cmd))
	assert.Equal(t, []ScreenID{ScreenWelcome}, model.Stack())
}

func TestWizardModel_UnknownButtonIsIgnored(t *testing.T) {
	sess := testSession(t)
	model := startedModel(t, sess, testServices())
	model, _ = press(t, model, ButtonStart)
	before := model.Stack()

	model, cmd := press(t, model, ButtonID("launch_rocket"))

	assert.Nil(t, cmd)
	assert.Equal(t, before, model.Stack())
	assert.Contains(t, strings.Join(sess.Logs.Lines(), "\n"), "Ignoring unexpected button")
}

func TestWizardModel_ScreenOwnedButtonsDoNotNavigate(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())

	for _, id := range []ButtonID{ButtonNext, ButtonFinish, ButtonCreateGithub} {
		var cmd tea.Cmd
		model, cmd = press(t, model, id)
		assert.Nil(t, cmd)
	}
	assert.Equal(t, []ScreenID{ScreenWelcome}, model.Stack())
}

func TestWizardModel_StackNeverEmpties(t *testing.T) {
	ids := []ButtonID{
		ButtonStart, ButtonTypeNfcore, ButtonTypeCustom, ButtonContinue, ButtonGithubRepo,
		ButtonCloseScreen, ButtonExit, ButtonShowLogging, ButtonBack,
	}

	model := startedModel(t, testSession(t), testServices())

	// A fixed pseudo-random walk over the navigation buttons.
	seed := 7
	for i := 0; i < 300; i++ {
		seed = (seed*1103515245 + 12345) % 2147483648
		model, _ = press(t, model, ids[seed%len(ids)])
		require.GreaterOrEqual(t, len(model.Stack()), 1)
		require.NotNil(t, model.TopScreen())
	}
}

func TestWizardModel_DarkToggle(t *testing.T) {
	sess := testSession(t)
	model := startedModel(t, sess, testServices())
	original := sess.Dark

	model, _ = sendKey(t, model, runes("d"))
	assert.Equal(t, !original, sess.Dark)
	assert.Equal(t, !original, sess.Theme().Dark)

	model, _ = sendKey(t, model, runes("d"))
	assert.Equal(t, original, sess.Dark)
	assert.Equal(t, []ScreenID{ScreenWelcome}, model.Stack())
}

func TestWizardModel_QuitKey(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())

	_, cmd := sendKey(t, model, runes("q"))
	assert.True(t, isQuit(cmd))
}

func TestWizardModel_GlobalKeysReachTextInputs(t *testing.T) {
	sess := testSession(t)
	model := startedModel(t, sess, testServices())
	model, _ = press(t, model, ButtonStart, ButtonTypeCustom)

	model, cmd := sendKey(t, model, runes("q"))
	assert.False(t, isQuit(cmd))
	model, _ = sendKey(t, model, runes("d"))
	assert.True(t, sess.Dark)

	screen := model.TopScreen().(*BasicDetailsScreen)
	assert.Equal(t, "qd", screen.form.field("org").value())
}

func TestWizardModel_CtrlCQuits(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())
	model, _ = press(t, model, ButtonStart, ButtonTypeCustom)

	_, cmd := sendKey(t, model, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
}

func TestWizardModel_NavigateMsg(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())

	updated, _ := model.Update(NavigateMsg{Screen: ScreenCustomPipeline, Mode: NavPush})
	model = updated.(WizardModel)
	assert.Equal(t, []ScreenID{ScreenWelcome, ScreenCustomPipeline}, model.Stack())

	updated, _ = model.Update(NavigateMsg{Screen: ScreenError, Mode: NavSwitch})
	model = updated.(WizardModel)
	assert.Equal(t, []ScreenID{ScreenWelcome, ScreenError}, model.Stack())
}

func TestWizardModel_ScaffoldFailureShowsError(t *testing.T) {
	sess := testSession(t)
	model := startedModel(t, sess, testServices())
	model, _ = press(t, model, ButtonStart, ButtonTypeCustom, ButtonContinue)

	updated, _ := model.Update(ScaffoldDoneMsg{Err: errors.New("disk full")})
	model = updated.(WizardModel)

	assert.Equal(t, ScreenError, model.Top())
	assert.EqualError(t, sess.LastErr, "disk full")
	assert.Contains(t, model.View(), "disk full")

	// The error screen is a normal navigation target.
	model, _ = press(t, model, ButtonBack)
	assert.Equal(t, ScreenFinalDetails, model.Top())
	assert.Equal(t, finalSubStateForm, model.TopScreen().(*FinalDetailsScreen).SubState())
}

func TestWizardModel_ScaffoldSuccessRevealsContinue(t *testing.T) {
	sess := testSession(t)
	model := startedModel(t, sess, testServices())
	model, _ = press(t, model, ButtonStart, ButtonTypeCustom, ButtonContinue)

	updated, _ := model.Update(ScaffoldDoneMsg{Dir: "/tmp/acme-rnaseq"})
	model = updated.(WizardModel)

	assert.Equal(t, ScreenFinalDetails, model.Top())
	assert.Equal(t, "/tmp/acme-rnaseq", sess.PipelineDir)

	screen := model.TopScreen().(*FinalDetailsScreen)
	assert.Equal(t, finalSubStateDone, screen.SubState())

	_, cmd := screen.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ButtonPressedMsg{ID: ButtonCloseScreen}, cmd())
}

func TestWizardModel_RepoResultRouting(t *testing.T) {
	sess := testSession(t)
	model := startedModel(t, sess, testServices())
	model, _ = press(t, model, ButtonStart, ButtonGithubRepo)

	updated, _ := model.Update(RepoCreatedMsg{Err: github.ErrRepoExists})
	model = updated.(WizardModel)
	assert.Equal(t, ScreenError, model.Top())
	assert.ErrorIs(t, sess.LastErr, github.ErrRepoExists)

	model, _ = press(t, model, ButtonBack)
	updated, _ = model.Update(RepoCreatedMsg{Result: &github.Result{HTMLURL: "https://github.com/acme/rnaseq"}})
	model = updated.(WizardModel)

	assert.Equal(t, ScreenGithubRepo, model.Top())
	screen := model.TopScreen().(*GithubRepoScreen)
	assert.Equal(t, repoSubStateDone, screen.SubState())
	assert.Contains(t, screen.View(), "https://github.com/acme/rnaseq")
}

func TestWizardModel_WindowSizeForwarded(t *testing.T) {
	model := startedModel(t, testSession(t), testServices())

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model = updated.(WizardModel)

	assert.Equal(t, 120, model.width)
	assert.Equal(t, 40, model.height)
	assert.Len(t, strings.Split(model.View(), "\n"), 40)
}

func TestWizardModel_ViewShowsBreadcrumb(t *testing.T) {
	sess := testSession(t)
	model := startedModel(t, sess, testServices())
	model, _ = press(t, model, ButtonStart, ButtonTypeCustom)

	view := model.View()
	assert.Contains(t, view, "custom ✓")
	assert.Contains(t, view, "Details")
	assert.Contains(t, view, "Ctrl+C")
}

func TestContentHeightFromTerminal(t *testing.T) {
	assert.Equal(t, ContentHeight, contentHeightFromTerminal(0))
	assert.Equal(t, 1, contentHeightFromTerminal(2))
	assert.Equal(t, 37, contentHeightFromTerminal(40))
}

func TestPadToHeight(t *testing.T) {
	assert.Equal(t, "a\n\n", padToHeight("a\n", 3))
	assert.Equal(t, "a\nb", padToHeight("a\nb\nc", 2))
}
