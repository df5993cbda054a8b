package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	surveycore "github.com/AlecAivazis/survey/v2/core"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/andreagrandi/pipecreate/internal/credential"
	"github.com/andreagrandi/pipecreate/internal/features"
	"github.com/andreagrandi/pipecreate/internal/github"
	"github.com/andreagrandi/pipecreate/internal/pipeline"
	"github.com/andreagrandi/pipecreate/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errSurveyBack is returned by askSurveyPrompt when Esc was pressed.
var errSurveyBack = errors.New("back")

var askSurveyOne = func(prompt survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	return survey.AskOne(prompt, response, opts...)
}

func canUseInteractiveUI(input io.Reader, output io.Writer) bool {
	inputFile, inputOK := input.(*os.File)
	outputFile, outputOK := output.(*os.File)
	if !inputOK || !outputOK {
		return false
	}

	return term.IsTerminal(int(inputFile.Fd())) && term.IsTerminal(int(outputFile.Fd()))
}

// surveyWizard asks the same questions as the TUI with line prompts.
type surveyWizard struct {
	cmd      *cobra.Command
	cfg      *pipeline.Config
	typ      pipeline.Type
	catalog  *features.Catalog
	services *tui.Services
	username string
}

var surveySteps = []string{"Pipeline type", "Basic details", "Template features", "Final details"}

func runSurveyWizard(cmd *cobra.Command, start *pipeline.Config, catalog *features.Catalog, svc *tui.Services, username string) error {
	output := cmd.OutOrStdout()
	w := &surveyWizard{
		cmd:      cmd,
		cfg:      start.Clone(),
		catalog:  catalog,
		services: svc,
		username: username,
	}

	fmt.Fprintln(output, "Create a new pipeline")
	printSurveyHint(output, "Press Esc to go back to the previous step.")

	steps := []func() error{w.askType, w.askBasics, w.askFeatures, w.askFinal}
	for i := 0; i < len(steps); {
		fmt.Fprintln(output)
		fmt.Fprintf(output, "Step %d/%d: %s\n", i+1, len(steps), surveySteps[i])

		err := steps[i]()
		if errors.Is(err, errSurveyBack) {
			if i == 0 {
				fmt.Fprintln(output, "Cancelled.")
				return nil
			}
			i--
			continue
		}
		if err != nil {
			return err
		}
		i++
	}

	dir, err := w.services.Scaffold(cmd.Context(), w.cfg.Clone())
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	fmt.Fprintln(output)
	fmt.Fprintf(output, "Pipeline %s created in %s\n", w.cfg.FullName(), dir)

	if err := w.askGitHub(dir); err != nil && !errors.Is(err, errSurveyBack) {
		return err
	}
	return nil
}

func (w *surveyWizard) askType() error {
	const (
		templateLabel = "Template-based pipeline"
		customLabel   = "Custom pipeline"
	)

	choice := ""
	def := templateLabel
	if w.typ == pipeline.TypeCustom {
		def = customLabel
	}

	printSurveyHint(w.cmd.OutOrStdout(), "Use Up/Down arrows, Enter to select.")
	prompt := &survey.Select{
		Message:  "Pipeline type",
		Options:  []string{templateLabel, customLabel},
		Default:  def,
		PageSize: 2,
	}
	if err := askSurveyPrompt(w.cmd, prompt, &choice); err != nil {
		return wrapSurveyErr("read pipeline type", err)
	}

	w.typ = pipeline.TypeTemplate
	if choice == customLabel {
		w.typ = pipeline.TypeCustom
		if w.cfg.Org == pipeline.TemplateOrg {
			w.cfg.Org = ""
		}
	}
	w.cfg.ApplyType(w.typ)

	return nil
}

func (w *surveyWizard) askBasics() error {
	type question struct {
		key     string
		message string
		dst     *string
	}

	questions := []question{
		{"name", "Pipeline name", &w.cfg.Name},
		{"description", "Description", &w.cfg.Description},
		{"author", "Author(s)", &w.cfg.Author},
	}
	if w.typ == pipeline.TypeCustom {
		questions = append([]question{{"org", "GitHub organisation", &w.cfg.Org}}, questions...)
	}

	for _, q := range questions {
		answer := ""
		prompt := &survey.Input{Message: q.message, Default: *q.dst}
		if err := askSurveyPrompt(w.cmd, prompt, &answer, survey.WithValidator(fieldValidator(q.key))); err != nil {
			return wrapSurveyErr("read "+q.key, err)
		}
		*q.dst = strings.TrimSpace(answer)
	}

	return nil
}

func (w *surveyWizard) askFeatures() error {
	list := w.catalog.ForType(w.typ)
	if len(list) == 0 {
		fmt.Fprintln(w.cmd.OutOrStdout(), "No optional features for this pipeline type.")
		return nil
	}

	labels := make([]string, 0, len(list))
	nameByLabel := make(map[string]string, len(list))
	var defaults []string
	for _, f := range list {
		label := fmt.Sprintf("%s - %s", f.Name, f.ShortDescription)
		labels = append(labels, label)
		nameByLabel[label] = f.Name
		if f.Default && !w.cfg.Skips(f.Name) {
			defaults = append(defaults, label)
		}
	}

	var selected []string
	printSurveyHint(w.cmd.OutOrStdout(), "Use Up/Down arrows, Space to toggle, Enter to confirm.")
	prompt := &survey.MultiSelect{
		Message:  "Features to include",
		Options:  labels,
		Default:  defaults,
		PageSize: 10,
	}
	if err := askSurveyPrompt(w.cmd, prompt, &selected); err != nil {
		return wrapSurveyErr("read features", err)
	}

	on := make(map[string]bool, len(selected))
	for _, label := range selected {
		on[nameByLabel[label]] = true
	}

	var skip []string
	for _, f := range list {
		if !on[f.Name] {
			skip = append(skip, f.Name)
		}
	}
	w.cfg.SetSkipFeatures(skip)

	return nil
}

func (w *surveyWizard) askFinal() error {
	version := ""
	if err := askSurveyPrompt(w.cmd, &survey.Input{Message: "Version", Default: w.cfg.Version}, &version,
		survey.WithValidator(fieldValidator("version"))); err != nil {
		return wrapSurveyErr("read version", err)
	}
	w.cfg.Version = strings.TrimSpace(version)

	outdir := ""
	if err := askSurveyPrompt(w.cmd, &survey.Input{Message: "Output directory", Default: w.cfg.OutDir}, &outdir,
		survey.WithValidator(fieldValidator("outdir"))); err != nil {
		return wrapSurveyErr("read output directory", err)
	}
	w.cfg.OutDir = strings.TrimSpace(outdir)

	if _, err := os.Stat(w.cfg.PipelineDir()); err == nil {
		force := w.cfg.Force
		prompt := &survey.Confirm{Message: w.cfg.PipelineDir() + " exists. Overwrite it?", Default: force}
		if err := askSurveyPrompt(w.cmd, prompt, &force); err != nil {
			return wrapSurveyErr("read overwrite confirmation", err)
		}
		if !force {
			return errors.New("pipeline directory already exists")
		}
		w.cfg.Force = true
	}

	return nil
}

func (w *surveyWizard) askGitHub(dir string) error {
	output := w.cmd.OutOrStdout()

	create := false
	if err := askSurveyPrompt(w.cmd, &survey.Confirm{Message: "Create a GitHub repository?"}, &create); err != nil {
		return wrapSurveyErr("read GitHub choice", err)
	}

	if !create {
		fmt.Fprintln(output)
		fmt.Fprintln(output, "To publish the pipeline later, create an empty repository called "+w.cfg.FullName()+" and run:")
		fmt.Fprintln(output, "  cd "+dir)
		fmt.Fprintln(output, "  git remote add origin git@github.com:"+w.cfg.FullName()+".git")
		fmt.Fprintln(output, "  git push --all origin")
		return nil
	}

	username := ""
	if err := askSurveyPrompt(w.cmd, &survey.Input{Message: "GitHub username", Default: w.username}, &username,
		survey.WithValidator(survey.Required)); err != nil {
		return wrapSurveyErr("read GitHub username", err)
	}
	username = strings.TrimSpace(username)

	token := ""
	if w.services.Credentials != nil {
		if found, source, ok := w.services.Credentials.GitHubToken(); ok {
			use := true
			if err := askSurveyPrompt(w.cmd, &survey.Confirm{Message: "Use the GitHub token from " + source + "?", Default: true}, &use); err != nil {
				return wrapSurveyErr("read token choice", err)
			}
			if use {
				token = found
			}
		}
	}

	if token == "" {
		if err := askSurveyPrompt(w.cmd, &survey.Password{Message: "GitHub token"}, &token,
			survey.WithValidator(survey.Required)); err != nil {
			return wrapSurveyErr("read GitHub token", err)
		}

		save := false
		if err := askSurveyPrompt(w.cmd, &survey.Confirm{Message: "Save the token for next time?"}, &save); err != nil {
			return wrapSurveyErr("read save choice", err)
		}
		if save && w.services.Credentials != nil {
			if err := w.services.Credentials.Store(credential.GitHubTokenKeys[0], token); err != nil {
				fmt.Fprintf(output, "Could not save the token: %v\n", err)
			}
		}
	}

	private := false
	if err := askSurveyPrompt(w.cmd, &survey.Confirm{Message: "Make the repository private?"}, &private); err != nil {
		return wrapSurveyErr("read visibility", err)
	}

	push := true
	if err := askSurveyPrompt(w.cmd, &survey.Confirm{Message: "Push the pipeline branches?", Default: true}, &push); err != nil {
		return wrapSurveyErr("read push choice", err)
	}

	if w.services.RememberUsername != nil {
		if err := w.services.RememberUsername(username); err != nil {
			fmt.Fprintf(output, "Could not remember the GitHub username: %v\n", err)
		}
	}

	req := github.Request{Username: username, Token: strings.TrimSpace(token), Private: private, Push: push}
	res, err := w.services.CreateRepo(w.cmd.Context(), req, w.cfg.Clone(), dir)
	if err != nil {
		return fmt.Errorf("create GitHub repository: %w", err)
	}

	fmt.Fprintf(output, "Repository created: %s\n", res.HTMLURL)
	if !res.Pushed {
		fmt.Fprintln(output, "Nothing was pushed; push the branches yourself.")
	}

	return nil
}

func fieldValidator(key string) survey.Validator {
	return func(ans interface{}) error {
		value, _ := ans.(string)
		if err := pipeline.ValidateField(key, strings.TrimSpace(value)); err != nil {
			var fe *pipeline.FieldError
			if errors.As(err, &fe) {
				return errors.New(fe.Message)
			}
			return err
		}
		return nil
	}
}

func wrapSurveyErr(action string, err error) error {
	if errors.Is(err, errSurveyBack) {
		return err
	}
	return fmt.Errorf("%s: %w", action, err)
}

func askSurveyPrompt(cmd *cobra.Command, prompt survey.Prompt, response interface{}, extra ...survey.AskOpt) error {
	colorEnabled := surveyColorsEnabled()
	previousDisableColor := surveycore.DisableColor
	surveycore.DisableColor = !colorEnabled
	defer func() {
		surveycore.DisableColor = previousDisableColor
	}()

	questionFormat := "default"
	selectFocusFormat := "default"
	markedFormat := "default"
	if colorEnabled {
		questionFormat = "cyan"
		selectFocusFormat = "cyan"
		markedFormat = "green"
	}

	options := []survey.AskOpt{survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = ">"
		icons.Question.Format = questionFormat
		icons.SelectFocus.Text = ">"
		icons.SelectFocus.Format = selectFocusFormat
		icons.MarkedOption.Text = "[x]"
		icons.MarkedOption.Format = markedFormat
		icons.UnmarkedOption.Text = "[ ]"
		icons.UnmarkedOption.Format = "default"
	})}
	options = append(options, extra...)

	inputFile, inputOK := cmd.InOrStdin().(*os.File)
	outputFile, outputOK := cmd.OutOrStdout().(*os.File)
	if !inputOK || !outputOK {
		return askSurveyOne(prompt, response, options...)
	}

	input := newSurveyEscBackInput(inputFile)
	options = append(options, survey.WithStdio(input, outputFile, outputFile))

	err := askSurveyOne(prompt, response, options...)
	if errors.Is(err, terminal.InterruptErr) && input.ConsumeBackPressed() {
		return errSurveyBack
	}
	return err
}

func surveyColorsEnabled() bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}

	termValue := strings.TrimSpace(strings.ToLower(os.Getenv("TERM")))
	return termValue != "dumb"
}

func printSurveyHint(output io.Writer, message string) {
	fmt.Fprintln(output, message)
}
