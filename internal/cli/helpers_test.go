package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/andreagrandi/pipecreate/internal/config"
	"github.com/andreagrandi/pipecreate/internal/tui"
	"github.com/spf13/pflag"
)

func executeRootCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	resetRootFlags()
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs([]string{})
		resetRootFlags()
	})

	err := rootCmd.Execute()
	output := stdout.String() + stderr.String()

	return output, err
}

// resetRootFlags undoes flag values left on the shared root command by a
// previous execution, including cobra's help flag.
func resetRootFlags() {
	opts = createOptions{}
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// withConfigContent points loadConfig at a config file holding content.
func withConfigContent(t *testing.T, content string) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	original := loadConfig
	loadConfig = func() (*config.Config, error) {
		return config.LoadFrom(configPath)
	}
	t.Cleanup(func() { loadConfig = original })
}

func withInteractiveTerminal(t *testing.T) {
	t.Helper()

	original := canUseTUIOutput
	canUseTUIOutput = func(io.Reader, io.Writer) bool {
		return true
	}
	t.Cleanup(func() { canUseTUIOutput = original })
}

func withWizardStub(t *testing.T) **tui.Session {
	t.Helper()

	var got *tui.Session
	original := runWizard
	runWizard = func(sess *tui.Session, _ *tui.Services, _ string) error {
		got = sess
		return nil
	}
	t.Cleanup(func() { runWizard = original })

	return &got
}

// scriptSurvey answers prompts in order. An error answer is returned from
// the prompt instead of setting the response.
func scriptSurvey(t *testing.T, answers ...interface{}) *[]string {
	t.Helper()

	var asked []string
	original := askSurveyOne
	askSurveyOne = func(prompt survey.Prompt, response interface{}, _ ...survey.AskOpt) error {
		if len(answers) == 0 {
			t.Fatalf("unexpected prompt %T", prompt)
		}
		answer := answers[0]
		answers = answers[1:]
		asked = append(asked, promptMessage(prompt))

		if err, ok := answer.(error); ok {
			return err
		}

		switch r := response.(type) {
		case *string:
			*r = answer.(string)
		case *bool:
			*r = answer.(bool)
		case *[]string:
			*r = answer.([]string)
		default:
			t.Fatalf("unsupported response type %T", response)
		}
		return nil
	}
	t.Cleanup(func() {
		askSurveyOne = original
		if len(answers) > 0 {
			t.Errorf("%d scripted answers left unused", len(answers))
		}
	})

	return &asked
}

func promptMessage(prompt survey.Prompt) string {
	switch p := prompt.(type) {
	case *survey.Select:
		return p.Message
	case *survey.MultiSelect:
		return p.Message
	case *survey.Input:
		return p.Message
	case *survey.Confirm:
		return p.Message
	case *survey.Password:
		return p.Message
	}
	return ""
}
