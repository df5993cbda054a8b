package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andreagrandi/pipecreate/internal/app"
	"github.com/andreagrandi/pipecreate/internal/config"
	"github.com/andreagrandi/pipecreate/internal/credential"
	"github.com/andreagrandi/pipecreate/internal/features"
	"github.com/andreagrandi/pipecreate/internal/github"
	"github.com/andreagrandi/pipecreate/internal/log"
	"github.com/andreagrandi/pipecreate/internal/pipeline"
	"github.com/andreagrandi/pipecreate/internal/scaffold"
	"github.com/andreagrandi/pipecreate/internal/tui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// createOptions are the flags of the root command.
type createOptions struct {
	name         string
	description  string
	author       string
	org          string
	version      string
	outdir       string
	force        bool
	templateFile string
	logFile      string
	logLevel     string
}

var opts createOptions

var rootCmd = &cobra.Command{
	Use:   "pipecreate",
	Short: "Create a new Nextflow pipeline from the pipeline template",
	Long: `pipecreate creates a new Nextflow pipeline from the pipeline template.

Run it without flags in a terminal to start the interactive wizard. Pass
--name, --description and --author (or a --template-file providing them)
to create the pipeline without prompts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCreate(cmd, opts)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.name, "name", "n", "", "name of the pipeline")
	flags.StringVarP(&opts.description, "description", "d", "", "short description of the pipeline")
	flags.StringVarP(&opts.author, "author", "a", "", "name of the main author(s)")
	flags.StringVar(&opts.org, "org", "", "GitHub organisation (default "+pipeline.TemplateOrg+")")
	flags.StringVar(&opts.version, "version", "", "initial pipeline version (default "+pipeline.DefaultVersion+")")
	flags.StringVarP(&opts.outdir, "outdir", "o", "", "directory the pipeline is created in")
	flags.BoolVarP(&opts.force, "force", "f", false, "overwrite an existing pipeline directory")
	flags.StringVarP(&opts.templateFile, "template-file", "t", "", "YAML or TOML file with the template answers")
	flags.StringVar(&opts.logFile, "log-file", "", "also write the log to this file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the pipecreate version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.New().GetFullVersion())
		},
	})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var (
	newOsFs         = afero.NewOsFs
	runWizard       = tui.Run
	canUseTUIOutput = canUseInteractiveUI
)

func runCreate(cmd *cobra.Command, o createOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := strings.TrimSpace(o.logLevel)
	if level == "" {
		level = cfg.LogLevel()
	}

	interactive := canUseTUIOutput(cmd.InOrStdin(), cmd.OutOrStdout())

	base, err := baseConfig(o, cfg.Defaults())
	if err != nil {
		return err
	}
	prompted := needsWizard(o, base)

	var logFile io.Writer
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file %q: %w", o.logFile, err)
		}
		defer f.Close()
		logFile = f
	}

	logger := log.Setup(log.Options{
		Level: level,
		Extra: logDestination(cmd.ErrOrStderr(), logFile, interactive && prompted),
	})
	sink := log.GetSink()

	catalog, err := features.Load(newOsFs(), features.DefaultDir())
	if err != nil {
		return fmt.Errorf("load features: %w", err)
	}

	svc := newServices(cfg, catalog, logger)

	if !prompted {
		return createNonInteractive(cmd, base, catalog, svc, logger)
	}

	if !interactive {
		return errors.New("--name, --description and --author are required when not running in a terminal")
	}

	if cfg.IsFeatureEnabled("tui") {
		sess := tui.NewSession(cmd.Context(), cfg.Defaults(), logger, sink)
		// flags and the template file prefill the wizard
		sess.Config = base.cfg
		return runWizard(sess, svc, app.Version)
	}

	return runSurveyWizard(cmd, base.cfg, catalog, svc, cfg.Defaults().GitHubUsername)
}

// newServices wires the scaffolding engine, the GitHub service and the
// credential store for the wizard.
func newServices(cfg *config.Config, catalog *features.Catalog, logger *log.Logger) *tui.Services {
	engine := scaffold.NewEngine(catalog, cfg.IsFeatureEnabled("git-init"))
	engine.Logger = logger

	repos := github.NewService()
	repos.Logger = logger

	return &tui.Services{
		Scaffold:         engine.Create,
		CreateRepo:       repos.Create,
		Catalog:          catalog,
		Credentials:      credential.NewDefaultResolver(""),
		RememberUsername: cfg.SetGitHubUsername,
	}
}

func needsPrompts(o createOptions) bool {
	return o.name == "" || o.description == "" || o.author == ""
}

// needsWizard reports whether answers are still missing after the flags and
// the template file.
func needsWizard(o createOptions, base startConfig) bool {
	return needsPrompts(o) && !base.hasBasics()
}

// logDestination picks where log lines go besides the in-memory sink. A
// running wizard owns the terminal, so stderr only gets them otherwise.
func logDestination(stderr, file io.Writer, wizard bool) io.Writer {
	switch {
	case wizard:
		return file
	case file != nil:
		return io.MultiWriter(stderr, file)
	default:
		return stderr
	}
}

type startConfig struct {
	cfg      *pipeline.Config
	fromFile bool
}

// hasBasics reports whether a template file supplied everything needed to
// skip the prompts.
func (s startConfig) hasBasics() bool {
	return s.fromFile && s.cfg.Name != "" && s.cfg.Description != "" && s.cfg.Author != ""
}

// baseConfig merges user defaults, the template file and flags, in that
// order.
func baseConfig(o createOptions, defaults config.Defaults) (startConfig, error) {
	cfg := pipeline.New()
	cfg.Author = defaults.Author
	cfg.Org = defaults.Org
	if defaults.OutDir != "" {
		cfg.OutDir = defaults.OutDir
	}

	fromFile := false
	if o.templateFile != "" {
		loaded, err := pipeline.LoadTemplateFile(newOsFs(), o.templateFile)
		if err != nil {
			return startConfig{}, err
		}
		cfg = loaded
		fromFile = true
	}

	setIf := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	setIf(&cfg.Name, o.name)
	setIf(&cfg.Description, o.description)
	setIf(&cfg.Author, o.author)
	setIf(&cfg.Org, o.org)
	setIf(&cfg.Version, o.version)
	setIf(&cfg.OutDir, o.outdir)
	if o.force {
		cfg.Force = true
	}

	return startConfig{cfg: cfg, fromFile: fromFile}, nil
}

func createNonInteractive(cmd *cobra.Command, base startConfig, catalog *features.Catalog, svc *tui.Services, logger *log.Logger) error {
	cfg := base.cfg
	if cfg.Org == "" {
		cfg.Org = pipeline.TemplateOrg
	}

	typ := pipeline.TypeCustom
	if cfg.Org == pipeline.TemplateOrg {
		typ = pipeline.TypeTemplate
	}
	cfg.ApplyType(typ)

	// A template file lists exactly what to skip.
	if !base.fromFile {
		cfg.SetSkipFeatures(catalog.DefaultSkips(typ))
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid pipeline settings: %w", err)
	}

	logger.Info("Creating pipeline", "name", cfg.FullName(), "type", typ.Label())

	dir, err := svc.Scaffold(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pipeline %s created in %s\n", cfg.FullName(), dir)
	return nil
}
