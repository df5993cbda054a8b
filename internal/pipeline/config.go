package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"
)

// DefaultVersion is the version given to a freshly created pipeline.
const DefaultVersion = "1.0.0dev"

// Config accumulates the answers collected by the wizard. It is handed to
// the scaffolding engine once the user finishes.
type Config struct {
	Org          string   `yaml:"org" toml:"org"`
	Name         string   `yaml:"name" toml:"name"`
	Description  string   `yaml:"description" toml:"description"`
	Author       string   `yaml:"author" toml:"author"`
	Version      string   `yaml:"version" toml:"version"`
	Force        bool     `yaml:"force" toml:"force"`
	OutDir       string   `yaml:"outdir" toml:"outdir"`
	SkipFeatures []string `yaml:"skip_features,omitempty" toml:"skip_features,omitempty"`
	IsNfcore     bool     `yaml:"is_nfcore" toml:"is_nfcore"`
}

// New returns an empty config with the default version and the current
// directory as output.
func New() *Config {
	return &Config{Version: DefaultVersion, OutDir: "."}
}

// ApplyType records the pipeline type on the config. Template-based
// pipelines always belong to TemplateOrg.
func (c *Config) ApplyType(t Type) {
	c.IsNfcore = t == TypeTemplate
	if c.IsNfcore {
		c.Org = TemplateOrg
	}
}

// FullName is org/name.
func (c *Config) FullName() string {
	return c.Org + "/" + c.Name
}

// DirName is the directory name of the created pipeline.
func (c *Config) DirName() string {
	return c.Org + "-" + c.Name
}

// PipelineDir is where the pipeline is written.
func (c *Config) PipelineDir() string {
	outdir := c.OutDir
	if strings.TrimSpace(outdir) == "" {
		outdir = "."
	}
	return filepath.Join(outdir, c.DirName())
}

// Skips reports whether a template feature was deselected.
func (c *Config) Skips(feature string) bool {
	return slices.Contains(c.SkipFeatures, feature)
}

// SetSkipFeatures replaces the skipped features, sorted and deduplicated.
func (c *Config) SetSkipFeatures(features []string) {
	cp := make([]string, 0, len(features))
	for _, f := range features {
		if f = strings.TrimSpace(f); f != "" {
			cp = append(cp, f)
		}
	}
	sort.Strings(cp)
	c.SkipFeatures = slices.Compact(cp)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.SkipFeatures = slices.Clone(c.SkipFeatures)
	return &cp
}

var (
	nameRe    = regexp.MustCompile(`^[a-z]+$`)
	versionRe = regexp.MustCompile(`^([0-9]+)(\.?([0-9]+))*(dev)?$`)
)

// FieldError is a validation failure for one config field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// FieldErrors collects validation failures in field order.
type FieldErrors []*FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// For returns the message for a field, or "".
func (e FieldErrors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// ValidateField checks a single field value.
func ValidateField(field, value string) error {
	value = strings.TrimSpace(value)

	switch field {
	case "name":
		if value == "" {
			return &FieldError{field, "cannot be left empty"}
		}
		if !nameRe.MatchString(value) {
			return &FieldError{field, "must be lowercase without punctuation"}
		}
	case "org", "description", "author":
		if value == "" {
			return &FieldError{field, "cannot be left empty"}
		}
	case "version":
		if !versionRe.MatchString(value) {
			return &FieldError{field, "must be a number, followed by an optional dev suffix, eg. 1.0.0dev"}
		}
	case "outdir":
		info, err := os.Stat(value)
		if err != nil || !info.IsDir() {
			return &FieldError{field, "must be a valid path to an existing directory"}
		}
	default:
		return fmt.Errorf("unknown field %q", field)
	}

	return nil
}

// ValidateBasic checks the fields collected on the basic details screen.
func (c *Config) ValidateBasic() error {
	return c.validate("org", "name", "description", "author")
}

// ValidateFinal checks the fields collected on the final details screen.
func (c *Config) ValidateFinal() error {
	return c.validate("version", "outdir")
}

// Validate checks every field.
func (c *Config) Validate() error {
	return c.validate("org", "name", "description", "author", "version", "outdir")
}

func (c *Config) validate(fields ...string) error {
	values := map[string]string{
		"org":         c.Org,
		"name":        c.Name,
		"description": c.Description,
		"author":      c.Author,
		"version":     c.Version,
		"outdir":      c.OutDir,
	}

	var errs FieldErrors
	for _, field := range fields {
		err := ValidateField(field, values[field])
		var fe *FieldError
		if errors.As(err, &fe) {
			errs = append(errs, fe)
		} else if err != nil {
			return err
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
