package pipeline

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LoadTemplateFile reads a saved config, decoding YAML or TOML by extension.
// Values left empty in the file keep the defaults from New.
func LoadTemplateFile(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read template file %q: %w", path, err)
	}

	cfg := New()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse template file %q: %w", path, err)
		}
	case ".toml":
		if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse template file %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("template file %q: unsupported extension %q", path, ext)
	}

	if cfg.IsNfcore {
		cfg.ApplyType(TypeTemplate)
	}
	cfg.SetSkipFeatures(cfg.SkipFeatures)

	return cfg, nil
}

// templateDocument is the layout of the project file in generated pipelines.
type templateDocument struct {
	Template *Config `yaml:"template"`
}

// EncodeTemplate renders the config as the template section of a YAML file.
func EncodeTemplate(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(templateDocument{Template: cfg}); err != nil {
		return nil, fmt.Errorf("encode template: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode template: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteTemplateFile saves the config as YAML so it can be passed back with
// --template-file.
func WriteTemplateFile(fs afero.Fs, path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode template file: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write template file %q: %w", path, err)
	}

	return nil
}
