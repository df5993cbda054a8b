package pipeline

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadTemplateFile_YAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `name: rnaseq
description: RNA analysis
author: Jane
org: acme
skip_features:
  - igenomes
  - ci
`
	require.NoError(t, afero.WriteFile(fs, "/tmp/template.yml", []byte(content), 0o644))

	cfg, err := LoadTemplateFile(fs, "/tmp/template.yml")
	require.NoError(t, err)

	assert.Equal(t, "rnaseq", cfg.Name)
	assert.Equal(t, "acme", cfg.Org)
	assert.Equal(t, DefaultVersion, cfg.Version)
	assert.Equal(t, []string{"ci", "igenomes"}, cfg.SkipFeatures)
}

func TestLoadTemplateFile_TOML(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `name = "rnaseq"
description = "RNA analysis"
author = "Jane"
org = "someone"
is_nfcore = true
version = "2.1.0"
`
	require.NoError(t, afero.WriteFile(fs, "/tmp/template.toml", []byte(content), 0o644))

	cfg, err := LoadTemplateFile(fs, "/tmp/template.toml")
	require.NoError(t, err)

	assert.Equal(t, "2.1.0", cfg.Version)
	assert.True(t, cfg.IsNfcore)
	assert.Equal(t, TemplateOrg, cfg.Org)
}

func TestLoadTemplateFile_TOMLRejectsUnknownKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/t.toml", []byte("colour = \"blue\"\n"), 0o644))

	_, err := LoadTemplateFile(fs, "/t.toml")
	assert.Error(t, err)
}

func TestLoadTemplateFile_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/t.json", []byte("{}"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("name: [unclosed"), 0o644))

	_, err := LoadTemplateFile(fs, "/missing.yml")
	assert.ErrorContains(t, err, "read template file")

	_, err = LoadTemplateFile(fs, "/t.json")
	assert.ErrorContains(t, err, "unsupported extension")

	_, err = LoadTemplateFile(fs, "/bad.yaml")
	assert.ErrorContains(t, err, "parse template file")
}

func TestWriteTemplateFile_ReadBack(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := New()
	cfg.Org = "acme"
	cfg.Name = "rnaseq"
	cfg.Description = "RNA analysis"
	cfg.Author = "Jane"
	cfg.SetSkipFeatures([]string{"ci"})

	require.NoError(t, WriteTemplateFile(fs, "/out.yaml", cfg))

	loaded, err := LoadTemplateFile(fs, "/out.yaml")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEncodeTemplate_NestsUnderTemplateKey(t *testing.T) {
	cfg := New()
	cfg.Name = "rnaseq"

	data, err := EncodeTemplate(cfg)
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "rnaseq", doc["template"]["name"])
}
