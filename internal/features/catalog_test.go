package features

import (
	"testing"

	"github.com/andreagrandi/pipecreate/internal/pipeline"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(fs []Feature) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}

func TestMustDefault_LoadsBundledCatalog(t *testing.T) {
	c := MustDefault()

	all := c.All()
	require.NotEmpty(t, all)
	assert.Equal(t, "github", all[0].Name)

	for _, f := range all {
		assert.NotEmpty(t, f.ShortDescription, f.Name)
		assert.True(t, f.NfcorePipelines || f.CustomPipelines, f.Name)
	}
}

func TestForType(t *testing.T) {
	c := MustDefault()

	template := names(c.ForType(pipeline.TypeTemplate))
	custom := names(c.ForType(pipeline.TypeCustom))

	assert.Contains(t, template, "igenomes")
	assert.NotContains(t, template, "github")
	assert.Contains(t, custom, "github")
	assert.Empty(t, c.ForType(pipeline.TypeUnset))
}

func TestDefaultSkips(t *testing.T) {
	c := MustDefault()

	assert.Equal(t, []string{"codespaces"}, c.DefaultSkips(pipeline.TypeTemplate))
}

func TestSkippedPaths(t *testing.T) {
	c := MustDefault()

	paths := c.SkippedPaths([]string{"igenomes", "ci", "unknown"})
	assert.Equal(t, []string{".github/workflows/ci.yml", "conf/igenomes.config"}, paths)
	assert.Empty(t, c.SkippedPaths(nil))
}

func TestExcludes(t *testing.T) {
	c := MustDefault()
	skip := []string{"github"}

	assert.True(t, c.Excludes(".github", skip))
	assert.True(t, c.Excludes(".github/workflows/ci.yml", skip))
	assert.False(t, c.Excludes(".githubx", skip))
	assert.False(t, c.Excludes("main.nf", skip))
}

func TestLoad_UserOverridesWin(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `- name: igenomes
  short_description: Reference genomes
  default: false
  nfcore_pipelines: true
  custom_pipelines: false
  paths: ["/conf/igenomes.config/"]
- name: nf_test
  short_description: Add nf-test
  custom_pipelines: true
  paths: [tests]
`
	require.NoError(t, afero.WriteFile(fs, "/features/local.yaml", []byte(content), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/features/ignored.txt", []byte("junk"), 0o644))

	c, err := Load(fs, "/features")
	require.NoError(t, err)

	igenomes, ok := c.Get("igenomes")
	require.True(t, ok)
	assert.Equal(t, "Reference genomes", igenomes.ShortDescription)
	assert.Equal(t, []string{"conf/igenomes.config"}, igenomes.Paths)
	assert.False(t, igenomes.CustomPipelines)

	all := names(c.All())
	assert.Equal(t, "nf_test", all[len(all)-1])
	assert.Less(t, indexOf(all, "igenomes"), indexOf(all, "nf_test"))
}

func TestLoad_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad/a.yaml", []byte("name: [oops"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/noname/a.yaml", []byte("- short_description: x\n"), 0o644))

	_, err := Load(fs, "/bad")
	assert.ErrorContains(t, err, "parse features file")

	_, err = Load(fs, "/noname")
	assert.ErrorContains(t, err, "feature name is required")
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
