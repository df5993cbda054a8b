package scaffold

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/andreagrandi/pipecreate/internal/app"
	"github.com/andreagrandi/pipecreate/internal/features"
	"github.com/andreagrandi/pipecreate/internal/log"
	"github.com/andreagrandi/pipecreate/internal/pipeline"
	git "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(outdir string) *pipeline.Config {
	cfg := pipeline.New()
	cfg.Org = "acme"
	cfg.Name = "rnaseq"
	cfg.Description = "RNA sequencing analysis"
	cfg.Author = "Jane Doe"
	cfg.OutDir = outdir
	return cfg
}

func memEngine(buf *bytes.Buffer) *Engine {
	return &Engine{
		FS:      afero.NewMemMapFs(),
		Catalog: features.MustDefault(),
		Logger:  log.New(buf, "debug"),
		GitInit: true,
		Now:     func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) },
	}
}

func TestCreate_RendersSkeleton(t *testing.T) {
	var logs bytes.Buffer
	e := memEngine(&logs)

	dir, err := e.Create(context.Background(), testConfig("/out"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "acme-rnaseq"), dir)

	for _, rel := range []string{
		"main.nf",
		"nextflow.config",
		"README.md",
		"LICENSE",
		".gitignore",
		".github/workflows/ci.yml",
		"conf/igenomes.config",
		ProjectFile,
	} {
		ok, err := afero.Exists(e.FS, filepath.Join(dir, rel))
		require.NoError(t, err)
		assert.True(t, ok, rel)
	}

	readme, err := afero.ReadFile(e.FS, filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "# acme/rnaseq")
	assert.Contains(t, string(readme), "img.shields.io")
	assert.Contains(t, string(readme), "pipecreate "+app.Version)

	license, err := afero.ReadFile(e.FS, filepath.Join(dir, "LICENSE"))
	require.NoError(t, err)
	assert.Contains(t, string(license), "Copyright (c) 2026 Jane Doe")

	project, err := afero.ReadFile(e.FS, filepath.Join(dir, ProjectFile))
	require.NoError(t, err)
	assert.Contains(t, string(project), "template:")
	assert.Contains(t, string(project), "name: rnaseq")

	assert.Contains(t, logs.String(), "Pipeline created")
	assert.Contains(t, logs.String(), "Skipping git init")
}

func TestCreate_SkipsDeselectedFeatures(t *testing.T) {
	var logs bytes.Buffer
	e := memEngine(&logs)
	cfg := testConfig("/out")
	cfg.SetSkipFeatures([]string{"github", "igenomes", "github_badges", "fastqc"})

	dir, err := e.Create(context.Background(), cfg)
	require.NoError(t, err)

	for _, rel := range []string{".github", ".github/workflows/ci.yml", "conf/igenomes.config", "modules/local/fastqc.nf"} {
		ok, _ := afero.Exists(e.FS, filepath.Join(dir, rel))
		assert.False(t, ok, rel)
	}

	config, err := afero.ReadFile(e.FS, filepath.Join(dir, "nextflow.config"))
	require.NoError(t, err)
	assert.NotContains(t, string(config), "igenomes")

	readme, err := afero.ReadFile(e.FS, filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.NotContains(t, string(readme), "img.shields.io")

	workflow, err := afero.ReadFile(e.FS, filepath.Join(dir, "workflows/pipeline.nf"))
	require.NoError(t, err)
	assert.NotContains(t, string(workflow), "FASTQC")
}

func TestCreate_ExistingDirectory(t *testing.T) {
	var logs bytes.Buffer
	e := memEngine(&logs)
	cfg := testConfig("/out")
	stale := filepath.Join(cfg.PipelineDir(), "stale.txt")
	require.NoError(t, afero.WriteFile(e.FS, stale, []byte("old"), 0o644))

	_, err := e.Create(context.Background(), cfg)
	require.ErrorIs(t, err, ErrPipelineExists)

	cfg.Force = true
	_, err = e.Create(context.Background(), cfg)
	require.NoError(t, err)

	ok, _ := afero.Exists(e.FS, stale)
	assert.False(t, ok)
	assert.Contains(t, logs.String(), "Removing existing pipeline directory")
}

func TestCreate_CancelledContext(t *testing.T) {
	var logs bytes.Buffer
	e := memEngine(&logs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Create(ctx, testConfig("/out"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreate_GitInitOnDisk(t *testing.T) {
	var logs bytes.Buffer
	e := &Engine{
		FS:      afero.NewOsFs(),
		Catalog: features.MustDefault(),
		Logger:  log.New(&logs, "info"),
		GitInit: true,
	}

	dir, err := e.Create(context.Background(), testConfig(t.TempDir()))
	require.NoError(t, err)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)

	master, err := repo.Reference(plumbing.NewBranchReferenceName(DefaultBranch), true)
	require.NoError(t, err)

	for _, branch := range Branches {
		ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
		require.NoError(t, err, branch)
		assert.Equal(t, master.Hash(), ref.Hash(), branch)
	}

	commit, err := repo.CommitObject(master.Hash())
	require.NoError(t, err)
	assert.Equal(t, app.New().CommitMessage(), commit.Message)
	assert.Equal(t, "Jane Doe", commit.Author.Name)
}
