// Package scaffold writes a new pipeline from the embedded skeleton.
package scaffold

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/andreagrandi/pipecreate/internal/app"
	"github.com/andreagrandi/pipecreate/internal/features"
	"github.com/andreagrandi/pipecreate/internal/log"
	"github.com/andreagrandi/pipecreate/internal/pipeline"
	"github.com/andreagrandi/pipecreate/templates"
	"github.com/spf13/afero"
)

// ProjectFile records the template answers inside the created pipeline.
const ProjectFile = ".nf-core.yml"

// ErrPipelineExists is returned when the output directory is taken and
// Force is not set.
var ErrPipelineExists = errors.New("pipeline directory already exists")

// Engine renders the skeleton onto a filesystem.
type Engine struct {
	FS      afero.Fs
	Catalog *features.Catalog
	Logger  *log.Logger
	// GitInit creates the initial commit and branches. It only applies to
	// the OS filesystem.
	GitInit bool
	Now     func() time.Time
}

// NewEngine returns an engine writing to disk with the bundled catalog.
func NewEngine(catalog *features.Catalog, gitInit bool) *Engine {
	return &Engine{
		FS:      afero.NewOsFs(),
		Catalog: catalog,
		Logger:  log.GetLogger(),
		GitInit: gitInit,
		Now:     time.Now,
	}
}

type templateData struct {
	*pipeline.Config
	ToolVersion string
	Year        int
}

// Create writes the pipeline described by cfg and returns its directory.
func (e *Engine) Create(ctx context.Context, cfg *pipeline.Config) (string, error) {
	logger := e.logger()
	catalog := e.Catalog
	if catalog == nil {
		catalog = features.MustDefault()
	}

	dir := cfg.PipelineDir()
	if err := e.prepareDir(dir, cfg.Force); err != nil {
		return "", err
	}

	logger.Info("Creating new pipeline", "name", cfg.FullName(), "dir", dir)

	data := templateData{Config: cfg, ToolVersion: app.Version, Year: e.now().Year()}
	root := templates.SkeletonRoot

	err := iofs.WalkDir(templates.FS, root, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimSuffix(strings.TrimPrefix(p, root+"/"), ".tmpl")
		if catalog.Excludes(rel, cfg.SkipFeatures) {
			logger.Debug("Skipping file", "path", rel)
			return nil
		}

		return e.renderFile(dir, rel, p, data)
	})
	if err != nil {
		return "", fmt.Errorf("render pipeline skeleton: %w", err)
	}

	doc, err := pipeline.EncodeTemplate(cfg)
	if err != nil {
		return "", err
	}
	if err := afero.WriteFile(e.FS, filepath.Join(dir, ProjectFile), doc, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", ProjectFile, err)
	}

	if e.GitInit {
		if _, ok := e.FS.(*afero.OsFs); ok {
			if err := initRepo(dir, cfg, e.now()); err != nil {
				return "", err
			}
			logger.Info("Initialised git repository", "branches", strings.Join(Branches, ", "))
		} else {
			logger.Debug("Skipping git init on a non-OS filesystem")
		}
	}

	logger.Info("Pipeline created", "dir", dir)

	return dir, nil
}

func (e *Engine) prepareDir(dir string, force bool) error {
	exists, err := afero.Exists(e.FS, dir)
	if err != nil {
		return fmt.Errorf("check pipeline directory %q: %w", dir, err)
	}

	if exists {
		if !force {
			return fmt.Errorf("%w: %s (use force to overwrite)", ErrPipelineExists, dir)
		}

		e.logger().Warn("Removing existing pipeline directory", "dir", dir)
		if err := e.FS.RemoveAll(dir); err != nil {
			return fmt.Errorf("remove pipeline directory %q: %w", dir, err)
		}
	}

	if err := e.FS.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create pipeline directory %q: %w", dir, err)
	}

	return nil
}

func (e *Engine) renderFile(dir, rel, src string, data templateData) error {
	raw, err := templates.FS.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %q: %w", src, err)
	}

	tmpl, err := template.New(path.Base(src)).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parse %q: %w", src, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %q: %w", rel, err)
	}

	target := filepath.Join(dir, filepath.FromSlash(rel))
	if err := e.FS.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory for %q: %w", rel, err)
	}
	if err := afero.WriteFile(e.FS, target, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %q: %w", rel, err)
	}

	e.logger().Debug("Wrote file", "path", rel)
	return nil
}

func (e *Engine) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.GetLogger()
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
