package features

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/andreagrandi/pipecreate/internal/config"
	"github.com/andreagrandi/pipecreate/internal/pipeline"
	"github.com/andreagrandi/pipecreate/templates"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const embeddedCatalog = "features.yaml"

// Catalog is the ordered set of known template features.
type Catalog struct {
	order    []string
	features map[string]Feature
}

// DefaultDir is where user feature overrides are read from.
func DefaultDir() string {
	return filepath.Join(config.Dir(), "features")
}

// Load reads the bundled catalog and then every *.yaml file in dirs.
//
// If no dirs are given, DefaultDir is used. When multiple files define the
// same feature name, the last loaded definition wins and keeps the position
// of the first one. Missing directories are skipped.
func Load(fs afero.Fs, dirs ...string) (*Catalog, error) {
	if len(dirs) == 0 {
		dirs = []string{DefaultDir()}
	}

	c := &Catalog{features: make(map[string]Feature)}

	data, err := templates.FS.ReadFile(embeddedCatalog)
	if err != nil {
		return nil, fmt.Errorf("read embedded features: %w", err)
	}
	if err := c.merge("embedded/"+embeddedCatalog, data); err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		entries, err := afero.ReadDir(fs, dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}

			return nil, fmt.Errorf("read features directory %q: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
				continue
			}

			filePath := filepath.Join(dir, entry.Name())
			data, err := afero.ReadFile(fs, filePath)
			if err != nil {
				return nil, fmt.Errorf("read features file %q: %w", filePath, err)
			}

			if err := c.merge(filePath, data); err != nil {
				return nil, err
			}
		}
	}

	return c, nil
}

// MustDefault returns the bundled catalog alone. It panics if the embedded
// file is broken, which only a bad build can cause.
func MustDefault() *Catalog {
	c, err := Load(afero.NewMemMapFs(), "/nonexistent")
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) merge(source string, data []byte) error {
	var defs []Feature
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return fmt.Errorf("parse features file %q: %w", source, err)
	}

	for _, f := range defs {
		f = normalize(f)
		if f.Name == "" {
			return fmt.Errorf("validate features file %q: feature name is required", source)
		}

		if _, ok := c.features[f.Name]; !ok {
			c.order = append(c.order, f.Name)
		}
		c.features[f.Name] = f
	}

	return nil
}

func normalize(f Feature) Feature {
	f.Name = strings.TrimSpace(f.Name)
	f.ShortDescription = strings.TrimSpace(f.ShortDescription)
	f.Description = strings.TrimSpace(f.Description)

	paths := make([]string, 0, len(f.Paths))
	for _, p := range f.Paths {
		p = strings.Trim(strings.TrimSpace(filepath.ToSlash(p)), "/")
		if p != "" {
			paths = append(paths, path.Clean(p))
		}
	}
	f.Paths = paths

	return f
}

// All returns every feature in catalog order.
func (c *Catalog) All() []Feature {
	out := make([]Feature, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.features[name])
	}
	return out
}

// Get looks up a feature by name.
func (c *Catalog) Get(name string) (Feature, bool) {
	f, ok := c.features[name]
	return f, ok
}

// ForType returns the features the user can toggle for a pipeline type.
func (c *Catalog) ForType(t pipeline.Type) []Feature {
	var out []Feature
	for _, f := range c.All() {
		if f.AppliesTo(t) {
			out = append(out, f)
		}
	}
	return out
}

// DefaultSkips lists the toggleable features that are off unless selected.
func (c *Catalog) DefaultSkips(t pipeline.Type) []string {
	var out []string
	for _, f := range c.ForType(t) {
		if !f.Default {
			out = append(out, f.Name)
		}
	}
	return out
}

// SkippedPaths resolves the skeleton paths removed by the skipped features.
// Unknown feature names are ignored.
func (c *Catalog) SkippedPaths(skip []string) []string {
	var out []string
	for _, name := range skip {
		if f, ok := c.features[name]; ok {
			out = append(out, f.Paths...)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Excludes reports whether rel (slash separated, relative to the pipeline
// root) lies in one of the skipped paths.
func (c *Catalog) Excludes(rel string, skip []string) bool {
	rel = path.Clean(filepath.ToSlash(rel))
	for _, p := range c.SkippedPaths(skip) {
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	return false
}
