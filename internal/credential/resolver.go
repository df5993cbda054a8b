package credential

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotSupported is returned by sources that do not support persisting values.
var ErrNotSupported = errors.New("store operation not supported")

// GitHubTokenKeys lists the keys checked for a GitHub token, in order.
var GitHubTokenKeys = []string{"GITHUB_AUTH_TOKEN", "GITHUB_TOKEN", "GH_TOKEN"}

// Source defines a credential source.
type Source interface {
	Name() string
	Get(key string) (string, bool)
	Store(key string, value string) error
}

// Resolver resolves credentials by checking sources in order.
type Resolver struct {
	sources []Source
}

// NewResolver creates a resolver with a fixed source order.
func NewResolver(sources ...Source) *Resolver {
	resolverSources := make([]Source, len(sources))
	copy(resolverSources, sources)

	return &Resolver{sources: resolverSources}
}

// NewDefaultResolver checks the environment first, then the credentials file.
func NewDefaultResolver(credentialsPath string) *Resolver {
	return NewResolver(NewEnvSource(), NewFileSource(nil, credentialsPath))
}

// Resolve tries each source in order.
//
// It returns the value, source name, and whether a value was found.
func (r *Resolver) Resolve(key string) (value string, source string, found bool) {
	if r == nil {
		return "", "", false
	}

	trimmedKey := strings.TrimSpace(key)
	if trimmedKey == "" {
		return "", "", false
	}

	for _, src := range r.sources {
		if src == nil {
			continue
		}

		resolvedValue, ok := src.Get(trimmedKey)
		if !ok || strings.TrimSpace(resolvedValue) == "" {
			continue
		}

		return resolvedValue, src.Name(), true
	}

	return "", "", false
}

// ResolveAny returns the first key that resolves in any source.
func (r *Resolver) ResolveAny(keys ...string) (value string, source string, found bool) {
	for _, key := range keys {
		if value, source, found = r.Resolve(key); found {
			return value, source, true
		}
	}

	return "", "", false
}

// GitHubToken resolves a GitHub token from the well-known keys.
func (r *Resolver) GitHubToken() (token string, source string, found bool) {
	return r.ResolveAny(GitHubTokenKeys...)
}

// Store persists a value in the first source that supports writing.
func (r *Resolver) Store(key string, value string) error {
	if r == nil {
		return errors.New("resolver is nil")
	}

	for _, src := range r.sources {
		if src == nil {
			continue
		}

		err := src.Store(key, value)
		if errors.Is(err, ErrNotSupported) {
			continue
		}
		if err != nil {
			return fmt.Errorf("store %s in %s: %w", key, src.Name(), err)
		}

		return nil
	}

	return ErrNotSupported
}
