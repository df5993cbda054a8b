package credential

import (
	"os"
	"strings"
)

// EnvSource resolves credentials from process environment variables.
type EnvSource struct {
	lookupEnv func(string) (string, bool)
}

// NewEnvSource creates a source backed by environment variables.
func NewEnvSource() EnvSource {
	return EnvSource{lookupEnv: os.LookupEnv}
}

func (s EnvSource) Name() string {
	return "environment"
}

// Get returns the environment variable value when present.
func (s EnvSource) Get(key string) (string, bool) {
	trimmedKey := strings.TrimSpace(key)
	if trimmedKey == "" {
		return "", false
	}

	lookup := s.lookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	return lookup(trimmedKey)
}

// Store is not supported for environment variables.
func (s EnvSource) Store(_ string, _ string) error {
	return ErrNotSupported
}
