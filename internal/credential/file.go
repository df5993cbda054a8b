package credential

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const (
	credentialsFileName = "credentials"
	fileSourceName      = "file"
)

// FileSource resolves and stores credentials as KEY=value lines in a file.
type FileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource creates a source backed by a credentials file.
//
// A nil fs means the OS filesystem. If path is empty, it defaults to
// ~/.config/pipecreate/credentials.
func NewFileSource(fs afero.Fs, path string) *FileSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		trimmedPath = defaultCredentialsFilePath()
	}

	return &FileSource{fs: fs, path: trimmedPath}
}

func (s *FileSource) Name() string {
	return fileSourceName
}

// Path returns the credentials file location.
func (s *FileSource) Path() string {
	return s.path
}

// Get returns the credential value when present in the file.
func (s *FileSource) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}

	trimmedKey := strings.TrimSpace(key)
	if trimmedKey == "" {
		return "", false
	}

	entries, err := s.readAll()
	if err != nil {
		return "", false
	}

	value, found := entries[trimmedKey]
	return value, found
}

// Store saves or updates a credential in the file.
func (s *FileSource) Store(key string, value string) error {
	if s == nil {
		return errors.New("file source is nil")
	}

	trimmedKey := strings.TrimSpace(key)
	if trimmedKey == "" {
		return errors.New("credential key is required")
	}

	entries, err := s.readAll()
	if err != nil {
		return err
	}

	entries[trimmedKey] = strings.TrimSpace(value)

	return s.writeAll(entries)
}

func (s *FileSource) readAll() (map[string]string, error) {
	entries := map[string]string{}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entries, nil
		}

		return nil, fmt.Errorf("read credentials file %q: %w", s.path, err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, rawValue, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(key) == "" {
			continue
		}

		entries[strings.TrimSpace(key)] = strings.TrimSpace(rawValue)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan credentials file %q: %w", s.path, err)
	}

	return entries, nil
}

func (s *FileSource) writeAll(entries map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create credentials directory %q: %w", dir, err)
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, key := range keys {
		fmt.Fprintf(&buf, "%s=%s\n", key, entries[key])
	}

	if err := afero.WriteFile(s.fs, s.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write credentials file %q: %w", s.path, err)
	}

	// WriteFile keeps the mode of an existing file.
	if err := s.fs.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("set credentials file permissions on %q: %w", s.path, err)
	}

	return nil
}

func defaultCredentialsFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "pipecreate", credentialsFileName)
	}

	return filepath.Join(homeDir, ".config", "pipecreate", credentialsFileName)
}
