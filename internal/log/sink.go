package log

import (
	"strings"
	"sync"
)

// DefaultSinkSize is the number of log lines kept for display.
const DefaultSinkSize = 500

// Sink is an io.Writer that keeps the most recent log lines in memory.
// It is safe for concurrent use; workers write while the UI reads.
type Sink struct {
	mu      sync.Mutex
	lines   []string
	partial string
	size    int
}

// NewSink creates a sink retaining at most size lines.
func NewSink(size int) *Sink {
	if size <= 0 {
		size = DefaultSinkSize
	}
	return &Sink{size: size}
}

func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := s.partial + string(p)
	parts := strings.Split(text, "\n")

	// The last element is whatever follows the final newline.
	s.partial = parts[len(parts)-1]
	s.lines = append(s.lines, parts[:len(parts)-1]...)

	if over := len(s.lines) - s.size; over > 0 {
		s.lines = append([]string(nil), s.lines[over:]...)
	}

	return len(p), nil
}

// Lines returns a copy of the retained complete lines.
func (s *Sink) Lines() []string {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]string, len(s.lines))
	copy(cp, s.lines)
	return cp
}

// Tail returns at most n of the most recent lines.
func (s *Sink) Tail(n int) []string {
	lines := s.Lines()
	if n >= 0 && len(lines) > n {
		return lines[len(lines)-n:]
	}
	return lines
}

// Len returns the number of retained lines.
func (s *Sink) Len() int {
	if s == nil {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}
