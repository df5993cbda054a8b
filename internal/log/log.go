// Package log wraps the Charm logger used across pipecreate.
//
// The logger is installed once at process start. Everything it writes goes
// to an in-memory Sink (read by the wizard's logging screens) and,
// optionally, to an extra writer such as a log file.
package log

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	cblog "github.com/charmbracelet/log"
)

// Logger embeds the Charm Logger.
type Logger struct{ *cblog.Logger }

var (
	logger     *Logger
	sink       *Sink
	initLogger sync.Once
)

// Options configures the process-wide logger.
type Options struct {
	// Level is parsed with charm log's level names; invalid values mean info.
	Level string
	// Extra receives a copy of every record, e.g. a log file.
	Extra io.Writer
	// SinkSize is the number of lines retained for the TUI.
	SinkSize int
}

// Setup installs the process-wide logger. Only the first call has an effect.
func Setup(opts Options) *Logger {
	initLogger.Do(func() {
		size := opts.SinkSize
		if size <= 0 {
			size = DefaultSinkSize
		}
		sink = NewSink(size)

		var out io.Writer = sink
		if opts.Extra != nil {
			out = io.MultiWriter(sink, opts.Extra)
		}

		logger = &Logger{newCharmLogger(out, opts.Level)}
	})
	return logger
}

// GetLogger returns the process-wide logger, installing a default one
// writing to stderr when Setup was never called.
func GetLogger() *Logger {
	return Setup(Options{Extra: os.Stderr})
}

// GetSink returns the in-memory sink behind the process-wide logger.
func GetSink() *Sink {
	GetLogger()
	return sink
}

// New builds a standalone logger writing to w, used by tests and
// collaborators that should not touch the process-wide sink.
func New(w io.Writer, level string) *Logger {
	return &Logger{newCharmLogger(w, level)}
}

func newCharmLogger(w io.Writer, level string) *cblog.Logger {
	styles := cblog.DefaultStyles()
	styles.Levels[cblog.FatalLevel] = lipgloss.NewStyle().
		SetString(" FATAL").
		Foreground(lipgloss.Color("1"))
	styles.Levels[cblog.ErrorLevel] = lipgloss.NewStyle().
		SetString(" ERROR").
		Foreground(lipgloss.Color("9"))
	styles.Levels[cblog.WarnLevel] = lipgloss.NewStyle().
		SetString("  WARN").
		Foreground(lipgloss.Color("3"))
	styles.Levels[cblog.InfoLevel] = lipgloss.NewStyle().
		SetString("  INFO").
		Foreground(lipgloss.Color("2"))
	styles.Levels[cblog.DebugLevel] = lipgloss.NewStyle().
		SetString(" DEBUG").
		Foreground(lipgloss.Color("4"))

	base := cblog.New(w)
	base.SetStyles(styles)
	base.SetReportTimestamp(false)
	base.SetLevel(parseLevel(level))

	return base
}

func parseLevel(level string) cblog.Level {
	parsed, err := cblog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return cblog.InfoLevel
	}
	return parsed
}

// * Convenience wrappers

func Debug(msg interface{}, keyvals ...interface{}) { GetLogger().Logger.Debug(msg, keyvals...) }
func Debugf(format string, v ...interface{})        { GetLogger().Logger.Debugf(format, v...) }
func Info(msg interface{}, keyvals ...interface{})  { GetLogger().Logger.Info(msg, keyvals...) }
func Infof(format string, v ...interface{})         { GetLogger().Logger.Infof(format, v...) }
func Warn(msg interface{}, keyvals ...interface{})  { GetLogger().Logger.Warn(msg, keyvals...) }
func Warnf(format string, v ...interface{})         { GetLogger().Logger.Warnf(format, v...) }
func Error(msg interface{}, keyvals ...interface{}) { GetLogger().Logger.Error(msg, keyvals...) }
func Errorf(format string, v ...interface{})        { GetLogger().Logger.Errorf(format, v...) }
