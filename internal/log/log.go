// Package log provides structured logging for weekly.
// Entries carry a level, a category and key=value fields. Logging is off
// unless Init is called, which cmd does for --debug or WEEKLY_DEBUG.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string to a Level. Unknown values yield LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "warn", "WARN", "warning":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Category groups related log messages.
type Category string

const (
	CatStorage  Category = "storage"  // Key-value backends and sqlite
	CatLayout   Category = "layout"   // Layout order reads, writes, reconciliation
	CatSettings Category = "settings" // Settings record and brand colours
	CatReport   Category = "report"   // Teams, tasks, achievements, challenges
	CatConfig   Category = "config"   // Configuration loading/saving
	CatWatcher  Category = "watcher"  // File watcher events
	CatCache    Category = "cache"    // cache operations
	CatUI       Category = "ui"       // TUI component updates
	CatTracing  Category = "tracing"  // Span export
)

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
}

var (
	defaultLogger atomic.Pointer[Logger]
	once          sync.Once
)

// Init initializes the global logger writing to path.
// Returns a cleanup function to close the log file.
func Init(path string) (func(), error) {
	var initErr error
	once.Do(func() {
		var l *Logger
		l, initErr = newLogger(path)
		if initErr == nil {
			defaultLogger.Store(l)
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	l := defaultLogger.Load()
	if l == nil {
		return nil, fmt.Errorf("logger initialization failed or already attempted")
	}
	return func() {
		if l.file != nil {
			l.mu.Lock()
			_ = l.file.Close()
			l.writer = nil
			l.mu.Unlock()
		}
	}, nil
}

// InitWriter points the global logger at w. Used by tests and by callers that
// already own a sink.
func InitWriter(w io.Writer) {
	defaultLogger.Store(&Logger{
		writer:   w,
		enabled:  true,
		minLevel: LevelDebug,
	})
}

// Reset disables the global logger.
func Reset() {
	defaultLogger.Store(nil)
}

func newLogger(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: path is user-controlled debug log path
	if err != nil {
		return nil, err
	}

	return &Logger{
		file:     f,
		writer:   f,
		enabled:  true,
		minLevel: LevelDebug,
	}, nil
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := defaultLogger.Load(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

func log(level Level, cat Category, msg string, fields ...any) {
	l := defaultLogger.Load()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	// Format: 2025-12-06T10:45:00 [WARN] [layout] message key=value key2=value2
	timestamp := time.Now().Format("2006-01-02T15:04:05")
	entry := fmt.Sprintf("%s [%s] [%s] %s", timestamp, level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=<missing>", fields[len(fields)-1])
	}
	entry += "\n"

	if l.writer != nil {
		_, _ = l.writer.Write([]byte(entry))
	}
}
