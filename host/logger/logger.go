package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/myply/myply-go/host"
)

// Logger wraps slog.Logger to satisfy host.Logger.
type Logger struct {
	logger  *slog.Logger
	logFile *os.File // Keep reference to close on shutdown
}

// New creates a Logger writing to stderr and, when logDir is set, to a daily
// file inside it. Stdout is left to command output.
func New(level, format string, addSource bool, logDir string) (*Logger, error) {
	var output io.Writer = os.Stderr
	var logFile *os.File
	if dir := strings.TrimSpace(logDir); dir != "" {
		file, err := openLogFile(dir)
		if err != nil {
			return nil, err
		}
		logFile = file
		output = io.MultiWriter(os.Stderr, file)
	}

	l := NewWithWriter(output, level, format, addSource)
	l.logFile = logFile
	return l, nil
}

// NewWithWriter creates a Logger writing to w only.
func NewWithWriter(w io.Writer, level, format string, addSource bool) *Logger {
	options := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: addSource,
	}

	var handler slog.Handler
	if strings.ToLower(strings.TrimSpace(format)) == "json" {
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}

	return &Logger{logger: slog.New(handler)}
}

// With returns a child logger with additional fields.
func (l *Logger) With(args ...any) host.Logger {
	return &Logger{logger: l.logger.With(args...)}
}

func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// Slog returns the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	fileName := time.Now().Local().Format("2006-01-02") + ".log"
	return os.OpenFile(filepath.Join(dir, fileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
}

// Close closes the log file handle.
func (l *Logger) Close() error {
	if l == nil || l.logFile == nil {
		return nil
	}
	return l.logFile.Close()
}
