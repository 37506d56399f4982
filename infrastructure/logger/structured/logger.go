// ABOUTME: Logger implementation backed by logrus
// ABOUTME: Provides structured, levelled logging with optional rotating file output

package structured

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	// Level is one of debug, info, warn, error
	Level string

	// Format is json or text
	Format string

	// File enables rotating file output in addition to stdout
	File string

	// MaxSizeMB is the rotation size of the log file
	MaxSizeMB int
}

// Logger implements the Logger interface using logrus
type Logger struct {
	entry *logrus.Entry
}

// New creates a logger writing to stdout and, when configured, a rotated file
func New(opts Options) *Logger {
	log := logrus.New()

	var out io.Writer = os.Stdout
	if opts.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	}
	log.SetOutput(out)

	if opts.Format == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return &Logger{entry: logrus.NewEntry(log)}
}

// NewWithLogger wraps an existing logrus logger
func NewWithLogger(log *logrus.Logger) *Logger {
	return &Logger{entry: logrus.NewEntry(log)}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.withFields(fields).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.withFields(fields).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.withFields(fields).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.withFields(fields).Error(msg)
}

func (l *Logger) withFields(fields map[string]interface{}) *logrus.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	return l.entry.WithFields(logrus.Fields(fields))
}
