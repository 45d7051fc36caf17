// Package logger provides structured JSON logging for the event pipeline,
// plus a thread-safe counter tracker whose snapshot feeds the run summary.
//
// Example usage:
//
//	logger.Info("source loaded", logger.Fields{
//	    "file":  "sandpoint-online.json",
//	    "count": 42,
//	})
//
//	logger.Error("writing outputs", logger.Fields{"dir": outDir}, err)
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger writes structured JSON log entries
type Logger struct {
	minLevel Level
	output   io.Writer
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

var defaultLogger = New(LevelInfo, os.Stderr)

// New creates a logger with the given minimum level. Messages below the
// minimum are discarded.
func New(level Level, output io.Writer) *Logger {
	return &Logger{minLevel: level, output: output}
}

// SetDefault sets the package-level logger used by the convenience functions.
func SetDefault(l *Logger) {
	defaultLogger = l
}

// SetLevel changes the default logger's minimum level.
func SetLevel(level Level) {
	defaultLogger.minLevel = level
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if levelRank[level] < levelRank[l.minLevel] {
		return
	}
	entry := logEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		// Fall back to plain text rather than dropping the entry.
		fmt.Fprintf(l.output, "[%s] %s: %s (marshal error: %v)\n",
			entry.Timestamp, entry.Level, entry.Message, marshalErr)
		return
	}
	fmt.Fprintln(l.output, string(data))
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(message string, fields Fields) { l.log(LevelDebug, message, fields, nil) }

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(message string, fields Fields) { l.log(LevelInfo, message, fields, nil) }

// Warn logs a warning with optional structured fields.
func (l *Logger) Warn(message string, fields Fields) { l.log(LevelWarn, message, fields, nil) }

// Error logs an error message with optional structured fields and an error.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Package-level convenience functions using the default logger

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) { defaultLogger.Debug(message, fields) }

// Info logs an info message with the default logger
func Info(message string, fields Fields) { defaultLogger.Info(message, fields) }

// Warn logs a warning with the default logger
func Warn(message string, fields Fields) { defaultLogger.Warn(message, fields) }

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) { defaultLogger.Error(message, fields, err) }

// Counters tracks run statistics (events loaded, duplicates removed, records
// flagged). Thread-safe, though the pipeline itself is single-threaded.
type Counters struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewCounters creates an empty counter tracker.
func NewCounters() *Counters {
	return &Counters{counts: make(map[string]int64)}
}

// Incr increments a counter by 1.
func (c *Counters) Incr(name string) {
	c.Add(name, 1)
}

// Add increments a counter by n.
func (c *Counters) Add(name string, n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[name] += n
}

// Snapshot returns a copy of all counters.
func (c *Counters) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
