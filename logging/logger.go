// Package logging provides structured JSON logging with levels and categories, backed by
// zap. The same logger runs in the page server and, with a console sink, in the browser.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the severity of a log entry.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel accepts the level names case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", s)
	}
}

func (l Level) zap() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Entry is the decoded shape of one log line.
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Site      string         `json:"site,omitempty"`
	Category  string         `json:"category"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Duration  *int64         `json:"duration_ms,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Logger writes categorised JSON entries to every configured writer.
type Logger struct {
	mu          sync.RWMutex
	base        *zap.Logger
	minLevel    Level
	site        string
	subscribers []chan<- Entry
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
}

// New creates a Logger for site. With no writers it logs to stdout.
func New(site string, minLevel Level, writers ...io.Writer) *Logger {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stdout}
	}
	sinks := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, w := range writers {
		sinks = append(sinks, zapcore.AddSync(w))
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.NewMultiWriteSyncer(sinks...),
		minLevel.zap(),
	)
	base := zap.New(core)
	if site != "" {
		base = base.With(zap.String("site", site))
	}
	return &Logger{base: base, minLevel: minLevel, site: site}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{base: zap.NewNop(), minLevel: ERROR + 1}
}

// Sync flushes buffered output.
func (l *Logger) Sync() error {
	return l.base.Sync()
}

// Subscribe adds a channel to receive log entries in real-time. Slow subscribers miss
// entries rather than block the writer.
func (l *Logger) Subscribe(ch chan<- Entry) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers = append(l.subscribers, ch)

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, sub := range l.subscribers {
			if sub == ch {
				l.subscribers = append(l.subscribers[:i], l.subscribers[i+1:]...)
				break
			}
		}
	}
}

// Log writes a log entry at the specified level.
func (l *Logger) Log(level Level, category, message string, fields map[string]any) {
	l.write(Entry{Level: level.String(), Category: category, Message: message, Fields: fields}, level)
}

// Debug logs a debug message.
func (l *Logger) Debug(category, message string, fields map[string]any) {
	l.Log(DEBUG, category, message, fields)
}

// Info logs an info message.
func (l *Logger) Info(category, message string, fields map[string]any) {
	l.Log(INFO, category, message, fields)
}

// Warn logs a warning message.
func (l *Logger) Warn(category, message string, fields map[string]any) {
	l.Log(WARN, category, message, fields)
}

// Error logs an error message.
func (l *Logger) Error(category, message string, err error, fields map[string]any) {
	entry := Entry{Level: ERROR.String(), Category: category, Message: message, Fields: fields}
	if err != nil {
		entry.Error = err.Error()
	}
	l.write(entry, ERROR)
}

func (l *Logger) write(entry Entry, level Level) {
	if level < l.minLevel {
		return
	}
	entry.Timestamp = time.Now().UTC()
	entry.Site = l.site

	zfields := make([]zap.Field, 0, 5)
	zfields = append(zfields, zap.String("category", entry.Category))
	if len(entry.Fields) > 0 {
		zfields = append(zfields, zap.Any("fields", entry.Fields))
	}
	if entry.RequestID != "" {
		zfields = append(zfields, zap.String("request_id", entry.RequestID))
	}
	if entry.Duration != nil {
		zfields = append(zfields, zap.Int64("duration_ms", *entry.Duration))
	}
	if entry.Error != "" {
		zfields = append(zfields, zap.String("error", entry.Error))
	}
	if ce := l.base.Check(level.zap(), entry.Message); ce != nil {
		ce.Write(zfields...)
	}

	l.mu.RLock()
	subs := make([]chan<- Entry, len(l.subscribers))
	copy(subs, l.subscribers)
	l.mu.RUnlock()
	for _, ch := range subs {
		select {
		case ch <- entry:
		default:
		}
	}
}

// LogContext carries a request ID, category and fields across several log calls.
type LogContext struct {
	logger    *Logger
	requestID string
	category  string
	fields    map[string]any
	duration  *int64
}

// WithRequestID creates a logging context with a request ID.
func (l *Logger) WithRequestID(requestID string) *LogContext {
	return &LogContext{
		logger:    l,
		requestID: requestID,
		fields:    make(map[string]any),
	}
}

// WithCategory sets the category for this context.
func (c *LogContext) WithCategory(category string) *LogContext {
	c.category = category
	return c
}

// WithField adds a field to this context.
func (c *LogContext) WithField(key string, value any) *LogContext {
	if c.fields == nil {
		c.fields = make(map[string]any)
	}
	c.fields[key] = value
	return c
}

// WithDuration records how long the logged operation took.
func (c *LogContext) WithDuration(d time.Duration) *LogContext {
	ms := d.Milliseconds()
	c.duration = &ms
	return c
}

func (c *LogContext) entry(level Level, message string) Entry {
	return Entry{
		Level:     level.String(),
		Category:  c.category,
		Message:   message,
		Fields:    c.fields,
		RequestID: c.requestID,
		Duration:  c.duration,
	}
}

// Log writes message at level with the context's request ID and fields.
func (c *LogContext) Log(level Level, message string) {
	c.logger.write(c.entry(level, message), level)
}

// Error logs an error message with the context's request ID and fields.
func (c *LogContext) Error(message string, err error) {
	entry := c.entry(ERROR, message)
	if err != nil {
		entry.Error = err.Error()
	}
	c.logger.write(entry, ERROR)
}
