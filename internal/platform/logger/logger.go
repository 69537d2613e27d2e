// Package logger wraps zerolog with optional rotating file output.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

// Logger is the structured logger handed to components that take one explicitly.
type Logger interface {
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
}

type loggerImpl struct {
	zl zerolog.Logger
}

// New creates a logger writing JSON lines to every writer.
func New(writers ...io.Writer) Logger {
	multi := io.MultiWriter(writers...)
	zl := zerolog.New(multi).With().Timestamp().Logger()
	return &loggerImpl{zl: zl}
}

func (l *loggerImpl) Info(msg string, fields ...interface{}) {
	logWithFields(l.zl.Info(), msg, fields...)
}
func (l *loggerImpl) Warn(msg string, fields ...interface{}) {
	logWithFields(l.zl.Warn(), msg, fields...)
}
func (l *loggerImpl) Error(msg string, fields ...interface{}) {
	logWithFields(l.zl.Error(), msg, fields...)
}
func (l *loggerImpl) Debug(msg string, fields ...interface{}) {
	logWithFields(l.zl.Debug(), msg, fields...)
}

var (
	global     zerolog.Logger
	globalOnce sync.Once
)

// Config controls the process-wide logger.
type Config struct {
	Level      string
	Console    bool
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Console:    true,
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 30,
		Compress:   true,
	}
}

// InitLogger sets up the global logger. Only the first call has an effect.
// Until it is called, package-level logging is discarded.
func InitLogger(cfg Config) {
	globalOnce.Do(func() {
		var writers []io.Writer

		if cfg.Console {
			writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
		}
		if cfg.FilePath != "" {
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAgeDays,
				Compress:   cfg.Compress,
			})
		}
		if len(writers) == 0 {
			writers = append(writers, os.Stderr)
		}

		zerolog.TimeFieldFormat = time.RFC3339
		global = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger().Level(ParseLevel(cfg.Level))
	})
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func Info(msg string, fields ...interface{})  { logWithFields(global.Info(), msg, fields...) }
func Warn(msg string, fields ...interface{})  { logWithFields(global.Warn(), msg, fields...) }
func Error(msg string, fields ...interface{}) { logWithFields(global.Error(), msg, fields...) }
func Debug(msg string, fields ...interface{}) { logWithFields(global.Debug(), msg, fields...) }
func Fatal(msg string, fields ...interface{}) { logWithFields(global.Fatal(), msg, fields...) }

// Default returns a Logger that writes through the process-wide logger set up
// by InitLogger.
func Default() Logger { return globalLogger{} }

type globalLogger struct{}

func (globalLogger) Info(msg string, fields ...interface{})  { Info(msg, fields...) }
func (globalLogger) Warn(msg string, fields ...interface{})  { Warn(msg, fields...) }
func (globalLogger) Error(msg string, fields ...interface{}) { Error(msg, fields...) }
func (globalLogger) Debug(msg string, fields ...interface{}) { Debug(msg, fields...) }

// logWithFields accepts either a single map or key/value pairs.
// A value stored under "error" is attached with Err.
func logWithFields(event *zerolog.Event, msg string, fields ...interface{}) {
	if event == nil {
		return
	}
	if len(fields) == 1 {
		if m, ok := fields[0].(map[string]interface{}); ok {
			event.Fields(m).Msg(msg)
			return
		}
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		if err, isErr := fields[i+1].(error); isErr && key == "error" {
			event = event.Err(err)
			continue
		}
		event = event.Interface(key, fields[i+1])
	}
	event.Msg(msg)
}
