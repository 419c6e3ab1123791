package logging

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AntonStoeckl/detached-state-go/snapshot"
)

// ErrUnknownLogLevel is returned by ParseLevel for an unknown level name.
var ErrUnknownLogLevel = errors.New("unknown log level")

// Logger adapts a *zap.SugaredLogger to snapshot.Logger, passing args on as key-value pairs.
type Logger struct {
	sugared *zap.SugaredLogger
}

var _ snapshot.Logger = Logger{}

// New creates a Logger with console output at the given level, written to out.
func New(level zapcore.LevelEnabler, out zapcore.WriteSyncer, options ...zap.Option) Logger {
	//nolint:exhaustruct // default encoder configuration values are fine.
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "message",
		LevelKey:         "level",
		TimeKey:          "time",
		CallerKey:        "caller",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: ", ",
	})

	return Wrap(zap.New(zapcore.NewCore(encoder, out, level), options...).Sugar())
}

// Wrap adapts an existing sugared logger.
func Wrap(sugared *zap.SugaredLogger) Logger {
	return Logger{sugared: sugared}
}

// ParseLevel converts a level name like "debug" or "WARN" to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, errors.Join(ErrUnknownLogLevel, fmt.Errorf("level: %q", s))
	}
}

func (l Logger) Debug(msg string, args ...any) {
	l.sugared.Debugw(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.sugared.Infow(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.sugared.Warnw(msg, args...)
}

func (l Logger) Error(msg string, args ...any) {
	l.sugared.Errorw(msg, args...)
}

// Sync flushes buffered log entries.
func (l Logger) Sync() error {
	return l.sugared.Sync()
}
