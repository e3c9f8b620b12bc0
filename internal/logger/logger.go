package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the severity of a log message.
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

func (l Level) zapLevel() zapcore.Level {
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

// ParseLevel parses a string into a Level.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Logger is a leveled printf-style logger on top of zap.
type Logger struct {
	base   *zap.Logger // carries fields, never named
	z      *zap.Logger // base named with prefix
	prefix string
}

type options struct {
	out      io.Writer
	level    Level
	prefix   string
	colorize bool
	json     bool
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sets the output destination.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithPrefix sets a prefix for log messages.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithColors enables or disables colorized level names in console output.
func WithColors(enabled bool) Option {
	return func(o *options) {
		o.colorize = enabled
	}
}

// WithJSON switches the encoder to JSON lines.
func WithJSON(enabled bool) Option {
	return func(o *options) {
		o.json = enabled
	}
}

// New creates a new Logger with the given options.
func New(opts ...Option) *Logger {
	o := options{
		out:      os.Stdout,
		level:    INFO,
		colorize: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "component",
		CallerKey:      "caller",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
	}

	var enc zapcore.Encoder
	if o.json {
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		if o.colorize {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		encCfg.EncodeName = func(name string, pae zapcore.PrimitiveArrayEncoder) {
			pae.AppendString("[" + name + "]")
		}
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(o.out), zap.NewAtomicLevelAt(o.level.zapLevel()))
	z := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2))
	l := &Logger{base: z, z: z}
	if o.prefix != "" {
		l = l.WithPrefix(o.prefix)
	}
	return l
}

var (
	defaultLogger = New()
	// pkgLogger backs the package-level functions, which add one frame.
	pkgLogger = defaultLogger.withCallerSkip(1)
)

// SetDefault sets the default logger.
func SetDefault(l *Logger) {
	defaultLogger = l
	pkgLogger = l.withCallerSkip(1)
}

func (l *Logger) withCallerSkip(n int) *Logger {
	opt := zap.AddCallerSkip(n)
	return &Logger{base: l.base.WithOptions(opt), z: l.z.WithOptions(opt), prefix: l.prefix}
}

// Default returns the default logger.
func Default() *Logger {
	return defaultLogger
}

// Zap exposes the underlying zap logger for libraries that want one.
func (l *Logger) Zap() *zap.Logger {
	return l.z
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	f := zap.Any(key, value)
	return &Logger{base: l.base.With(f), z: l.z.With(f), prefix: l.prefix}
}

// WithFields returns a new logger with the given fields added.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return &Logger{base: l.base.With(zf...), z: l.z.With(zf...), prefix: l.prefix}
}

// WithPrefix returns a new logger with the given prefix. The prefix replaces
// any previous one instead of nesting.
func (l *Logger) WithPrefix(prefix string) *Logger {
	if prefix == l.prefix {
		return l
	}
	return &Logger{base: l.base, z: l.base.Named(prefix), prefix: prefix}
}

func (l *Logger) log(level Level, msg string, args ...any) {
	ce := l.z.Check(level.zapLevel(), "")
	if ce == nil {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	ce.Message = msg
	ce.Write()
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(DEBUG, msg, args...)
}

// Info logs a message at INFO level.
func (l *Logger) Info(msg string, args ...any) {
	l.log(INFO, msg, args...)
}

// Warn logs a message at WARN level.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(WARN, msg, args...)
}

// Error logs a message at ERROR level.
func (l *Logger) Error(msg string, args ...any) {
	l.log(ERROR, msg, args...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.z.Sync()
}

// Package-level functions that use the default logger.

func Debug(msg string, args ...any) { pkgLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { pkgLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { pkgLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { pkgLogger.Error(msg, args...) }

// Context key for request-scoped logger.
type ctxKey struct{}

// FromContext returns the logger from the context, or the default logger.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return defaultLogger
}

// NewContext returns a new context with the given logger.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}
