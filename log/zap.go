package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

// Logger wraps zap.Logger so that callers don't need to import zap themselves.
type Logger struct {
	l     *zap.Logger
	level zap.AtomicLevel
}

type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
	FatalLevel = zapcore.FatalLevel
)

type Field = zap.Field

// re-exported field constructors
var (
	Skip       = zap.Skip
	Binary     = zap.Binary
	Bool       = zap.Bool
	Duration   = zap.Duration
	Float64    = zap.Float64
	Float32    = zap.Float32
	Int        = zap.Int
	Int32      = zap.Int32
	Int64      = zap.Int64
	Uint       = zap.Uint
	Uint32     = zap.Uint32
	String     = zap.String
	Stringer   = zap.Stringer
	Time       = zap.Time
	Any        = zap.Any
	ErrorField = zap.Error
)

func (l *Logger) Debug(msg string, fields ...Field) {
	l.l.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...Field) {
	l.l.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...Field) {
	l.l.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...Field) {
	l.l.Error(msg, fields...)
}

func (l *Logger) Fatal(msg string, fields ...Field) {
	l.l.Fatal(msg, fields...)
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{l: l.l.Named(name), level: l.level}
}

func (l *Logger) WithOptions(opts ...zap.Option) *Logger {
	return &Logger{l: l.l.WithOptions(opts...), level: l.level}
}

func (l *Logger) Sync() error {
	return l.l.Sync()
}

func ParseLevel(arg string) (Level, error) {
	return zapcore.ParseLevel(arg)
}

type Config struct {
	Level   Level
	Format  string // "json" or "console"
	Filters string // zapfilter rules, empty means no filtering
}

// New creates a logger writing to stderr according to cfg.
func New(cfg *Config) *Logger {
	level := zap.NewAtomicLevelAt(cfg.Level)
	var encCfg zapcore.EncoderConfig
	var enc zapcore.Encoder
	if cfg.Format == "json" {
		encCfg = zap.NewProductionEncoderConfig()
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg = zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	if cfg.Filters != "" {
		filterFunc, err := zapfilter.ParseRules(cfg.Filters)
		if err == nil {
			core = zapfilter.NewFilteringCore(core, filterFunc)
		} else {
			fmt.Fprintf(os.Stderr, "ignoring invalid log filter rules: %v\n", err)
		}
	}
	return &Logger{l: zap.New(core), level: level}
}

var std = New(&Config{Level: InfoLevel, Format: "console"})

func Default() *Logger {
	return std
}

// ResetDefault replaces the default logger and the package-level log functions
func ResetDefault(l *Logger) {
	std = l
	Debug = std.Debug
	Info = std.Info
	Warn = std.Warn
	Error = std.Error
	Fatal = std.Fatal
}

// package-level log functions using the default logger
var (
	Debug = std.Debug
	Info  = std.Info
	Warn  = std.Warn
	Error = std.Error
	Fatal = std.Fatal
)

func GetLevel() Level {
	return std.level.Level()
}

func SetLevel(arg Level) {
	std.level.SetLevel(arg)
}
