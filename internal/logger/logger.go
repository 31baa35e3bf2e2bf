package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global SugaredLogger instance.
// Initialized with a no-op logger until Initialize is called.
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// Supported output encodings
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Opt configures Initialize.
type Opt func(*zap.Config)

// WithFormat selects the json or console encoder.
func WithFormat(format string) Opt {
	return func(cfg *zap.Config) {
		if format == FormatConsole {
			cfg.Encoding = FormatConsole
			cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		}
	}
}

// WithFields attaches fields to every entry, e.g. the service name.
func WithFields(fields map[string]any) Opt {
	return func(cfg *zap.Config) {
		if cfg.InitialFields == nil {
			cfg.InitialFields = make(map[string]any, len(fields))
		}
		for k, v := range fields {
			cfg.InitialFields[k] = v
		}
	}
}

// Initialize sets up the global logger with the given log level.
func Initialize(level string, opts ...Opt) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	for _, opt := range opts {
		opt(&cfg)
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = logger.Sugar()
	return nil
}

// Sync flushes buffered entries. Errors from syncing stdout/stderr are ignored.
func Sync() {
	_ = Log.Sync()
}
