package logging

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/config"
)

// ServiceName is attached to every line written by the desk server.
const ServiceName = "webdesk"

// Logger wraps zap.Logger with convenience methods.
type Logger struct {
	*zap.Logger
}

// New builds the server logger from LOG_LEVEL and LOG_DEV.
//
// Production writes sampled JSON to stdout: per-request debug and warn lines
// are the bulk of the output, so repeats past the first 100 per second are
// thinned. Development writes every line to a colored console.
func New(cfg config.LogConfig) (*Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL %q: %w", cfg.Level, err)
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Development,
		Encoding:          "json",
		EncoderConfig:     productionEncoder(),
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !cfg.Development,
		Sampling:          &zap.SamplingConfig{Initial: 100, Thereafter: 100},
		InitialFields:     map[string]any{"service": ServiceName},
	}
	if cfg.Development {
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig = developmentEncoder()
		zapCfg.Sampling = nil
		zapCfg.InitialFields = nil
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: logger}, nil
}

// FromConfig is New that never fails: an unparsable level falls back to
// info, and a logger that cannot be built falls back to a no-op.
func FromConfig(cfg config.LogConfig) *Logger {
	logger, err := New(cfg)
	if err == nil {
		return logger
	}
	cfg.Level = "info"
	fallback, ferr := New(cfg)
	if ferr != nil {
		return NewNop()
	}
	fallback.Warn("Invalid log level, using info", zap.Error(err))
	return fallback
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

type ctxKey struct{}

// WithContext returns a context carrying logger.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger carried by ctx, or fallback when none is set.
func FromContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && logger != nil {
		return logger
	}
	if fallback == nil {
		return zap.NewNop()
	}
	return fallback
}

func productionEncoder() zapcore.EncoderConfig {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.MessageKey = "message"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	return enc
}

func developmentEncoder() zapcore.EncoderConfig {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder
	return enc
}
