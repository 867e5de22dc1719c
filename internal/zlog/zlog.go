// Package zlog builds the application's structured logger: JSON or console
// encoding, level-filtered, with file output rotated through lumberjack.
package zlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"zplforge/internal/config"
)

// New builds a *zap.Logger from a LoggingConfig: encoder (json/console),
// write syncer (stdout/stderr/rotated file), and level, in that order.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	encoder, err := buildEncoder(cfg)
	if err != nil {
		return nil, err
	}
	sync, err := buildWriteSyncer(cfg)
	if err != nil {
		return nil, fmt.Errorf("zlog: write syncer: %w", err)
	}
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(encoder, sync, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func buildEncoder(cfg config.LoggingConfig) (zapcore.Encoder, error) {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	ec.LevelKey = "level"
	ec.EncodeLevel = zapcore.LowercaseLevelEncoder
	ec.MessageKey = "message"

	switch cfg.Format {
	case "console":
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
		return zapcore.NewConsoleEncoder(ec), nil
	case "", "json":
		return zapcore.NewJSONEncoder(ec), nil
	default:
		return nil, fmt.Errorf("zlog: unknown log format %q", cfg.Format)
	}
}

func buildWriteSyncer(cfg config.LoggingConfig) (zapcore.WriteSyncer, error) {
	switch cfg.Output {
	case "", "stdout":
		return zapcore.AddSync(os.Stdout), nil
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
			return nil, err
		}
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Output,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}), nil
	}
}

func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("zlog: invalid log level %q", level)
	}
}

// RenderLogger wraps a base logger with render-pipeline context (label
// source name, output format), scoped to one render call.
type RenderLogger struct {
	logger    *zap.Logger
	startTime time.Time
}

// NewRenderLogger scopes base to a single label render.
func NewRenderLogger(base *zap.Logger, labelName, format string) *RenderLogger {
	return &RenderLogger{
		logger: base.With(
			zap.String("label", labelName),
			zap.String("format", format),
			zap.String("component", "render"),
		),
		startTime: time.Now(),
	}
}

// Success logs a completed render with its elapsed duration and output size.
func (r *RenderLogger) Success(bytesWritten int) {
	r.logger.Info("label rendered",
		zap.Duration("duration", time.Since(r.startTime)),
		zap.Int("bytes", bytesWritten),
	)
}

// Failure logs a render that errored out partway through the pipeline.
func (r *RenderLogger) Failure(err error) {
	r.logger.Error("label render failed",
		zap.Duration("duration", time.Since(r.startTime)),
		zap.Error(err),
	)
}
