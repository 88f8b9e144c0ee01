package logger

import (
	"context"

	"AIOverview_Analysis/internal/models"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements the Service interface by writing structured lines through zap
type ZapLogger struct {
	l *zap.Logger
}

// NewZapLogger builds a console logger. format "json" selects the production encoder.
func NewZapLogger(level, format string) Service {
	return &ZapLogger{l: newZap(level, format)}
}

// NewZapAdapter wraps an existing *zap.Logger
func NewZapAdapter(l *zap.Logger) Service {
	return &ZapLogger{l: l}
}

// NewNoOpLogger returns a Service that discards everything
func NewNoOpLogger() Service {
	return &ZapLogger{l: zap.NewNop()}
}

func newZap(levelStr, format string) *zap.Logger {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func (z *ZapLogger) LogInfo(ctx context.Context, operation, message string, metadata map[string]interface{}) {
	z.l.Info(message, z.fields(ctx, operation, "", metadata)...)
}

func (z *ZapLogger) LogSuccess(ctx context.Context, operation, targetName, message string, metadata map[string]interface{}) {
	z.l.Info(message, z.fields(ctx, operation, targetName, metadata)...)
}

// LogError maps high severity to zap's error level and the rest to warn
func (z *ZapLogger) LogError(ctx context.Context, operation, targetName, message string, err error, severity models.LogSeverity, metadata map[string]interface{}) {
	fields := append(z.fields(ctx, operation, targetName, metadata),
		zap.Error(err),
		zap.String("severity", string(severity)),
	)
	if severity == models.LogSeverityHigh {
		z.l.Error(message, fields...)
		return
	}
	z.l.Warn(message, fields...)
}

// Close flushes buffered entries
func (z *ZapLogger) Close() error {
	_ = z.l.Sync()
	return nil
}

func (z *ZapLogger) fields(ctx context.Context, operation, targetName string, metadata map[string]interface{}) []zap.Field {
	logEvent := GetLogEvent(ctx)
	out := make([]zap.Field, 0, len(metadata)+5)
	out = append(out,
		zap.String("operation", operation),
		zap.String("process_id", logEvent.ProcessID),
		zap.String("process_type", string(logEvent.ProcessType)),
	)
	if targetName != "" {
		out = append(out, zap.String("target", targetName))
	}
	if logEvent.ClientIP != "" {
		out = append(out, zap.String("client_ip", logEvent.ClientIP))
	}
	for k, v := range metadata {
		out = append(out, zap.Any(k, v))
	}
	return out
}
