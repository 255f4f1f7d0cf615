package logging

import (
	"context"

	"go.uber.org/zap"
)

type (
	ctxLoggerKey  struct{}
	ctxTraceIDKey struct{}
)

// Field names shared by every package that tags log lines with a domain id.
const (
	FieldConversationID = "conversationId"
	FieldVisitorID      = "visitorId"
	FieldSubmissionID   = "submissionId"
)

// LoggerFromContext returns the logger RequestLogger stored, or the process logger.
func LoggerFromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxLoggerKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return Logger()
}

// TraceIDFromContext returns the Cloud Trace resource, else the request id, else "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(ctxTraceIDKey{}).(string)
	return v
}

func LogInfo(ctx context.Context, msg string, fields ...zap.Field) {
	LoggerFromContext(ctx).Info(msg, fields...)
}

func LogWarn(ctx context.Context, msg string, fields ...zap.Field) {
	LoggerFromContext(ctx).Warn(msg, fields...)
}

// LogError appends err as the "error" field when non-nil.
func LogError(ctx context.Context, msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	LoggerFromContext(ctx).Error(msg, fields...)
}

// WithFields returns a child context whose logger carries the extra fields.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	return contextWithLogger(ctx, LoggerFromContext(ctx).With(fields...))
}

// WithConversation tags every later log line of ctx with the conversation id.
func WithConversation(ctx context.Context, id string) context.Context {
	return WithFields(ctx, zap.String(FieldConversationID, id))
}

// WithVisitor tags every later log line of ctx with the consent visitor id.
func WithVisitor(ctx context.Context, id string) context.Context {
	return WithFields(ctx, zap.String(FieldVisitorID, id))
}

func contextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(orBackground(ctx), ctxLoggerKey{}, logger)
}

func contextWithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		return ctx
	}
	return context.WithValue(orBackground(ctx), ctxTraceIDKey{}, traceID)
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
