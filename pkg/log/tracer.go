package log

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mozark/roi-planner/pkg/requestid"
	"go.uber.org/zap"
)

// StructuredLogger is a named factory of operation loggers. It is safe to share.
type StructuredLogger struct {
	name string
}

// NewDebugLogger returns a logger named after the component that owns it.
//
//	logger := log.NewDebugLogger("scenario_service").
//		WithContext(ctx).
//		Operation("update_scenario").
//		WithUUID("scenario_id", id).
//		Build()
//	logger.Step("load").Log()
//	logger.Success().Log()
func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name}
}

// WithContext starts a new operation. The request id of ctx is attached to every entry.
func (s *StructuredLogger) WithContext(ctx context.Context) *DebugLoggerBuilder {
	if ctx == nil {
		ctx = context.Background()
	}
	return &DebugLoggerBuilder{name: s.name, ctx: ctx}
}

// DebugLoggerBuilder collects the fields shared by every entry of one operation.
type DebugLoggerBuilder struct {
	name      string
	ctx       context.Context
	operation string
	fields    []zap.Field
}

func (b *DebugLoggerBuilder) Operation(op string) *DebugLoggerBuilder {
	b.operation = op
	return b
}

func (b *DebugLoggerBuilder) WithString(key, value string) *DebugLoggerBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *DebugLoggerBuilder) WithInt(key string, value int) *DebugLoggerBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *DebugLoggerBuilder) WithFloat(key string, value float64) *DebugLoggerBuilder {
	b.fields = append(b.fields, zap.Float64(key, value))
	return b
}

func (b *DebugLoggerBuilder) WithUUID(key string, value uuid.UUID) *DebugLoggerBuilder {
	b.fields = append(b.fields, zap.String(key, value.String()))
	return b
}

func (b *DebugLoggerBuilder) Build() *OperationLogger {
	fields := make([]zap.Field, 0, len(b.fields)+2)
	fields = append(fields, zap.String("operation", b.operation))
	if id := requestid.FromContext(b.ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	fields = append(fields, b.fields...)

	return &OperationLogger{
		logger: zap.L().Named(b.name).WithOptions(zap.AddCallerSkip(1)).With(fields...),
		start:  time.Now(),
	}
}

// OperationLogger emits step, error and success entries of a single operation.
type OperationLogger struct {
	logger *zap.Logger
	start  time.Time
}

func (l *OperationLogger) Step(step string) *Entry {
	return &Entry{write: l.logger.Debug, msg: "step", fields: []zap.Field{zap.String("step", step)}}
}

func (l *OperationLogger) Error(err error) *Entry {
	return &Entry{write: l.logger.Error, msg: "operation failed", fields: []zap.Field{zap.Error(err)}}
}

func (l *OperationLogger) Success() *Entry {
	return &Entry{write: l.logger.Debug, msg: "operation succeeded", fields: []zap.Field{zap.Duration("duration", time.Since(l.start))}}
}

// Entry is a single log line. Nothing is written until Log is called.
type Entry struct {
	write  func(msg string, fields ...zap.Field)
	msg    string
	fields []zap.Field
}

func (e *Entry) WithString(key, value string) *Entry {
	e.fields = append(e.fields, zap.String(key, value))
	return e
}

func (e *Entry) WithInt(key string, value int) *Entry {
	e.fields = append(e.fields, zap.Int(key, value))
	return e
}

func (e *Entry) WithFloat(key string, value float64) *Entry {
	e.fields = append(e.fields, zap.Float64(key, value))
	return e
}

func (e *Entry) WithUUID(key string, value uuid.UUID) *Entry {
	e.fields = append(e.fields, zap.String(key, value.String()))
	return e
}

func (e *Entry) WithBool(key string, value bool) *Entry {
	e.fields = append(e.fields, zap.Bool(key, value))
	return e
}

func (e *Entry) Log() {
	e.write(e.msg, e.fields...)
}
