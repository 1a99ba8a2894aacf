package log

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unibuddy/lecture-api/pkg/requestid"
)

// StructuredLogger produces operation tracers: named loggers that record the
// lifecycle of one logical operation (steps, success, failure) with typed
// fields and the request id taken from the context.
type StructuredLogger struct {
	name string
}

// NewDebugLogger returns a structured logger for the given component name.
// Step events log at debug level, success at info, failure at error.
func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name}
}

func (l *StructuredLogger) WithContext(ctx context.Context) *OperationBuilder {
	return &OperationBuilder{
		name:      l.name,
		requestID: requestid.FromContext(ctx),
	}
}

// Operation is a shortcut for WithContext(context.Background()).Operation(op).
func (l *StructuredLogger) Operation(op string) *OperationBuilder {
	return &OperationBuilder{name: l.name, operation: op}
}

// OperationBuilder accumulates the fields attached to every event of the
// operation before Build is called.
type OperationBuilder struct {
	name      string
	operation string
	requestID string
	fields    []any
}

func (b *OperationBuilder) Operation(op string) *OperationBuilder {
	b.operation = op
	return b
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, key, value)
	return b
}

func (b *OperationBuilder) WithStringPtr(key string, value *string) *OperationBuilder {
	if value != nil {
		b.fields = append(b.fields, key, *value)
	}
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, key, value)
	return b
}

func (b *OperationBuilder) WithBool(key string, value bool) *OperationBuilder {
	b.fields = append(b.fields, key, value)
	return b
}

func (b *OperationBuilder) WithUUID(key string, value uuid.UUID) *OperationBuilder {
	b.fields = append(b.fields, key, value.String())
	return b
}

func (b *OperationBuilder) WithUUIDPtr(key string, value *uuid.UUID) *OperationBuilder {
	if value != nil {
		b.fields = append(b.fields, key, value.String())
	}
	return b
}

func (b *OperationBuilder) WithParam(key string, value any) *OperationBuilder {
	b.fields = append(b.fields, key, value)
	return b
}

func (b *OperationBuilder) Build() *OperationTracer {
	base := zap.S().Named(b.name)
	if b.requestID != "" {
		base = base.With("request_id", b.requestID)
	}
	if b.operation != "" {
		base = base.With("operation", b.operation)
	}
	return &OperationTracer{logger: base.With(b.fields...)}
}

// OperationTracer emits the events of one operation.
type OperationTracer struct {
	logger *zap.SugaredLogger
}

func (t *OperationTracer) Step(name string) *Event {
	return &Event{logger: t.logger, level: zapcore.DebugLevel, message: name}
}

func (t *OperationTracer) Success() *Event {
	return &Event{logger: t.logger, level: zapcore.InfoLevel, message: "success"}
}

func (t *OperationTracer) Error(err error) *Event {
	e := &Event{logger: t.logger, level: zapcore.ErrorLevel, message: "failed"}
	if err != nil {
		e.fields = append(e.fields, "error", err.Error())
	}
	return e
}

// Event is one log line of an operation; fields chain until Log is called.
type Event struct {
	logger  *zap.SugaredLogger
	level   zapcore.Level
	message string
	fields  []any
}

func (e *Event) WithString(key, value string) *Event {
	e.fields = append(e.fields, key, value)
	return e
}

func (e *Event) WithStringPtr(key string, value *string) *Event {
	if value != nil {
		e.fields = append(e.fields, key, *value)
	}
	return e
}

func (e *Event) WithInt(key string, value int) *Event {
	e.fields = append(e.fields, key, value)
	return e
}

func (e *Event) WithBool(key string, value bool) *Event {
	e.fields = append(e.fields, key, value)
	return e
}

func (e *Event) WithUUID(key string, value uuid.UUID) *Event {
	e.fields = append(e.fields, key, value.String())
	return e
}

func (e *Event) WithParam(key string, value any) *Event {
	e.fields = append(e.fields, key, value)
	return e
}

func (e *Event) Log() {
	switch e.level {
	case zapcore.DebugLevel:
		e.logger.Debugw(e.message, e.fields...)
	case zapcore.ErrorLevel:
		e.logger.Errorw(e.message, e.fields...)
	default:
		e.logger.Infow(e.message, e.fields...)
	}
}
