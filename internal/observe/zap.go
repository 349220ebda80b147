package observe

import (
	"fmt"

	"go.uber.org/zap"
)

// ZapObserver emits events through a zap logger, for environments where
// structured JSON logs are collected.
type ZapObserver struct {
	logger *zap.Logger
	fields map[string]string
}

// NewZapObserver wraps a zap logger as an Observer.
func NewZapObserver(logger *zap.Logger) *ZapObserver {
	return &ZapObserver{logger: logger, fields: make(map[string]string)}
}

// Printf implements Observer.
func (o *ZapObserver) Printf(format string, v ...any) {
	o.logger.Info(fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (o *ZapObserver) Event(event Event) {
	fields := []zap.Field{
		zap.String("type", string(event.Type)),
	}
	if event.Node != "" {
		fields = append(fields, zap.String("node", event.Node))
	}
	if event.Resource != "" {
		fields = append(fields, zap.String("resource", event.Resource))
	}
	for k, v := range o.fields {
		fields = append(fields, zap.String(k, v))
	}
	for k, v := range event.Fields {
		fields = append(fields, zap.String(k, v))
	}

	switch event.Type {
	case EventNodeFailed, EventValidationFailed:
		o.logger.Error(event.Message, fields...)
	case EventNodeSkipped, EventSlotIgnored:
		o.logger.Warn(event.Message, fields...)
	default:
		o.logger.Info(event.Message, fields...)
	}
}

// WithFields implements Observer.
func (o *ZapObserver) WithFields(fields map[string]string) Observer {
	merged := make(map[string]string, len(o.fields)+len(fields))
	for k, v := range o.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &ZapObserver{logger: o.logger, fields: merged}
}
