package ai

import (
	"context"
	"log/slog"
	"time"
)

// CallEvent records one provider round trip.
type CallEvent struct {
	Provider string
	Model    string
	Task     Task
	Latency  time.Duration
	Err      error
}

// Observer receives provider call events for logging and metrics.
type Observer interface {
	OnCall(ctx context.Context, event CallEvent)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCall(context.Context, CallEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes call events through logger. A nil logger yields a
// NoopObserver.
func NewLogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		return NoopObserver{}
	}
	return &logObserver{logger: logger}
}

func (o *logObserver) OnCall(ctx context.Context, event CallEvent) {
	attrs := []any{
		"provider", event.Provider,
		"model", event.Model,
		"task", string(event.Task),
		"latency_ms", event.Latency.Milliseconds(),
	}
	if event.Err != nil {
		o.logger.ErrorContext(ctx, "llm_call", append(attrs, "error", event.Err.Error())...)
		return
	}
	o.logger.InfoContext(ctx, "llm_call", attrs...)
}

func observerOrNoop(o Observer) Observer {
	if o == nil {
		return NoopObserver{}
	}
	return o
}
