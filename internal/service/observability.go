package service

import (
	"context"
	"log/slog"
	"time"
)

// LoadEvent describes one dataset or stage document load.
type LoadEvent struct {
	Kind       string
	Source     string
	Duration   time.Duration
	Categories int
	Services   int
	Findings   int
	Err        error
}

// LoadObserver receives load events.
type LoadObserver interface {
	ObserveLoad(ctx context.Context, event LoadEvent)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveLoad(context.Context, LoadEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes load events to logger.
func NewLogObserver(logger *slog.Logger) LoadObserver {
	if logger == nil {
		return NoopObserver{}
	}
	return &logObserver{logger: logger}
}

func (o *logObserver) ObserveLoad(ctx context.Context, event LoadEvent) {
	attrs := []any{
		"kind", event.Kind,
		"source", event.Source,
		"duration_ms", event.Duration.Milliseconds(),
	}
	switch event.Kind {
	case KindDataset:
		attrs = append(attrs, "categories", event.Categories)
	case KindStages:
		attrs = append(attrs, "services", event.Services, "findings", event.Findings)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "load_failed", attrs...)
		return
	}
	if event.Findings > 0 {
		o.logger.WarnContext(ctx, "loaded_with_findings", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "loaded", attrs...)
}

func observerOrNoop(observers []LoadObserver) LoadObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopObserver{}
}
