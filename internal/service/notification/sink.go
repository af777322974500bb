package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/pkg/metrics"
)

// DeliverFunc hands one event to an external system.
type DeliverFunc func(ctx context.Context, event model.Event) error

// Sink is a server-side hub channel that delivers events asynchronously.
// Push never fails: when the buffer is full the event is dropped and
// counted, so the hub never evicts a sink.
type Sink struct {
	name    string
	deliver DeliverFunc
	types   map[string]struct{}
	queue   chan model.Event
	timeout time.Duration
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

type SinkConfig struct {
	Name    string
	Buffer  int
	Timeout time.Duration
	// Types restricts delivery to these event types; empty accepts all.
	Types []string
}

func NewSink(cfg SinkConfig, deliver DeliverFunc, logger zerolog.Logger, m *metrics.Metrics) *Sink {
	if cfg.Buffer <= 0 {
		cfg.Buffer = 64
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if m == nil {
		m = metrics.NewNop()
	}
	types := make(map[string]struct{}, len(cfg.Types))
	for _, t := range cfg.Types {
		types[t] = struct{}{}
	}
	return &Sink{
		name:    cfg.Name,
		deliver: deliver,
		types:   types,
		queue:   make(chan model.Event, cfg.Buffer),
		timeout: cfg.Timeout,
		logger:  logger.With().Str("sink", cfg.Name).Logger(),
		metrics: m,
	}
}

func (s *Sink) Push(event model.Event) error {
	if len(s.types) > 0 {
		if _, ok := s.types[event.Type]; !ok {
			return nil
		}
	}
	select {
	case s.queue <- event:
	default:
		s.metrics.SinkDropped.WithLabelValues(s.name).Inc()
		s.logger.Warn().Str("event_type", event.Type).Msg("sink buffer full, event dropped")
	}
	return nil
}

// Run delivers queued events until ctx is cancelled.
func (s *Sink) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-s.queue:
			s.handle(ctx, event)
		}
	}
}

func (s *Sink) handle(ctx context.Context, event model.Event) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.deliver(ctx, event); err != nil {
		s.metrics.SinkFailures.WithLabelValues(s.name).Inc()
		s.logger.Error().Err(err).Str("event_type", event.Type).Msg("sink delivery failed")
	}
}
