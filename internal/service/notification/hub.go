package notification

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/pkg/metrics"
)

// Channel is one push target registered with the hub. Push must not block.
type Channel interface {
	Push(event model.Event) error
}

// Broadcaster is the slice of the hub the pickup service depends on.
type Broadcaster interface {
	Broadcast(event model.Event) int
}

type subscription struct {
	id string
	ch Channel
}

// Hub fans events out to every registered channel. Registration order is
// kept; delivery holds the read lock so Unsubscribe waits for an in-flight
// broadcast and a removed channel never receives later events.
type Hub struct {
	mu      sync.RWMutex
	subs    []subscription
	closed  bool
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewHub(logger zerolog.Logger, m *metrics.Metrics) *Hub {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Hub{logger: logger, metrics: m}
}

// Subscribe registers ch and sends it the connected acknowledgement.
func (h *Hub) Subscribe(ch Channel) string {
	id := uuid.NewString()

	// The ack is pushed under the write lock so it precedes any broadcast.
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		closeChannel(ch)
		h.logger.Info().Str("channel_id", id).Msg("hub closed, channel not registered")
		return id
	}
	if err := ch.Push(model.ConnectedEvent(id)); err != nil {
		h.mu.Unlock()
		h.metrics.HubPushFailures.Inc()
		h.logger.Warn().Err(err).Str("channel_id", id).Msg("connected ack failed, channel not registered")
		return id
	}
	h.subs = append(h.subs, subscription{id: id, ch: ch})
	n := len(h.subs)
	h.mu.Unlock()

	h.metrics.HubSubscribers.Set(float64(n))
	h.logger.Info().Str("channel_id", id).Int("subscribers", n).Msg("channel subscribed")
	return id
}

// Unsubscribe removes the channel; unknown ids are ignored.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	removed := false
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
			removed = true
			break
		}
	}
	n := len(h.subs)
	h.mu.Unlock()

	if removed {
		h.metrics.HubSubscribers.Set(float64(n))
		h.logger.Info().Str("channel_id", id).Int("subscribers", n).Msg("channel unsubscribed")
	}
}

// Broadcast pushes event to every channel registered when it is called and
// returns how many accepted it. Channels whose push fails are evicted.
func (h *Hub) Broadcast(event model.Event) int {
	var failed []string
	delivered := 0

	h.mu.RLock()
	for _, s := range h.subs {
		if err := s.ch.Push(event); err != nil {
			h.logger.Warn().Err(err).Str("channel_id", s.id).Str("event_type", event.Type).Msg("push failed")
			failed = append(failed, s.id)
			continue
		}
		delivered++
	}
	h.mu.RUnlock()

	h.metrics.HubBroadcasts.WithLabelValues(event.Type).Inc()
	for _, id := range failed {
		h.metrics.HubPushFailures.Inc()
		h.metrics.HubEvictions.Inc()
		h.Unsubscribe(id)
	}
	return delivered
}

// Close removes every channel and closes those that can be closed, which
// ends their streams. Later subscriptions are closed immediately.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := h.subs
	h.subs = nil
	h.closed = true
	h.mu.Unlock()

	for _, s := range subs {
		closeChannel(s.ch)
	}
	h.metrics.HubSubscribers.Set(0)
	h.logger.Info().Int("closed", len(subs)).Msg("hub closed")
}

func closeChannel(ch Channel) {
	if c, ok := ch.(interface{ Close() }); ok {
		c.Close()
	}
}

// Len returns the number of registered channels.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
