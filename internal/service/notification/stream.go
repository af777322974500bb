package notification

import (
	"errors"
	"sync"

	"github.com/labfetch/labfetch-api/internal/model"
)

var (
	ErrChannelClosed = errors.New("notification channel closed")
	ErrChannelFull   = errors.New("notification channel buffer full")
)

// StreamChannel buffers events for one streaming client. A push that finds
// the buffer full closes the channel, so a stalled client is dropped rather
// than silently missing events.
type StreamChannel struct {
	mu     sync.Mutex
	events chan model.Event
	done   chan struct{}
	closed bool
}

func NewStreamChannel(buffer int) *StreamChannel {
	if buffer <= 0 {
		buffer = 16
	}
	return &StreamChannel{
		events: make(chan model.Event, buffer),
		done:   make(chan struct{}),
	}
}

func (c *StreamChannel) Push(event model.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrChannelClosed
	}
	select {
	case c.events <- event:
		return nil
	default:
		c.closeLocked()
		return ErrChannelFull
	}
}

// Events yields pushed events in push order.
func (c *StreamChannel) Events() <-chan model.Event {
	return c.events
}

// Done is closed once the channel stops accepting events.
func (c *StreamChannel) Done() <-chan struct{} {
	return c.done
}

func (c *StreamChannel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *StreamChannel) closeLocked() {
	if !c.closed {
		c.closed = true
		close(c.done)
	}
}
