package testutil

import (
	"sync"

	"github.com/labfetch/labfetch-api/internal/model"
)

// RecordingBroadcaster captures every broadcast event.
type RecordingBroadcaster struct {
	mu     sync.Mutex
	events []model.Event
}

func (b *RecordingBroadcaster) Broadcast(event model.Event) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return 1
}

func (b *RecordingBroadcaster) Events() []model.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Event(nil), b.events...)
}
