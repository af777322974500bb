package notification

import (
	"context"

	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/pkg/messaging"
)

// MirrorTo republishes hub events on a broker channel so processes other
// than this one can follow new pickups.
func MirrorTo(pub messaging.Publisher, channel string) DeliverFunc {
	return func(ctx context.Context, event model.Event) error {
		return pub.Publish(ctx, channel, messaging.Message{Type: event.Type, Payload: event.Data})
	}
}
