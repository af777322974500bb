package model

// Event types pushed through the notification hub.
const (
	EventConnected = "connected"
	EventNewPickup = "new_pickup"
	EventPing      = "ping"
)

// Event is one frame delivered to every open notification channel.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ConnectedEvent acknowledges a fresh subscription.
func ConnectedEvent(channelID string) Event {
	return Event{
		Type: EventConnected,
		Data: map[string]string{
			"message":   "SSE Connection Established",
			"channelId": channelID,
		},
	}
}

func NewPickupEvent(p *Pickup) Event {
	return Event{Type: EventNewPickup, Data: p}
}
