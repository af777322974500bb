package messaging

import (
	"context"
)

// Publisher publishes a typed message to a named channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, message Message) error
	Close() error
}

// Message is the envelope written to the broker.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
