package notifications

import "time"

// Message is the envelope pushed to live feed clients
type Message struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Message types originated by the feed itself
const (
	MessageTypeStatus = "status"
)
