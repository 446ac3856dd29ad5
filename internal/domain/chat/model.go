package chat

import "time"

// Message is one entry in a concern's discussion thread. Like call
// documentation, messages are append-only.
type Message struct {
	ID        string    `json:"id"`
	ConcernID string    `json:"concernId"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
