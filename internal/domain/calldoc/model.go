package calldoc

import "time"

// CallDoc records one phone interaction for a concern. Records are
// immutable once written; there is no update or delete path.
type CallDoc struct {
	ID           string    `json:"id"`
	ConcernID    string    `json:"concernId"`
	AgentName    string    `json:"agentName"`
	CallNotes    string    `json:"callNotes"`
	Resolution   *string   `json:"resolution"`
	AgentMessage *string   `json:"agentMessage"`
	CreatedAt    time.Time `json:"createdAt"`
}
