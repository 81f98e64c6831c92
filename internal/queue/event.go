// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records them.
package queue

// Event kinds published on the tracker.activity queue.
const (
	KindAccountCreated = "account.created"
	KindWeightRecorded = "weight.recorded"
)

// ActivityEvent is published after a successful write so downstream
// consumers can log or analyze activity without touching the
// spreadsheet. Measurement fields are only set for weight.recorded.
type ActivityEvent struct {
	Kind     string  `json:"kind"`
	UserID   string  `json:"user_id"`
	Date     string  `json:"date,omitempty"`      // measurement date, YYYY-MM-DD
	WeightKG float64 `json:"weight_kg,omitempty"` // recorded weight
	At       string  `json:"at"`                  // RFC3339 time the write happened
}
