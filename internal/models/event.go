package models

import "time"

// ChangeEvent announces that persisted data changed. It carries no payload
// beyond a source tag and timestamp: listeners re-read the stores.
type ChangeEvent struct {
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}
