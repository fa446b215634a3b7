package feed

import "time"

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event describes one change to a stored resource.
type Event struct {
	Action   Action    `json:"action"`
	Resource string    `json:"resource"`
	ID       string    `json:"id"`
	At       time.Time `json:"at"`
}
