package draft

import (
	"time"
)

// Draft announces that a user is composing a not-yet-persisted invoice
// for a client. Key uniqueness on UserID means a user announces at most
// one draft; a new registration supersedes the old.
type Draft struct {
	UserID     int64     `db:"user_id" json:"user_id"`
	ClientName string    `db:"client_name" json:"client_name"`
	StartedAt  time.Time `db:"started_at" json:"started_at"`
}
