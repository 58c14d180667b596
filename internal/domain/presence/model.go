package presence

import (
	"time"
)

// Presence records a user's last heartbeat. A user is considered active
// while now - LastSeen stays within the configured active window.
type Presence struct {
	UserID      int64     `db:"user_id" json:"user_id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	LastSeen    time.Time `db:"last_seen" json:"last_seen"`
}
