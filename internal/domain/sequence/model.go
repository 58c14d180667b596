package sequence

import (
	"time"
)

// Counter is the per-prefix document number counter. LastValue only ever
// grows; every committed allocation yields LastValue+1 for its prefix.
type Counter struct {
	Prefix    string    `db:"prefix"`
	LastValue int64     `db:"last_value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
