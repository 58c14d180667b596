package dto

import (
	"time"

	"github.com/tallerhq/facturas/internal/domain/presence"
	"github.com/tallerhq/facturas/internal/validator"
)

// HeartbeatRequest is sent by clients on a fixed cadence while their
// session is open
type HeartbeatRequest struct {
	UserID      int64  `json:"user_id" validate:"required,gt=0"`
	DisplayName string `json:"display_name" validate:"required"`
}

func (r *HeartbeatRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// HeartbeatResponse acknowledges a heartbeat
type HeartbeatResponse struct {
	Status string `json:"status"`
	Online bool   `json:"online"`
}

// ActiveUserResponse is one entry in the active-users roster
type ActiveUserResponse struct {
	UserID      int64     `json:"user_id"`
	DisplayName string    `json:"display_name"`
	LastSeen    time.Time `json:"last_seen"`
}

// NewActiveUserResponse converts a presence record to its API shape
func NewActiveUserResponse(p *presence.Presence) *ActiveUserResponse {
	return &ActiveUserResponse{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		LastSeen:    p.LastSeen,
	}
}
