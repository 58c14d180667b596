package dto

import (
	"time"

	"github.com/tallerhq/facturas/internal/domain/draft"
	"github.com/tallerhq/facturas/internal/validator"
)

// RegisterDraftRequest announces that a user started composing an
// invoice for a client
type RegisterDraftRequest struct {
	UserID     int64  `json:"user_id" validate:"required,gt=0"`
	ClientName string `json:"client_name" validate:"required"`
}

func (r *RegisterDraftRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// DraftResponse is one in-progress draft announcement
type DraftResponse struct {
	UserID     int64     `json:"user_id"`
	UserName   string    `json:"user_name,omitempty"`
	ClientName string    `json:"client_name"`
	StartedAt  time.Time `json:"started_at"`
}

// NewDraftResponse converts a draft announcement to its API shape
func NewDraftResponse(d *draft.Draft, userName string) *DraftResponse {
	return &DraftResponse{
		UserID:     d.UserID,
		UserName:   userName,
		ClientName: d.ClientName,
		StartedAt:  d.StartedAt,
	}
}
