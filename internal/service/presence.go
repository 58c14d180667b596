package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/tallerhq/facturas/internal/api/dto"
	"github.com/tallerhq/facturas/internal/domain/presence"
)

// PresenceService tracks who is online. Clients call Heartbeat on a
// fixed cadence; a user drops out of the active roster once their last
// heartbeat falls outside the configured active window.
type PresenceService interface {
	Heartbeat(ctx context.Context, req *dto.HeartbeatRequest) (*dto.HeartbeatResponse, error)
	ListActive(ctx context.Context) ([]*dto.ActiveUserResponse, error)
}

type presenceService struct {
	ServiceParams
}

// NewPresenceService creates a new presence service
func NewPresenceService(params ServiceParams) PresenceService {
	return &presenceService{ServiceParams: params}
}

// Heartbeat upserts the caller's presence record: first contact creates
// it, every later call refreshes last_seen and the display name.
func (s *presenceService) Heartbeat(ctx context.Context, req *dto.HeartbeatRequest) (*dto.HeartbeatResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := &presence.Presence{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		LastSeen:    time.Now().UTC(),
	}
	if err := s.PresenceRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	return &dto.HeartbeatResponse{Status: "ok", Online: true}, nil
}

func (s *presenceService) ListActive(ctx context.Context) ([]*dto.ActiveUserResponse, error) {
	since := time.Now().UTC().Add(-s.Config.Coordination.ActiveWindow)

	records, err := s.PresenceRepo.ListActive(ctx, since)
	if err != nil {
		return nil, err
	}

	return lo.Map(records, func(p *presence.Presence, _ int) *dto.ActiveUserResponse {
		return dto.NewActiveUserResponse(p)
	}), nil
}
