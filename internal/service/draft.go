package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/tallerhq/facturas/internal/api/dto"
	"github.com/tallerhq/facturas/internal/domain/draft"
)

// DraftService tracks who is composing a not-yet-persisted invoice for
// which client, so other users see work in flight before it lands.
type DraftService interface {
	// Register announces a draft; a user's new announcement silently
	// supersedes their previous one.
	Register(ctx context.Context, req *dto.RegisterDraftRequest) (*dto.DraftResponse, error)
	List(ctx context.Context) ([]*dto.DraftResponse, error)
	// Clear removes the user's announcement; clearing an absent one is
	// a no-op.
	Clear(ctx context.Context, userID int64) error
}

type draftService struct {
	ServiceParams
}

// NewDraftService creates a new draft service
func NewDraftService(params ServiceParams) DraftService {
	return &draftService{ServiceParams: params}
}

func (s *draftService) Register(ctx context.Context, req *dto.RegisterDraftRequest) (*dto.DraftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	d := &draft.Draft{
		UserID:     req.UserID,
		ClientName: req.ClientName,
		StartedAt:  time.Now().UTC(),
	}
	if err := s.DraftRepo.Upsert(ctx, d); err != nil {
		return nil, err
	}

	return dto.NewDraftResponse(d, s.userName(ctx, d.UserID)), nil
}

func (s *draftService) List(ctx context.Context) ([]*dto.DraftResponse, error) {
	drafts, err := s.DraftRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return lo.Map(drafts, func(d *draft.Draft, _ int) *dto.DraftResponse {
		return dto.NewDraftResponse(d, s.userName(ctx, d.UserID))
	}), nil
}

func (s *draftService) Clear(ctx context.Context, userID int64) error {
	return s.DraftRepo.Delete(ctx, userID)
}

func (s *draftService) userName(ctx context.Context, userID int64) string {
	p, err := s.PresenceRepo.Get(ctx, userID)
	if err != nil {
		return ""
	}
	return p.DisplayName
}
