package service

import (
	"context"
	"time"
)

// Housekeeper reclaims coordination state left behind by crashed or
// disconnected clients. It runs on a fixed ticker independent of client
// traffic, so stale locks and drafts expire even when nobody is sending
// heartbeats.
type Housekeeper struct {
	ServiceParams

	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewHousekeeper creates a new housekeeper
func NewHousekeeper(params ServiceParams) *Housekeeper {
	return &Housekeeper{
		ServiceParams: params,
		interval:      params.Config.Coordination.SweepInterval,
	}
}

// Start launches the background sweep loop. It is idempotent.
func (h *Housekeeper) Start() {
	if h.ctx != nil {
		return
	}
	h.ctx, h.cancel = context.WithCancel(context.Background())
	h.done = make(chan struct{})
	go h.run()
	h.Logger.Infow("housekeeper started", "interval", h.interval)
}

// Stop terminates the sweep loop and waits for the in-flight sweep to
// finish.
func (h *Housekeeper) Stop() {
	if h.cancel == nil {
		return
	}
	h.cancel()
	<-h.done
	h.ctx, h.cancel = nil, nil
	h.Logger.Infow("housekeeper stopped")
}

func (h *Housekeeper) run() {
	defer close(h.done)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.Sweep(h.ctx, time.Now().UTC())
		}
	}
}

// Sweep performs one cleanup pass at the given instant. Errors are
// logged and swallowed; a failed pass is retried on the next tick.
func (h *Housekeeper) Sweep(ctx context.Context, now time.Time) {
	cfg := h.Config.Coordination

	if n, err := h.LockRepo.DeleteStale(ctx, now.Add(-cfg.LockTTL)); err != nil {
		h.Logger.Errorw("failed to sweep stale locks", "error", err)
	} else if n > 0 {
		h.Logger.Infow("released stale locks", "count", n)
	}

	if n, err := h.DraftRepo.DeleteStale(ctx, now.Add(-cfg.DraftTTL)); err != nil {
		h.Logger.Errorw("failed to sweep stale drafts", "error", err)
	} else if n > 0 {
		h.Logger.Infow("cleared stale drafts", "count", n)
	}

	// Users gone for two full active windows are treated as departed;
	// whatever they still held is released with them.
	gone, err := h.PresenceRepo.DeleteStale(ctx, now.Add(-2*cfg.ActiveWindow))
	if err != nil {
		h.Logger.Errorw("failed to sweep stale presence", "error", err)
		return
	}
	if len(gone) == 0 {
		return
	}

	h.Logger.Infow("removed departed users", "user_ids", gone)
	if _, err := h.LockRepo.DeleteByUsers(ctx, gone); err != nil {
		h.Logger.Errorw("failed to release locks of departed users", "error", err)
	}
	if _, err := h.DraftRepo.DeleteByUsers(ctx, gone); err != nil {
		h.Logger.Errorw("failed to clear drafts of departed users", "error", err)
	}
}
