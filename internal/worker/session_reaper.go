package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/riadov001/Myjantesappv2/internal/repository"
)

// SessionReaper periodically deletes expired session rows. Expired sessions
// are already invisible to resolution, so the reaper only bounds storage
// growth; each run is idempotent.
type SessionReaper struct {
	sessions repository.SessionRepository
	logger   *zap.Logger
	interval time.Duration
}

// NewSessionReaper constructs the reaper.
func NewSessionReaper(sessions repository.SessionRepository, interval time.Duration, logger *zap.Logger) *SessionReaper {
	return &SessionReaper{sessions: sessions, logger: logger, interval: interval}
}

// Run reaps on the configured interval until the context is cancelled.
func (r *SessionReaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.ReapOnce(ctx)
		}
	}
}

// ReapOnce deletes currently expired sessions.
func (r *SessionReaper) ReapOnce(ctx context.Context) {
	deleted, err := r.sessions.DeleteExpired(ctx)
	if err != nil {
		r.logger.Error("session reap failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		r.logger.Info("expired sessions reaped", zap.Int64("deleted", deleted))
	}
}
