package worker

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/riadov001/Myjantesappv2/internal/domain"
	"github.com/riadov001/Myjantesappv2/internal/service"
)

func TestSessionReaper_ReapOnce(t *testing.T) {
	sessions := service.NewFakeSessionRepository()
	ctx := context.Background()

	seed := []*domain.Session{
		{Token: "expired-1", AccountID: "acc-1", ExpiresAt: time.Now().Add(-time.Hour)},
		{Token: "expired-2", AccountID: "acc-1", ExpiresAt: time.Now().Add(-time.Minute)},
		{Token: "live", AccountID: "acc-2", ExpiresAt: time.Now().Add(time.Hour)},
	}
	for _, s := range seed {
		if err := sessions.Create(ctx, s); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}

	reaper := NewSessionReaper(sessions, time.Hour, zap.NewNop())
	reaper.ReapOnce(ctx)

	if sessions.Count() != 1 {
		t.Fatalf("session count = %d, want only the live session", sessions.Count())
	}
	if _, err := sessions.GetByToken(ctx, "live"); err != nil {
		t.Errorf("live session should survive: %v", err)
	}

	// Reaping with nothing expired is a no-op.
	reaper.ReapOnce(ctx)
	if sessions.Count() != 1 {
		t.Errorf("session count after idempotent reap = %d, want 1", sessions.Count())
	}
}
