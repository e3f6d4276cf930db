package events

import (
	"context"

	"go.uber.org/zap"
)

// RegisterAuditLog subscribes a structured-log handler for every auth event.
// This is the audit trail for account creation, linking and session
// revocation; payload detail stays server-side.
func RegisterAuditLog(dispatcher Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, event Event) error {
		logger.Info("auth event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("account_id", event.AccountID),
			zap.Time("at", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	for _, eventType := range []EventType{
		EventAccountRegistered,
		EventAccountLoggedIn,
		EventAccountLinked,
		EventSessionRevoked,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
