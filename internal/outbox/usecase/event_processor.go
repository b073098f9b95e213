package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	apperrors "github.com/allisson/idvault/internal/errors"
	identityDomain "github.com/allisson/idvault/internal/identity/domain"
	"github.com/allisson/idvault/internal/outbox/domain"
)

// DefaultEventProcessor logs identity document events. Unknown event types are logged
// at warn level and acknowledged.
type DefaultEventProcessor struct {
	logger *slog.Logger
}

// NewDefaultEventProcessor creates a new DefaultEventProcessor.
func NewDefaultEventProcessor(logger *slog.Logger) *DefaultEventProcessor {
	return &DefaultEventProcessor{logger: logger}
}

// Process decodes the payload of known event types and logs it.
func (p *DefaultEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	switch event.EventType {
	case identityDomain.EventIdentityDocumentRegistered, identityDomain.EventIdentityDocumentDeleted:
		var payload identityDomain.IdentityDocumentEvent
		if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
			return apperrors.Wrapf(err, "invalid payload for %s", event.EventType)
		}

		p.logger.InfoContext(ctx, "identity document event",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", event.EventType),
			slog.String("document_id", payload.ID.String()),
			slog.String("subject_ref", payload.SubjectRef),
		)
	default:
		p.logger.WarnContext(ctx, "unknown outbox event type",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", event.EventType),
		)
	}
	return nil
}
