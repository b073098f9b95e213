package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identityDomain "github.com/allisson/idvault/internal/identity/domain"
)

func TestDefaultEventProcessor_Process(t *testing.T) {
	ctx := context.Background()
	documentID := uuid.Must(uuid.NewV7())
	payload, err := json.Marshal(identityDomain.IdentityDocumentEvent{
		ID:          documentID,
		SubjectRef:  "customer-42",
		Fingerprint: "f00d",
	})
	require.NoError(t, err)

	for _, eventType := range []string{
		identityDomain.EventIdentityDocumentRegistered,
		identityDomain.EventIdentityDocumentDeleted,
	} {
		t.Run(eventType, func(t *testing.T) {
			var buf bytes.Buffer
			processor := NewDefaultEventProcessor(slog.New(slog.NewJSONHandler(&buf, nil)))

			event := newPendingEvent(eventType)
			event.Payload = string(payload)

			require.NoError(t, processor.Process(ctx, event))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "INFO", entry["level"])
			assert.Equal(t, eventType, entry["event_type"])
			assert.Equal(t, documentID.String(), entry["document_id"])
			assert.Equal(t, "customer-42", entry["subject_ref"])
		})
	}

	t.Run("UnknownTypeIsAcknowledged", func(t *testing.T) {
		var buf bytes.Buffer
		processor := NewDefaultEventProcessor(slog.New(slog.NewJSONHandler(&buf, nil)))

		require.NoError(t, processor.Process(ctx, newPendingEvent("client.created")))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "client.created", entry["event_type"])
	})

	t.Run("InvalidPayload", func(t *testing.T) {
		processor := NewDefaultEventProcessor(slog.New(slog.DiscardHandler))

		event := newPendingEvent(identityDomain.EventIdentityDocumentRegistered)
		event.Payload = "{not json"

		err := processor.Process(ctx, event)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid payload for identity_document.registered")
	})

	t.Run("PayloadNeverCarriesIdentifier", func(t *testing.T) {
		var fields map[string]any
		require.NoError(t, json.Unmarshal(payload, &fields))
		assert.ElementsMatch(t, []string{"id", "subject_ref", "fingerprint"}, keys(fields))
	})
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

