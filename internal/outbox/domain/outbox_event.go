// Package domain defines transactional outbox events.
//
// Events are written in the same transaction as the state change they describe and are
// delivered later by the outbox worker.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEventStatus is the delivery state of an outbox event.
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	OutboxEventStatusFailed    OutboxEventStatus = "failed"
)

// OutboxEvent is a pending or delivered domain event. Payload is JSON.
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   string
	Payload     string
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MarkProcessed records a successful delivery.
func (e *OutboxEvent) MarkProcessed(at time.Time) {
	e.Status = OutboxEventStatusProcessed
	e.ProcessedAt = &at
	e.LastError = nil
}

// RecordFailure counts a failed delivery attempt. The event becomes failed once
// Retries reaches maxRetries and is no longer picked up.
func (e *OutboxEvent) RecordFailure(err error, maxRetries int) {
	e.Retries++
	msg := err.Error()
	e.LastError = &msg
	if e.Retries >= maxRetries {
		e.Status = OutboxEventStatusFailed
	}
}
