package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventSubmissionStarted   EventType = "submission.started"
	EventSubmissionPageSaved EventType = "submission.page_saved"
	EventSubmissionCompleted EventType = "submission.completed"
)

// SubmissionEvent is published as a submission moves through the page
// state machine. Completed events carry the metric keys that were
// computed so downstream consumers can react without re-reading
// storage.
type SubmissionEvent struct {
	ID           string    `json:"id"`
	Type         EventType `json:"type"`
	Source       string    `json:"source"`
	Timestamp    time.Time `json:"timestamp"`
	UserID       string    `json:"user_id"`
	SubmissionID uint      `json:"submission_id"`
	InventoryID  int       `json:"inventory_id"`
	Page         int       `json:"page"`
	MetricKeys   []string  `json:"metric_keys,omitempty"`
}

// NewSubmissionEvent builds an event envelope with a fresh ID and the
// current timestamp.
func NewSubmissionEvent(eventType EventType, userID string, submissionID uint, inventoryID, page int) *SubmissionEvent {
	return &SubmissionEvent{
		ID:           uuid.New().String(),
		Type:         eventType,
		Source:       "inventory-service",
		Timestamp:    time.Now().UTC(),
		UserID:       userID,
		SubmissionID: submissionID,
		InventoryID:  inventoryID,
		Page:         page,
	}
}
