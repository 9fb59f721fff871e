package models

import "time"

type DomainEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	NIK         string    `json:"nik"`
	WorkspaceID string    `json:"workspace_id,omitempty"`
	Message     string    `json:"message,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
