package contracts

import (
	"context"
	"time"
)

// Workspace is the server side state of one record screen: its own fetch
// state and its own submission workflow.
type Workspace struct {
	ID         string
	Directory  PatientDirectory
	Submission MedicalRecordSubmission
	CreatedAt  time.Time
	LastSeenAt time.Time
}

type WorkspaceRegistry interface {
	Create(ctx context.Context) (*Workspace, error)
	Get(ctx context.Context, workspaceID string) (*Workspace, error)
	Close(ctx context.Context, workspaceID string) error
}
