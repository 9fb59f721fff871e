package workspaces

import (
	"context"
	"emr-service/internal/app/contracts"
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/exceptions"
	"emr-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Factory builds the per workspace components for a new workspace id.
type Factory func(workspaceID string) (contracts.PatientDirectory, contracts.MedicalRecordSubmission)

// Registry keeps workspaces in memory. Workspaces not used for longer than
// the idle timeout are removed by EvictIdle.
type Registry struct {
	mu          sync.RWMutex
	workspaces  map[string]*contracts.Workspace
	factory     Factory
	idleTimeout time.Duration
	now         func() time.Time
	Log         *zap.Logger
}

func NewWorkspaceRegistry(factory Factory, idleTimeout time.Duration, logger *zap.Logger) *Registry {
	return &Registry{
		workspaces:  make(map[string]*contracts.Workspace),
		factory:     factory,
		idleTimeout: idleTimeout,
		now:         time.Now,
		Log:         logger,
	}
}

func (r *Registry) Create(ctx context.Context) (*contracts.Workspace, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	id := utils.GenerateWorkspaceID()
	directory, submission := r.factory(id)
	now := r.now()
	workspace := &contracts.Workspace{
		ID:         id,
		Directory:  directory,
		Submission: submission,
		CreatedAt:  now,
		LastSeenAt: now,
	}

	r.mu.Lock()
	r.workspaces[id] = workspace
	r.mu.Unlock()

	r.Log.Info("workspaceRegistry.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkspaceIDKey, id),
	)
	snapshot := *workspace
	return &snapshot, nil
}

// Get returns a copy of the workspace and marks it as used.
func (r *Registry) Get(ctx context.Context, workspaceID string) (*contracts.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	workspace, ok := r.workspaces[workspaceID]
	if !ok {
		return nil, exceptions.ErrWorkspaceNotFound
	}
	workspace.LastSeenAt = r.now()
	snapshot := *workspace
	return &snapshot, nil
}

func (r *Registry) Close(ctx context.Context, workspaceID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	r.mu.Lock()
	workspace, ok := r.workspaces[workspaceID]
	delete(r.workspaces, workspaceID)
	r.mu.Unlock()

	if !ok {
		return exceptions.ErrWorkspaceNotFound
	}

	if workspace.Directory != nil {
		workspace.Directory.Wait()
	}
	r.Log.Info("workspaceRegistry.Close succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkspaceIDKey, workspaceID),
	)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workspaces)
}

// EvictIdle removes every workspace idle for longer than the idle timeout
// and returns how many were removed, after their background fetches have
// finished. A non positive timeout disables eviction.
func (r *Registry) EvictIdle() int {
	if r.idleTimeout <= 0 {
		return 0
	}

	deadline := r.now().Add(-r.idleTimeout)
	var idle []*contracts.Workspace

	r.mu.Lock()
	for id, workspace := range r.workspaces {
		if workspace.LastSeenAt.Before(deadline) {
			delete(r.workspaces, id)
			idle = append(idle, workspace)
		}
	}
	r.mu.Unlock()

	for _, workspace := range idle {
		if workspace.Directory != nil {
			workspace.Directory.Wait()
		}
	}
	evicted := len(idle)

	if evicted > 0 {
		r.Log.Info("workspaceRegistry.EvictIdle removed idle workspaces",
			zap.Int(constvars.LoggingEvictedCountKey, evicted),
			zap.Duration(constvars.LoggingIdleTimeoutKey, r.idleTimeout),
		)
	}
	return evicted
}

// StartJanitor runs EvictIdle every interval until the returned stop
// function is called. Stop waits for the janitor goroutine to exit.
// A non positive interval disables the janitor.
func (r *Registry) StartJanitor(interval time.Duration) (stop func()) {
	if interval <= 0 {
		return func() {}
	}
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.EvictIdle()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-exited
		})
	}
}
