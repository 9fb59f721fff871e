package workspaces

import (
	"context"
	"emr-service/internal/app/contracts"
	"emr-service/internal/app/models"
	"emr-service/internal/pkg/exceptions"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func nilFactory(workspaceID string) (contracts.PatientDirectory, contracts.MedicalRecordSubmission) {
	return nil, nil
}

type waitingDirectory struct {
	mu    sync.Mutex
	waits int
}

func (d *waitingDirectory) Fetch(ctx context.Context, nik string) (*models.PatientRecord, error) {
	return nil, nil
}

func (d *waitingDirectory) SetNIK(ctx context.Context, nik string) {}

func (d *waitingDirectory) State() models.FetchState {
	return models.FetchState{}
}

func (d *waitingDirectory) Subscribe(observer func(models.FetchState)) func() {
	return func() {}
}

func (d *waitingDirectory) Wait() {
	d.mu.Lock()
	d.waits++
	d.mu.Unlock()
}

func (d *waitingDirectory) waitCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.waits
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestRegistry_Lifecycle(t *testing.T) {
	ctx := context.Background()
	var factoryIDs []string
	registry := NewWorkspaceRegistry(func(workspaceID string) (contracts.PatientDirectory, contracts.MedicalRecordSubmission) {
		factoryIDs = append(factoryIDs, workspaceID)
		return nil, nil
	}, time.Minute, zap.NewNop())

	t.Run("Create And Get", func(t *testing.T) {
		workspace, err := registry.Create(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, workspace.ID)
		assert.Contains(t, factoryIDs, workspace.ID)

		found, err := registry.Get(ctx, workspace.ID)
		require.NoError(t, err)
		assert.Equal(t, workspace.ID, found.ID)
	})

	t.Run("Workspaces Are Independent", func(t *testing.T) {
		first, err := registry.Create(ctx)
		require.NoError(t, err)
		second, err := registry.Create(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("Close Removes Workspace", func(t *testing.T) {
		workspace, err := registry.Create(ctx)
		require.NoError(t, err)

		require.NoError(t, registry.Close(ctx, workspace.ID))

		_, err = registry.Get(ctx, workspace.ID)
		assert.ErrorIs(t, err, exceptions.ErrWorkspaceNotFound)
		assert.ErrorIs(t, registry.Close(ctx, workspace.ID), exceptions.ErrWorkspaceNotFound)
	})

	t.Run("Unknown Workspace", func(t *testing.T) {
		_, err := registry.Get(ctx, "does-not-exist")
		assert.ErrorIs(t, err, exceptions.ErrWorkspaceNotFound)
	})
}

func TestRegistry_EvictIdle(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
	registry := NewWorkspaceRegistry(nilFactory, 30*time.Minute, zap.NewNop())
	registry.now = clock.Now

	idle, err := registry.Create(ctx)
	require.NoError(t, err)
	active, err := registry.Create(ctx)
	require.NoError(t, err)

	clock.Advance(20 * time.Minute)
	_, err = registry.Get(ctx, active.ID)
	require.NoError(t, err)

	clock.Advance(15 * time.Minute)
	assert.Equal(t, 1, registry.EvictIdle())

	_, err = registry.Get(ctx, idle.ID)
	assert.ErrorIs(t, err, exceptions.ErrWorkspaceNotFound)
	_, err = registry.Get(ctx, active.ID)
	assert.NoError(t, err)
}

func TestRegistry_EvictIdleWaitsForBackgroundFetches(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
	directories := map[string]*waitingDirectory{}
	registry := NewWorkspaceRegistry(func(workspaceID string) (contracts.PatientDirectory, contracts.MedicalRecordSubmission) {
		directory := &waitingDirectory{}
		directories[workspaceID] = directory
		return directory, nil
	}, 30*time.Minute, zap.NewNop())
	registry.now = clock.Now

	idle, err := registry.Create(ctx)
	require.NoError(t, err)
	clock.Advance(31 * time.Minute)
	active, err := registry.Create(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, registry.EvictIdle())
	assert.Equal(t, 1, directories[idle.ID].waitCount())
	assert.Equal(t, 0, directories[active.ID].waitCount())
}

func TestRegistry_EvictIdleDisabled(t *testing.T) {
	registry := NewWorkspaceRegistry(nilFactory, 0, zap.NewNop())
	_, err := registry.Create(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, registry.EvictIdle())
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_StartJanitor(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
	registry := NewWorkspaceRegistry(nilFactory, time.Minute, zap.NewNop())
	registry.now = clock.Now

	_, err := registry.Create(context.Background())
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)

	stop := registry.StartJanitor(5 * time.Millisecond)
	defer stop()

	assert.Eventually(t, func() bool {
		return registry.Len() == 0
	}, time.Second, 5*time.Millisecond)

	stop()
}
