package drafts

import (
	"context"
	"emr-service/internal/app/contracts"
	"emr-service/internal/pkg/dto/requests"
	"emr-service/internal/pkg/exceptions"
	"sync"
	"time"
)

type storedDraft struct {
	draft     requests.DraftEncounter
	expiresAt time.Time
}

type memoryDraftStore struct {
	mu         sync.Mutex
	drafts     map[string]storedDraft
	expiration time.Duration
	now        func() time.Time
}

// NewMemoryDraftStore keeps drafts in process. A zero expiration keeps them
// until they are deleted.
func NewMemoryDraftStore(expiration time.Duration) contracts.DraftStore {
	return &memoryDraftStore{
		drafts:     make(map[string]storedDraft),
		expiration: expiration,
		now:        time.Now,
	}
}

func (s *memoryDraftStore) Save(ctx context.Context, key string, draft *requests.DraftEncounter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := storedDraft{draft: *draft}
	if s.expiration > 0 {
		stored.expiresAt = s.now().Add(s.expiration)
	}
	s.drafts[key] = stored
	return nil
}

func (s *memoryDraftStore) Get(ctx context.Context, key string) (*requests.DraftEncounter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.drafts[key]
	if !ok {
		return nil, exceptions.ErrDraftNotFound
	}
	if !stored.expiresAt.IsZero() && !s.now().Before(stored.expiresAt) {
		delete(s.drafts, key)
		return nil, exceptions.ErrDraftNotFound
	}

	draft := stored.draft
	return &draft, nil
}

func (s *memoryDraftStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.drafts, key)
	s.mu.Unlock()
	return nil
}
