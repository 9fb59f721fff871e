package drafts

import (
	"context"
	"emr-service/internal/app/contracts"
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/dto/requests"
	"emr-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type redisDraftStore struct {
	RedisRepository contracts.RedisRepository
	Expiration      time.Duration
	Log             *zap.Logger
}

func NewRedisDraftStore(redisRepository contracts.RedisRepository, expiration time.Duration, logger *zap.Logger) contracts.DraftStore {
	return &redisDraftStore{
		RedisRepository: redisRepository,
		Expiration:      expiration,
		Log:             logger,
	}
}

func (s *redisDraftStore) Save(ctx context.Context, key string, draft *requests.DraftEncounter) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	err := s.RedisRepository.Set(ctx, key, draft, s.Expiration)
	if err != nil {
		s.Log.Error("redisDraftStore.Save error calling RedisRepository.Set",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *redisDraftStore) Get(ctx context.Context, key string) (*requests.DraftEncounter, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	value, err := s.RedisRepository.Get(ctx, key)
	if err != nil {
		s.Log.Error("redisDraftStore.Get error calling RedisRepository.Get",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return nil, err
	}
	if value == "" {
		return nil, exceptions.ErrDraftNotFound
	}

	draft := new(requests.DraftEncounter)
	err = json.Unmarshal([]byte(value), draft)
	if err != nil {
		s.Log.Error("redisDraftStore.Get error unmarshaling draft",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return draft, nil
}

func (s *redisDraftStore) Delete(ctx context.Context, key string) error {
	return s.RedisRepository.Delete(ctx, key)
}
