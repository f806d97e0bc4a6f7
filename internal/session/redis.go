package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BoualamHamza/InterviewSim/internal/models"
)

const sessionKeyPrefix = "interview:session:"

// RedisStore keeps sessions in Redis so several replicas can share the
// registry. Sessions are stored as JSON with the store's TTL, refreshed on
// every write.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, id, jobDescription string, role models.InterviewerRole) (*models.Session, error) {
	sess := &models.Session{
		ID:             id,
		JobDescription: jobDescription,
		Role:           role,
		Log:            []models.Turn{},
		CreatedAt:      time.Now(),
	}
	if err := s.write(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, session *models.Session) error {
	exists, err := s.rdb.Exists(ctx, sessionKeyPrefix+session.ID).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}
	return s.write(ctx, session)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

func (s *RedisStore) write(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKeyPrefix+session.ID, data, s.ttl).Err()
}
