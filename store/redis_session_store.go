package store

import (
	"context"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rental_frontend/domain"
)

const DefaultKeyPrefix = "rental_frontend:"

type SessionRedisStore struct {
	client *redis.Client
	prefix string
	tracer trace.Tracer
	logger *logrus.Logger
}

func NewSessionRedisStore(client *redis.Client, prefix string, tracer trace.Tracer, logger *logrus.Logger) domain.SessionStorage {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &SessionRedisStore{
		client: client,
		prefix: prefix,
		tracer: tracer,
		logger: logger,
	}
}

func (s *SessionRedisStore) tokenKey() string {
	return s.prefix + domain.TokenKey
}

func (s *SessionRedisStore) userKey() string {
	return s.prefix + domain.UserKey
}

func (s *SessionRedisStore) Load(ctx context.Context) (domain.PersistedSession, error) {
	ctx, span := s.tracer.Start(ctx, "SessionRedisStore.Load")
	defer span.End()

	values, err := s.client.WithContext(ctx).MGet(s.tokenKey(), s.userKey()).Result()
	if err != nil {
		span.SetStatus(codes.Error, "Error loading session")
		s.logger.Errorf("redis mget error: %s", err)
		return domain.PersistedSession{}, err
	}

	return domain.PersistedSession{
		Token: stringValue(values, 0),
		User:  stringValue(values, 1),
	}, nil
}

func (s *SessionRedisStore) Save(ctx context.Context, session domain.PersistedSession) error {
	ctx, span := s.tracer.Start(ctx, "SessionRedisStore.Save")
	defer span.End()

	_, err := s.client.WithContext(ctx).TxPipelined(func(pipe redis.Pipeliner) error {
		pipe.Set(s.tokenKey(), session.Token, 0)
		pipe.Set(s.userKey(), session.User, 0)
		return nil
	})
	if err != nil {
		span.SetStatus(codes.Error, "Error saving session")
		s.logger.Errorf("redis set error: %s", err)
		return err
	}
	return nil
}

func (s *SessionRedisStore) Clear(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "SessionRedisStore.Clear")
	defer span.End()

	if err := s.client.WithContext(ctx).Del(s.tokenKey(), s.userKey()).Err(); err != nil {
		span.SetStatus(codes.Error, "Error clearing session")
		s.logger.Errorf("redis del error: %s", err)
		return err
	}
	return nil
}

func stringValue(values []interface{}, i int) string {
	if i >= len(values) {
		return ""
	}
	value, _ := values[i].(string)
	return value
}
