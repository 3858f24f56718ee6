package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type redisKeyValueStorage struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

// NewRedisKeyValueStorage stores values with the given ttl; zero keeps them forever.
func NewRedisKeyValueStorage(client *redis.Client, ttl time.Duration, logger *logrus.Logger) domain.KeyValueStorage {
	return &redisKeyValueStorage{
		client: client,
		ttl:    ttl,
		log:    logger,
	}
}

func (s *redisKeyValueStorage) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrKeyNotFound
		}
		s.log.Errorf("Repository: Failed to read key %s from redis: %v", key, err)
		return "", fmt.Errorf("could not read key %s: %w", key, err)
	}
	return v, nil
}

func (s *redisKeyValueStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		s.log.Errorf("Repository: Failed to write key %s to redis: %v", key, err)
		return fmt.Errorf("could not write key %s: %w", key, err)
	}
	return nil
}

func (s *redisKeyValueStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.log.Errorf("Repository: Failed to delete key %s from redis: %v", key, err)
		return fmt.Errorf("could not delete key %s: %w", key, err)
	}
	return nil
}
