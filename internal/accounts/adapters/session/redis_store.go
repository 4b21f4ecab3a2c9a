// Package session содержит реализацию хранилища сессий на Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"accounthub/internal/accounts/config"
	"accounthub/internal/accounts/domain/entities"
	"accounthub/internal/accounts/ports/sessions"
	"accounthub/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodCreate  = "create"
	LogMethodGet     = "get"
	LogMethodRefresh = "refresh"
	LogMethodDestroy = "destroy"

	ErrorFailedToConnect = "failed to connect to redis"
	ErrorFailedToCreate  = "failed to create session in redis"
	ErrorFailedToGet     = "failed to get session from redis"
	ErrorFailedToRefresh = "failed to refresh session in redis"
	ErrorFailedToDestroy = "failed to destroy session in redis"
	ErrorFailedToClose   = "failed to close redis connection"
	ErrorFailedToEncode  = "failed to encode session payload"
	ErrorFailedToDecode  = "failed to decode session payload"
)

const sessionKeyPrefix = "session:"

// ErrSessionNotFound возвращается при обновлении несуществующей сессии.
var ErrSessionNotFound = errors.New("session not found")

// RedisStore реализует интерфейс sessions.Store с использованием Redis.
// Значением сессии является JSON полной записи пользователя.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore создает новое хранилище сессий.
func NewRedisStore(ctx context.Context, cfg *config.RedisConfig, sessionCfg *config.SessionConfig) (sessions.Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddress(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.ConnectTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConnect, err)
	}

	return &RedisStore{
		client: client,
		ttl:    sessionCfg.TTL,
	}, nil
}

// Create создает новую сессию для пользователя и возвращает её идентификатор.
func (s *RedisStore) Create(ctx context.Context, user *entities.User) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodCreate))

	payload, err := json.Marshal(user)
	if err != nil {
		log.Error(ctx, ErrorFailedToEncode, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToEncode, err)
	}

	sessionID := uuid.New().String()
	if err := s.client.Set(ctx, sessionKeyPrefix+sessionID, payload, s.ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToCreate, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToCreate, err)
	}

	return sessionID, nil
}

// Get возвращает пользователя сессии или nil, если сессии нет.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet))

	payload, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	var user entities.User
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		log.Error(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}

	return &user, nil
}

// Refresh заменяет закэшированную запись пользователя в существующей сессии,
// сохраняя оставшееся время жизни ключа.
func (s *RedisStore) Refresh(ctx context.Context, sessionID string, user *entities.User) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRefresh))

	payload, err := json.Marshal(user)
	if err != nil {
		log.Error(ctx, ErrorFailedToEncode, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToEncode, err)
	}

	updated, err := s.client.SetXX(ctx, sessionKeyPrefix+sessionID, payload, redis.KeepTTL).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToRefresh, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToRefresh, err)
	}
	if !updated {
		return ErrSessionNotFound
	}

	return nil
}

// Destroy удаляет сессию. Отсутствие ключа не является ошибкой.
func (s *RedisStore) Destroy(ctx context.Context, sessionID string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDestroy))

	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		log.Error(ctx, ErrorFailedToDestroy, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDestroy, err)
	}

	return nil
}

// Close закрывает соединение с Redis.
func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
