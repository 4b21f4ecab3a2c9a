package session_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounthub/internal/accounts/adapters/session"
	"accounthub/internal/accounts/config"
	"accounthub/internal/accounts/domain/entities"
	"accounthub/internal/accounts/ports/sessions"
)

func mockRedisServer(t *testing.T) (*miniredis.Miniredis, *config.RedisConfig) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return s, &config.RedisConfig{
		Host:           host,
		Port:           port,
		ConnectTimeout: 2 * time.Second,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		PoolSize:       5,
	}
}

func testUser() *entities.User {
	return &entities.User{
		ID:           "user-1",
		Email:        "a@x.com",
		Username:     "alice",
		PasswordHash: "hashed",
	}
}

func TestRedisStore_CreateAndGet(t *testing.T) {
	s, redisCfg := mockRedisServer(t)
	ctx := context.Background()

	store, err := session.NewRedisStore(ctx, redisCfg, &config.SessionConfig{TTL: time.Hour})
	require.NoError(t, err)
	defer store.Close()

	sessionID, err := store.Create(ctx, testUser())
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	user, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)

	ttl := s.TTL("session:" + sessionID)
	assert.Greater(t, ttl.Seconds(), 0.0, "session key should have TTL set")
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestRedisStore_Get_MissingSession(t *testing.T) {
	_, redisCfg := mockRedisServer(t)
	ctx := context.Background()

	store, err := session.NewRedisStore(ctx, redisCfg, &config.SessionConfig{TTL: time.Hour})
	require.NoError(t, err)
	defer store.Close()

	user, err := store.Get(ctx, "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestRedisStore_Refresh(t *testing.T) {
	_, redisCfg := mockRedisServer(t)
	ctx := context.Background()

	store, err := session.NewRedisStore(ctx, redisCfg, &config.SessionConfig{TTL: time.Hour})
	require.NoError(t, err)
	defer store.Close()

	t.Run("обновляет запись существующей сессии", func(t *testing.T) {
		sessionID, err := store.Create(ctx, testUser())
		require.NoError(t, err)

		updated := testUser()
		updated.Username = "alice2"
		updated.Email = "a2@x.com"
		require.NoError(t, store.Refresh(ctx, sessionID, updated))

		user, err := store.Get(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "alice2", user.Username)
		assert.Equal(t, "a2@x.com", user.Email)
	})

	t.Run("несуществующая сессия дает ErrSessionNotFound", func(t *testing.T) {
		err := store.Refresh(ctx, "no-such-session", testUser())
		require.ErrorIs(t, err, session.ErrSessionNotFound)
	})
}

func TestRedisStore_Destroy(t *testing.T) {
	_, redisCfg := mockRedisServer(t)
	ctx := context.Background()

	store, err := session.NewRedisStore(ctx, redisCfg, &config.SessionConfig{TTL: time.Hour})
	require.NoError(t, err)
	defer store.Close()

	sessionID, err := store.Create(ctx, testUser())
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, sessionID))

	user, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Nil(t, user)

	// Повторное уничтожение той же сессии не является ошибкой.
	require.NoError(t, store.Destroy(ctx, sessionID))
}

func TestNewRedisStore_ConnectionFailure(t *testing.T) {
	ctx := context.Background()

	cfg := &config.RedisConfig{
		Host:           "nonexistent.host",
		Port:           12345,
		ConnectTimeout: 100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
	}

	store, err := session.NewRedisStore(ctx, cfg, &config.SessionConfig{TTL: time.Hour})
	assert.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

var _ sessions.Store = (*session.RedisStore)(nil)
