package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounthub/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	t.Run("создает logger для development окружения", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("создает logger для production окружения", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Production, "")
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("возвращает ошибку для неизвестного уровня", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "loud")
		require.Error(t, err)
		assert.Nil(t, log)
	})
}

func TestLog_FromContext(t *testing.T) {
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	ctx := logger.NewContext(context.Background(), testLogger)

	assert.Same(t, testLogger, logger.Log(ctx))

	fromCtx, err := logger.FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, testLogger, fromCtx)
}

func TestLog_FallbackWithoutContextLogger(t *testing.T) {
	log := logger.Log(context.Background())
	assert.NotNil(t, log, "fallback logger must always be available")

	_, err := logger.FromContext(context.Background())
	assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
}

func TestRequestIDContext(t *testing.T) {
	t.Run("сохраняет переданный идентификатор", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-1")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-1", id)
	})

	t.Run("генерирует идентификатор при пустом значении", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.NotEmpty(t, id)
	})
}
