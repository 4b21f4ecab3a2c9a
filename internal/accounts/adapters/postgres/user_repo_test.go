package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounthub/internal/accounts/adapters/postgres"
	"accounthub/internal/accounts/domain/entities"
	"accounthub/pkg/logger"
)

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func userColumns() []string {
	return []string{"id", "email", "username", "password_hash", "created_at", "updated_at"}
}

func TestUserRepository_Create(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	inputUser := &entities.User{
		Email:        "a@x.com",
		Username:     "alice",
		PasswordHash: "hashed_password",
	}

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(inputUser.Email, inputUser.Username, inputUser.PasswordHash).
			WillReturnRows(
				pgxmock.NewRows(userColumns()).
					AddRow("generated-uuid", inputUser.Email, inputUser.Username, inputUser.PasswordHash, now, now),
			)

		repo := postgres.NewUserRepository(mock)
		createdUser, err := repo.Create(ctx, inputUser)

		require.NoError(t, err)
		assert.Equal(t, "generated-uuid", createdUser.ID)
		assert.Equal(t, inputUser.Email, createdUser.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Дубликат email преобразуется в доменную ошибку", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(inputUser.Email, inputUser.Username, inputUser.PasswordHash).
			WillReturnError(&pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_email_key",
			})

		repo := postgres.NewUserRepository(mock)
		createdUser, err := repo.Create(ctx, inputUser)

		require.ErrorIs(t, err, entities.ErrEmailTaken)
		assert.Nil(t, createdUser)
	})

	t.Run("Дубликат username преобразуется в доменную ошибку", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(inputUser.Email, inputUser.Username, inputUser.PasswordHash).
			WillReturnError(&pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_username_key",
			})

		repo := postgres.NewUserRepository(mock)
		createdUser, err := repo.Create(ctx, inputUser)

		require.ErrorIs(t, err, entities.ErrUsernameTaken)
		assert.Nil(t, createdUser)
	})

	t.Run("Прочие ошибки хранилища оборачиваются как есть", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		storeErr := errors.New("connection reset")
		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(inputUser.Email, inputUser.Username, inputUser.PasswordHash).
			WillReturnError(storeErr)

		repo := postgres.NewUserRepository(mock)
		createdUser, err := repo.Create(ctx, inputUser)

		require.ErrorIs(t, err, storeErr)
		assert.Nil(t, createdUser)
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Пользователь найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM users .+").
			WithArgs("a@x.com").
			WillReturnRows(
				pgxmock.NewRows(userColumns()).
					AddRow("user-1", "a@x.com", "alice", "hashed", now, now),
			)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByEmail(ctx, "a@x.com")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("Отсутствие строки дает ErrUserNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM users .+").
			WithArgs("missing@x.com").
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByEmail(ctx, "missing@x.com")

		require.ErrorIs(t, err, entities.ErrUserNotFound)
		assert.Nil(t, user)
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Пользователь найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM users .+").
			WithArgs("user-1").
			WillReturnRows(
				pgxmock.NewRows(userColumns()).
					AddRow("user-1", "a@x.com", "alice", "hashed", now, now),
			)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByID(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, "a@x.com", user.Email)
	})

	t.Run("Отсутствие строки дает ErrUserNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM users .+").
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByID(ctx, "missing")

		require.ErrorIs(t, err, entities.ErrUserNotFound)
		assert.Nil(t, user)
	})
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Обновляются только username и email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE users .+").
			WithArgs("user-1", "alice2", "a2@x.com", pgxmock.AnyArg()).
			WillReturnRows(
				pgxmock.NewRows(userColumns()).
					AddRow("user-1", "a2@x.com", "alice2", "hashed", now, now),
			)

		repo := postgres.NewUserRepository(mock)
		updatedUser, err := repo.UpdateProfile(ctx, "user-1", "alice2", "a2@x.com")

		require.NoError(t, err)
		assert.Equal(t, "alice2", updatedUser.Username)
		assert.Equal(t, "a2@x.com", updatedUser.Email)
		assert.Equal(t, "hashed", updatedUser.PasswordHash)
	})

	t.Run("Занятый email преобразуется в доменную ошибку", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE users .+").
			WithArgs("user-1", "alice2", "taken@x.com", pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_email_key",
			})

		repo := postgres.NewUserRepository(mock)
		updatedUser, err := repo.UpdateProfile(ctx, "user-1", "alice2", "taken@x.com")

		require.ErrorIs(t, err, entities.ErrEmailTaken)
		assert.Nil(t, updatedUser)
	})

	t.Run("Несуществующий пользователь дает ErrUserNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE users .+").
			WithArgs("missing", "alice2", "a2@x.com", pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)
		updatedUser, err := repo.UpdateProfile(ctx, "missing", "alice2", "a2@x.com")

		require.ErrorIs(t, err, entities.ErrUserNotFound)
		assert.Nil(t, updatedUser)
	})
}
