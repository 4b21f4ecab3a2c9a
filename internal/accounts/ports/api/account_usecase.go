// Package api содержит интерфейсы сценариев использования.
package api

import (
	"context"

	"accounthub/internal/accounts/domain/entities"
)

// AccountUseCase определяет бизнес-сценарии работы с учетными записями.
type AccountUseCase interface {
	// Register создает нового пользователя с хэшированным паролем.
	// Сессия при регистрации не создается.
	Register(ctx context.Context, username, email, password string) (*entities.User, error)
	// Login проверяет учетные данные и возвращает пользователя.
	// Несуществующий email и неверный пароль неразличимы:
	// оба возвращают entities.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*entities.User, error)
	// UpdateProfile обновляет username и email пользователя.
	UpdateProfile(ctx context.Context, userID, username, email string) (*entities.User, error)
}
