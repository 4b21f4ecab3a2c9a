// Package repositories содержит интерфейсы репозиториев для работы с хранилищем.
package repositories

import (
	"context"

	"accounthub/internal/accounts/domain/entities"
)

// UserRepository определяет операции над записями пользователей.
type UserRepository interface {
	// Create создает нового пользователя и возвращает созданную запись.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	// FindByID находит пользователя по идентификатору.
	FindByID(ctx context.Context, id string) (*entities.User, error)
	// FindByEmail находит пользователя по email.
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	// UpdateProfile обновляет username и email пользователя,
	// не затрагивая учетные данные.
	UpdateProfile(ctx context.Context, id, username, email string) (*entities.User, error)
}
