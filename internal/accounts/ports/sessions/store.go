// Package sessions содержит интерфейс хранилища сессий.
package sessions

import (
	"context"

	"accounthub/internal/accounts/domain/entities"
)

// Store определяет операции над сессиями аутентифицированных пользователей.
// Сессия хранит полную копию записи пользователя на стороне сервера.
type Store interface {
	// Create создает новую сессию для пользователя и возвращает её идентификатор.
	Create(ctx context.Context, user *entities.User) (string, error)
	// Get возвращает пользователя сессии или nil, если сессии нет.
	Get(ctx context.Context, sessionID string) (*entities.User, error)
	// Refresh заменяет закэшированную запись пользователя в существующей сессии.
	Refresh(ctx context.Context, sessionID string, user *entities.User) error
	// Destroy удаляет сессию. Отсутствие сессии не является ошибкой.
	Destroy(ctx context.Context, sessionID string) error
	// Close закрывает соединение с хранилищем сессий.
	Close() error
}
