// Package services содержит интерфейсы вспомогательных сервисов.
package services

import "context"

// PasswordService определяет операции хэширования и проверки паролей.
type PasswordService interface {
	// Hash возвращает одностороннее хэш-представление пароля.
	Hash(ctx context.Context, password string) (string, error)
	// Verify сравнивает пароль с хэшем через примитив библиотеки хэширования.
	Verify(ctx context.Context, password, hash string) (bool, error)
}
