// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"accounthub/internal/accounts/adapters/http/sessioncookie"
	"accounthub/internal/accounts/domain/entities"
	"accounthub/internal/accounts/ports/sessions"
	"accounthub/pkg/logger"
)

// Ключи Locals для данных сессии.
const (
	SessionUserKey = "sessionUser"
	SessionIDKey   = "sessionID"
)

// Константы для логирования.
const (
	LogInvalidSignature = "session cookie with invalid signature"
	LogSessionLoadError = "failed to load session, treating request as anonymous"
)

// NewSessionMiddleware создает промежуточное ПО, загружающее сессию запроса.
// Отсутствующая, подделанная или недоступная сессия не прерывает запрос:
// он продолжается как анонимный.
func NewSessionMiddleware(store sessions.Store, codec *sessioncookie.Codec, cookieName string) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "session"))

		raw := ctx.Cookies(cookieName)
		if raw == "" {
			return ctx.Next()
		}

		sessionID, ok := codec.Decode(raw)
		if !ok {
			log.Debug(requestCtx, LogInvalidSignature)
			return ctx.Next()
		}

		user, err := store.Get(requestCtx, sessionID)
		if err != nil {
			log.Error(requestCtx, LogSessionLoadError, zap.Error(err))
			return ctx.Next()
		}
		if user == nil {
			return ctx.Next()
		}

		ctx.Locals(SessionUserKey, user)
		ctx.Locals(SessionIDKey, sessionID)
		return ctx.Next()
	}
}

// RequireSession создает промежуточное ПО, пропускающее только запросы с
// активной сессией. Неаутентифицированные запросы молча перенаправляются
// на корневой маршрут.
func RequireSession() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		if _, ok := SessionUser(ctx); !ok {
			return ctx.Redirect().To("/")
		}
		return ctx.Next()
	}
}

// SessionUser возвращает пользователя текущей сессии.
func SessionUser(ctx fiber.Ctx) (*entities.User, bool) {
	user, ok := ctx.Locals(SessionUserKey).(*entities.User)
	return user, ok
}

// SessionID возвращает идентификатор текущей сессии.
func SessionID(ctx fiber.Ctx) (string, bool) {
	id, ok := ctx.Locals(SessionIDKey).(string)
	return id, ok
}
