// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"

	"accounthub/internal/accounts/adapters/http/accounts"
	"accounthub/internal/accounts/adapters/http/middleware"
	"accounthub/internal/accounts/adapters/http/sessioncookie"
	"accounthub/internal/accounts/ports/sessions"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(
	app *fiber.App,
	handler *accounts.Handler,
	sessionStore sessions.Store,
	codec *sessioncookie.Codec,
	cookieName string,
	staticDir string,
) {
	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewSessionMiddleware(sessionStore, codec, cookieName))

	// Статические файлы.
	app.Use("/static", static.New(staticDir))

	// Публичные маршруты.
	app.Get("/", handler.Home)
	app.Get("/register", handler.RegisterPage)
	app.Post("/register", handler.Register)
	app.Post("/login", handler.Login)

	// Защищенные маршруты: неаутентифицированный запрос перенаправляется
	// на корневой маршрут.
	app.Get("/profile", handler.Profile, middleware.RequireSession())
	app.Post("/edit-profile", handler.EditProfile, middleware.RequireSession())

	// Logout идемпотентен и работает без активной сессии.
	app.Post("/logout", handler.Logout)

	// Обработчик для несуществующих маршрутов.
	app.Use(handler.NotFound)
}
