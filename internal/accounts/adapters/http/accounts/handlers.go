// Package accounts содержит HTTP обработчики учетных записей.
package accounts

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"accounthub/internal/accounts/adapters/http/middleware"
	"accounthub/internal/accounts/adapters/http/sessioncookie"
	"accounthub/internal/accounts/adapters/http/views"
	"accounthub/internal/accounts/app/dto"
	"accounthub/internal/accounts/domain/entities"
	"accounthub/internal/accounts/ports/api"
	"accounthub/internal/accounts/ports/sessions"
	"accounthub/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerHome        = "accounts handler: home"
	LogHandlerRegister    = "accounts handler: register"
	LogHandlerLogin       = "accounts handler: login"
	LogHandlerProfile     = "accounts handler: profile"
	LogHandlerEditProfile = "accounts handler: edit profile"
	LogHandlerLogout      = "accounts handler: logout"

	ErrorInvalidForm    = "invalid form data"
	ErrorFailedToRender = "failed to render view"
	ErrorCreateSession  = "failed to create session"
	ErrorRefreshSession = "failed to refresh session"
	ErrorDestroySession = "failed to destroy session"
)

// Сообщения об ошибках, отображаемые пользователю.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgRegisterErrPrefix  = "Error registering user: "
	MsgLoginErrPrefix     = "Error logging in: "
	MsgUpdateErrPrefix    = "Error updating profile: "
)

// Handler содержит HTTP обработчики учетных записей.
type Handler struct {
	accounts   api.AccountUseCase
	sessions   sessions.Store
	codec      *sessioncookie.Codec
	renderer   *views.Renderer
	cookieName string
	sessionTTL time.Duration
}

// NewHandler создает новый экземпляр обработчика учетных записей.
func NewHandler(
	accounts api.AccountUseCase,
	sessionStore sessions.Store,
	codec *sessioncookie.Codec,
	renderer *views.Renderer,
	cookieName string,
	sessionTTL time.Duration,
) *Handler {
	return &Handler{
		accounts:   accounts,
		sessions:   sessionStore,
		codec:      codec,
		renderer:   renderer,
		cookieName: cookieName,
		sessionTTL: sessionTTL,
	}
}

// Home обрабатывает корневой маршрут: активная сессия перенаправляется на
// профиль, анонимный запрос получает страницу входа.
func (h *Handler) Home(ctx fiber.Ctx) error {
	if _, ok := middleware.SessionUser(ctx); ok {
		return ctx.Redirect().To("/profile")
	}
	return h.render(ctx, fiber.StatusOK, views.Login, views.LoginData{})
}

// RegisterPage отображает форму регистрации.
func (h *Handler) RegisterPage(ctx fiber.Ctx) error {
	return h.render(ctx, fiber.StatusOK, views.Register, views.RegisterData{})
}

// Register обрабатывает отправку формы регистрации.
// Сессия при регистрации не создается: пользователь возвращается на вход.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var form dto.RegisterForm
	if err := ctx.Bind().Form(&form); err != nil {
		log.Debug(requestCtx, ErrorInvalidForm, zap.Error(err))
		return h.render(ctx, fiber.StatusBadRequest, views.Register,
			views.RegisterData{Error: MsgRegisterErrPrefix + err.Error()})
	}

	if _, err := h.accounts.Register(requestCtx, form.Username, form.Email, form.Password); err != nil {
		return h.render(ctx, fiber.StatusOK, views.Register,
			views.RegisterData{Error: MsgRegisterErrPrefix + err.Error()})
	}

	return ctx.Redirect().To("/")
}

// Login обрабатывает отправку формы входа. Несуществующий email и неверный
// пароль дают одинаковый ответ; при успехе создается сессия с полной
// копией записи пользователя и подписанная cookie.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var form dto.LoginForm
	if err := ctx.Bind().Form(&form); err != nil {
		log.Debug(requestCtx, ErrorInvalidForm, zap.Error(err))
		return h.render(ctx, fiber.StatusBadRequest, views.Login,
			views.LoginData{Error: MsgLoginErrPrefix + err.Error()})
	}

	user, err := h.accounts.Login(requestCtx, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidCredentials) {
			return h.render(ctx, fiber.StatusOK, views.Login,
				views.LoginData{Error: MsgInvalidCredentials})
		}
		return h.render(ctx, fiber.StatusOK, views.Login,
			views.LoginData{Error: MsgLoginErrPrefix + err.Error()})
	}

	sessionID, err := h.sessions.Create(requestCtx, user)
	if err != nil {
		log.Error(requestCtx, ErrorCreateSession, zap.Error(err))
		return h.render(ctx, fiber.StatusOK, views.Login,
			views.LoginData{Error: MsgLoginErrPrefix + err.Error()})
	}

	h.setSessionCookie(ctx, sessionID)
	return ctx.Redirect().To("/profile")
}

// Profile отображает профиль из кэша сессии без обращения к хранилищу.
func (h *Handler) Profile(ctx fiber.Ctx) error {
	user, _ := middleware.SessionUser(ctx)
	return h.render(ctx, fiber.StatusOK, views.Profile, views.ProfileData{User: user})
}

// EditProfile обновляет username и email пользователя сессии. При успехе
// закэшированная в сессии запись заменяется обновленной; при ошибке профиль
// перерисовывается со старой записью и текстом ошибки.
func (h *Handler) EditProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerEditProfile)

	sessionUser, _ := middleware.SessionUser(ctx)

	var form dto.EditProfileForm
	if err := ctx.Bind().Form(&form); err != nil {
		log.Debug(requestCtx, ErrorInvalidForm, zap.Error(err))
		return h.render(ctx, fiber.StatusBadRequest, views.Profile,
			views.ProfileData{User: sessionUser, Error: MsgUpdateErrPrefix + err.Error()})
	}

	updatedUser, err := h.accounts.UpdateProfile(requestCtx, sessionUser.ID, form.Username, form.Email)
	if err != nil {
		return h.render(ctx, fiber.StatusOK, views.Profile,
			views.ProfileData{User: sessionUser, Error: MsgUpdateErrPrefix + err.Error()})
	}

	if sessionID, ok := middleware.SessionID(ctx); ok {
		if err := h.sessions.Refresh(requestCtx, sessionID, updatedUser); err != nil {
			log.Error(requestCtx, ErrorRefreshSession, zap.Error(err))
			return h.render(ctx, fiber.StatusOK, views.Profile,
				views.ProfileData{User: sessionUser, Error: MsgUpdateErrPrefix + err.Error()})
		}
	}

	return ctx.Redirect().To("/profile")
}

// Logout уничтожает сессию и cookie. Без активной сессии безвреден.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	if sessionID, ok := middleware.SessionID(ctx); ok {
		if err := h.sessions.Destroy(requestCtx, sessionID); err != nil {
			log.Error(requestCtx, ErrorDestroySession, zap.Error(err))
		}
	}

	h.expireSessionCookie(ctx)
	return ctx.Redirect().To("/")
}

// NotFound отображает страницу 404 для несуществующих маршрутов.
func (h *Handler) NotFound(ctx fiber.Ctx) error {
	return h.render(ctx, fiber.StatusNotFound, views.NotFound, nil)
}

func (h *Handler) render(ctx fiber.Ctx, status int, view string, data any) error {
	body, err := h.renderer.Render(view, data)
	if err != nil {
		logger.Log(ctx.Context()).Error(ctx.Context(), ErrorFailedToRender,
			zap.String("view", view), zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}
	return ctx.Status(status).Type("html").Send(body)
}

func (h *Handler) setSessionCookie(ctx fiber.Ctx, sessionID string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    h.codec.Encode(sessionID),
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *Handler) expireSessionCookie(ctx fiber.Ctx) {
	ctx.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
