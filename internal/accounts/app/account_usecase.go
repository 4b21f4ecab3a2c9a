// Package app содержит бизнес-сценарии работы с учетными записями.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"accounthub/internal/accounts/domain/entities"
	"accounthub/internal/accounts/ports/api"
	"accounthub/internal/accounts/ports/repositories"
	svc "accounthub/internal/accounts/ports/services"
	"accounthub/pkg/logger"
)

const (
	methodRegister      = "Register"
	methodLogin         = "Login"
	methodUpdateProfile = "UpdateProfile"

	msgStartRegistration  = "starting user registration"
	msgUserRegistered     = "user registered successfully"
	msgLoginAttempt       = "login attempt"
	msgLoginNonExistent   = "login attempt with non-existent email"
	msgPasswordMismatch   = "password mismatch on login"
	msgUserLoggedIn       = "user logged in successfully"
	msgUpdatingProfile    = "updating user profile"
	msgProfileUpdated     = "user profile updated successfully"

	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"
	msgErrUpdatingUser      = "failed to update user"

	errCtxValidatingInput   = "validating input"
	errCtxHashingPassword   = "hashing password"
	errCtxCreatingUser      = "creating user"
	errCtxFindingUser       = "finding user"
	errCtxVerifyingPassword = "verifying password"
	errCtxUpdatingUser      = "updating user"
)

// AccountUseCaseImpl реализует интерфейс AccountUseCase.
type AccountUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
}

// NewAccountUseCase создает новый экземпляр сценариев учетных записей.
func NewAccountUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
) api.AccountUseCase {
	return &AccountUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

// Register создает нового пользователя с хэшированным паролем.
// Уникальность username и email обеспечивается ограничениями хранилища:
// проигравшая из двух одновременных регистраций получает доменную ошибку.
func (a *AccountUseCaseImpl) Register(ctx context.Context, username, email, password string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	if err := validateRequired(username, email, password); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashedPassword,
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		log.Debug(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("user_id", createdUser.ID))
	return createdUser, nil
}

// Login проверяет учетные данные пользователя. Несуществующий email и
// неверный пароль возвращают одну и ту же ошибку ErrInvalidCredentials,
// чтобы не раскрывать, какая из двух частей неверна.
func (a *AccountUseCaseImpl) Login(ctx context.Context, email, password string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, entities.ErrInvalidCredentials
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	matches, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !matches {
		log.Debug(ctx, msgPasswordMismatch)
		return nil, entities.ErrInvalidCredentials
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("user_id", user.ID))
	return user, nil
}

// UpdateProfile обновляет username и email пользователя.
// Учетные данные этим сценарием не изменяются.
func (a *AccountUseCaseImpl) UpdateProfile(ctx context.Context, userID, username, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateProfile), zap.String("user_id", userID))
	log.Debug(ctx, msgUpdatingProfile)

	if username == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, entities.ErrEmptyUsername)
	}
	if email == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, entities.ErrEmptyEmail)
	}

	updatedUser, err := a.userRepo.UpdateProfile(ctx, userID, username, email)
	if err != nil {
		log.Debug(ctx, msgErrUpdatingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgProfileUpdated)
	return updatedUser, nil
}

func validateRequired(username, email, password string) error {
	if username == "" {
		return entities.ErrEmptyUsername
	}
	if email == "" {
		return entities.ErrEmptyEmail
	}
	if password == "" {
		return entities.ErrEmptyPassword
	}
	return nil
}
