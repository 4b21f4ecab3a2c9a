// Package dto содержит объекты передачи данных HTML форм.
package dto

// RegisterForm содержит поля формы регистрации.
type RegisterForm struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// LoginForm содержит поля формы входа.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// EditProfileForm содержит поля формы редактирования профиля.
// Пароль через эту форму не изменяется.
type EditProfileForm struct {
	Username string `form:"username"`
	Email    string `form:"email"`
}
