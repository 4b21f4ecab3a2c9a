// Package views содержит встроенные HTML шаблоны и их рендеринг.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"accounthub/internal/accounts/domain/entities"
)

// Имена шаблонов.
const (
	Login    = "login.html"
	Register = "register.html"
	Profile  = "profile.html"
	NotFound = "notfound.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoginData - данные для шаблона входа.
type LoginData struct {
	Error string
}

// RegisterData - данные для шаблона регистрации.
type RegisterData struct {
	Error string
}

// ProfileData - данные для шаблона профиля.
// User берется из кэша сессии, хэш пароля в шаблоне не используется.
type ProfileData struct {
	User  *entities.User
	Error string
}

// Renderer рендерит встроенные шаблоны.
type Renderer struct {
	templates *template.Template
}

// NewRenderer создает рендерер со всеми встроенными шаблонами.
func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing embedded templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// Render выполняет шаблон с переданными данными и возвращает HTML.
func (r *Renderer) Render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
