package validation

import (
	"errors"
	"strings"
)

// Ошибки валидации. Тексты являются частью HTTP контракта
// и отдаются клиенту как есть
var (
	// ErrCredentialsRequired возвращается когда отсутствует username или password
	ErrCredentialsRequired = errors.New("Username and password required")

	// ErrContactFieldsRequired возвращается когда отсутствует name или phone
	ErrContactFieldsRequired = errors.New("Name and phone required")

	// ErrSecretTitleRequired возвращается когда отсутствует title
	ErrSecretTitleRequired = errors.New("Title is required")
)

// DefaultSecretCategory категория секрета по умолчанию
const DefaultSecretCategory = "general"

// ValidateCredentials проверяет обязательные поля регистрации и логина
// Username - непрозрачная case-sensitive строка, формат не ограничивается
func ValidateCredentials(username, password string) error {
	if username == "" || password == "" {
		return ErrCredentialsRequired
	}
	return nil
}

// ValidateContact проверяет обязательные поля контакта
func ValidateContact(name, phone string) error {
	if name == "" || phone == "" {
		return ErrContactFieldsRequired
	}
	return nil
}

// ValidateSecret проверяет обязательные поля секрета
func ValidateSecret(title string) error {
	if title == "" {
		return ErrSecretTitleRequired
	}
	return nil
}

// NormalizeCategory возвращает категорию секрета, подставляя
// дефолтную для пустого значения
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultSecretCategory
	}
	return category
}
