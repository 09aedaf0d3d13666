package models

import "time"

// User представляет пользователя в системе
type User struct {
	ID           int64     `json:"id"`         // числовой идентификатор (autoincrement)
	Username     string    `json:"username"`   // уникальный username
	PasswordHash string    `json:"-"`          // bcrypt хеш пароля, никогда не сериализуется
	CreatedAt    time.Time `json:"created_at"` // время создания
}

// Contact представляет запись телефонной книги пользователя
type Contact struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"` // владелец, не отдается наружу
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"-"`
}

// Secret представляет сохраненный секрет пользователя (credentials, API ключи и т.д.)
// Поля Password, APIKey, Notes возвращаются только при запросе одной записи
type Secret struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Title     string    `json:"title"`
	Category  string    `json:"category"` // по умолчанию "general"
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	APIKey    string    `json:"api_key"`
	URL       string    `json:"url"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SecretSummary проекция секрета для списков: без sensitive полей
// (password, api_key, notes)
type SecretSummary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Username  string    `json:"username"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary возвращает проекцию секрета без sensitive полей
func (s *Secret) Summary() SecretSummary {
	return SecretSummary{
		ID:        s.ID,
		Title:     s.Title,
		Category:  s.Category,
		Username:  s.Username,
		URL:       s.URL,
		CreatedAt: s.CreatedAt,
	}
}
