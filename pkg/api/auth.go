package api

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username string `json:"username"` // username пользователя
	Password string `json:"password"` // plaintext пароль (передается только по HTTPS)
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse представляет ответ на успешную регистрацию или логин
type AuthResponse struct {
	Message  string `json:"message"`  // сообщение об успехе
	Token    string `json:"token"`    // JWT bearer token (7 дней)
	Username string `json:"username"` // username пользователя
}

// CurrentUserResponse представляет ответ GET /api/current_user
type CurrentUserResponse struct {
	Username string `json:"username"`
}

// MessageResponse представляет общий ответ-подтверждение
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse представляет ответ с ошибкой
// Формат {"error": "<message>"} является частью HTTP контракта
type ErrorResponse struct {
	Error string `json:"error"` // описание ошибки
}
