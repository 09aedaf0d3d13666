package api

// SecretRequest представляет тело запроса создания и полного обновления секрета
// Все опциональные поля при обновлении перезаписываются переданными значениями
type SecretRequest struct {
	Title    string `json:"title"`    // обязательное поле
	Category string `json:"category"` // по умолчанию "general"
	Username string `json:"username"`
	Password string `json:"password"`
	APIKey   string `json:"api_key"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}
