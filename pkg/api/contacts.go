package api

// ContactRequest представляет тело запроса создания и полного обновления контакта
// Update имеет full-replace семантику: опциональный address перезаписывается
type ContactRequest struct {
	Name    string `json:"name"`    // обязательное поле
	Phone   string `json:"phone"`   // обязательное поле
	Address string `json:"address"` // опциональный адрес
}

// CreatedResponse представляет подтверждение создания записи
// с идентификатором новой записи
type CreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
