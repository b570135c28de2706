package mediastore

// UploadRequest — тело запроса на загрузку изображения.
// Поле File содержит data URI с base64-содержимым файла.
type UploadRequest struct {
	File   string `json:"file"`
	Folder string `json:"folder"`
}

// UploadResponse — ответ медиахранилища на загрузку.
type UploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}

// DestroyRequest — тело запроса на удаление объекта по его идентификатору.
type DestroyRequest struct {
	PublicID string `json:"public_id"`
}

// DestroyResponse — ответ медиахранилища на удаление.
type DestroyResponse struct {
	Result string `json:"result"`
}
