package dto

// APIResponse envoltura estándar de respuestas exitosas: flag, mensaje y payload.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK construye una respuesta exitosa.
func OK(message string, data any) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`
}

// PageResponse metadatos de página en listados.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}
