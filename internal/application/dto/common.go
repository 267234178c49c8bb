package dto

// Envelope respuesta uniforme de la API: { success, data?, message? }.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK envuelve un payload exitoso.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// ErrorResponse cuerpo de error HTTP (success siempre false).
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error construye un ErrorResponse.
func Error(code, message string) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Message: message}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
