package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Field presente solo en errores de validación: nombra el campo ofensivo.
	Field string `json:"field,omitempty"`
}
