package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	// ErrConflict: una escritura perdió la carrera de concurrencia optimista.
	// El caller debe releer el recurso y reintentar; no es corrupción de datos.
	ErrConflict = errors.New("conflicto con el estado actual")
	// ErrServiceUnavailable: un colaborador externo (DB, extractor) no responde.
	// Se propaga explícito; nunca se sustituye por datos de ejemplo.
	ErrServiceUnavailable = errors.New("servicio no disponible")
)

// ValidationError error corregible por el cliente: nombra el campo ofensivo.
// Se retorna de forma síncrona y nunca se reintenta automáticamente.
type ValidationError struct {
	Field  string // nombre del campo, ej. "costCenterRef", "dueDate", "file"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: %s: %s", e.Field, e.Reason)
}

// NewValidation construye un ValidationError.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// AsValidation extrae un *ValidationError de la cadena de errores, si existe.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Motivos normalizados de fallo de extracción (se persisten en el borrador).
const (
	ExtractionReasonTimeout     = "timeout"
	ExtractionReasonUnreachable = "unreachable"
	ExtractionReasonMalformed   = "malformed"
	ExtractionReasonUnsupported = "unsupported"
)

// ExtractionError fallo del extractor externo. La ingesta lo reporta como
// borrador FALLIDO conservando el archivo; el reintento es manual.
type ExtractionError struct {
	Reason string // uno de los ExtractionReason*
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extracción (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extracción (%s)", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// NewExtraction construye un ExtractionError con motivo normalizado.
func NewExtraction(reason string, err error) *ExtractionError {
	return &ExtractionError{Reason: reason, Err: err}
}

// AsExtraction extrae un *ExtractionError de la cadena de errores, si existe.
func AsExtraction(err error) (*ExtractionError, bool) {
	var xe *ExtractionError
	if errors.As(err, &xe) {
		return xe, true
	}
	return nil, false
}
