package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = fmt.Errorf("usuario no encontrado: %w", ErrNotFound)
	ErrEmailAlreadyExists   = fmt.Errorf("el email ya está registrado: %w", ErrConflict)
	ErrCompanyAlreadyExists = fmt.Errorf("el usuario ya tiene una empresa registrada: %w", ErrConflict)
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrTransient            = errors.New("error transitorio de infraestructura")
	ErrIndexRefresh         = errors.New("no se pudo actualizar el índice de búsqueda")
)

// ConflictError describe un conflicto con el estado actual, opcionalmente con
// la cantidad de registros que lo provocan (ej. empresas que referencian un producto).
type ConflictError struct {
	Reason     string
	References int
}

func (e *ConflictError) Error() string {
	if e.References > 0 {
		return fmt.Sprintf("%s (%d referencias)", e.Reason, e.References)
	}
	return e.Reason
}

// Is permite errors.Is(err, ErrConflict).
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// NewConflict crea un ConflictError.
func NewConflict(reason string, references int) *ConflictError {
	return &ConflictError{Reason: reason, References: references}
}

// ValidationError entrada rechazada antes de tocar la base de datos.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidation crea un ValidationError.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RefreshError indica que la escritura ya fue confirmada pero el índice de búsqueda
// no pudo refrescarse. Acompaña al resultado; no implica rollback.
type RefreshError struct {
	Op  string
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("refresh índice tras %s: %v", e.Op, e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrIndexRefresh).
func (e *RefreshError) Is(target error) bool { return target == ErrIndexRefresh }
