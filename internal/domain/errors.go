package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrDatabase     = errors.New("error de acceso a datos")
)

// Violation describe una regla incumplida sobre un campo de entrada.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError acumula todas las violaciones detectadas en una entrada.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier *ValidationError.
type ValidationError struct {
	Violations []Violation
}

// NewValidationError construye el error; devuelve nil si no hay violaciones.
func NewValidationError(violations ...Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// Invalid es un atajo para una única violación.
func Invalid(field, rule, message string) error {
	return &ValidationError{Violations: []Violation{{Field: field, Rule: rule, Message: message}}}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(msgs, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Add agrega violaciones.
func (e *ValidationError) Add(v ...Violation) {
	e.Violations = append(e.Violations, v...)
}

// HasField indica si alguna violación corresponde al campo dado.
func (e *ValidationError) HasField(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// Violations extrae las violaciones de err (si es o envuelve un *ValidationError).
func Violations(err error) []Violation {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Violations
	}
	return nil
}

// MergeValidation combina los errores de validación recibidos en uno solo.
// Los errores nil se ignoran; si alguno no es de validación se devuelve tal cual.
func MergeValidation(errs ...error) error {
	var merged ValidationError
	for _, err := range errs {
		if err == nil {
			continue
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		merged.Add(ve.Violations...)
	}
	if len(merged.Violations) == 0 {
		return nil
	}
	return &merged
}

// DatabaseError envuelve un fallo del almacén conservando la causa.
func DatabaseError(op string, cause error) error {
	return errors.Join(errors.New(op), ErrDatabase, cause)
}
