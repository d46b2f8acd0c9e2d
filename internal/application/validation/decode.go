package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/proman-api/internal/domain"
)

// DecodeStrict decodifica un cuerpo JSON rechazando campos desconocidos y datos sobrantes.
// Cualquier fallo se devuelve como *domain.ValidationError.
func DecodeStrict(body []byte, dst interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.Invalid("body", "required", "cuerpo JSON requerido")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeViolation(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.Invalid("body", "json", "el cuerpo debe contener un único objeto JSON")
	}
	return nil
}

func decodeViolation(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return domain.Invalid(field, "type", fmt.Sprintf("tipo inválido, se esperaba %s", typeErr.Type.String()))
	case errors.As(err, &syntaxErr):
		return domain.Invalid("body", "json", fmt.Sprintf("JSON mal formado en la posición %d", syntaxErr.Offset))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		name := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return domain.Invalid(name, "unknown_field", "campo no permitido")
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return domain.Invalid("body", "json", "JSON incompleto")
	default:
		return domain.Invalid("body", "json", err.Error())
	}
}

// RejectUnknownKeys devuelve una violación por cada clave que no esté en allowed (ordenadas).
func RejectUnknownKeys(keys []string, allowed ...string) []domain.Violation {
	ok := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		ok[a] = struct{}{}
	}
	var unknown []string
	for _, k := range keys {
		if _, found := ok[k]; !found {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	out := make([]domain.Violation, 0, len(unknown))
	for _, k := range unknown {
		out = append(out, domain.Violation{Field: k, Rule: "unknown_field", Message: "parámetro no permitido"})
	}
	return out
}

// ParseDate interpreta YYYY-MM-DD en la zona loc; vacío devuelve (zero, false, nil).
func ParseDate(field, s string, loc *time.Location) (time.Time, bool, *domain.Violation) {
	if s == "" {
		return time.Time{}, false, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false, &domain.Violation{Field: field, Rule: "ymd", Message: "debe ser una fecha con formato YYYY-MM-DD"}
	}
	return t, true, nil
}
