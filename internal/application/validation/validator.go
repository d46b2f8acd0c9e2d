// Package validation valida DTOs de entrada con go-playground/validator usando las
// etiquetas `validate:"..."` y reporta todas las violaciones a la vez.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/pkg/saft"
)

// DateLayout formato de fecha aceptado en la API.
const DateLayout = "2006-01-02"

// Validator envuelve un *validator.Validate configurado con las reglas propias.
type Validator struct {
	v *validator.Validate
}

// orEmptySuffix variante de una regla que además acepta "" (campos *string que se vacían en un update).
const orEmptySuffix = "_or_empty"

// New crea el validador: nombres de campo según json, decimal.Decimal comparable
// con gt/gte/lt y reglas nif9, nif, pt_postal_code e ymd (más sus variantes _or_empty
// y email_or_empty).
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	rules := map[string]func(string) bool{
		"nif9":           saft.IsNIFShape,
		"nif":            saft.ValidateNIF,
		"pt_postal_code": saft.ValidatePostalCode,
		"ymd": func(s string) bool {
			_, err := time.Parse(DateLayout, s)
			return err == nil
		},
		"email": func(s string) bool {
			return v.Var(s, "email") == nil
		},
	}
	for tag, fn := range rules {
		fn := fn // copia por iteración (go < 1.22)
		if tag != "email" {
			mustRegister(v, tag, func(fl validator.FieldLevel) bool {
				return fn(fl.Field().String())
			})
		}
		// omitempty no salta un *string no nulo: "" llega a la regla y aquí se acepta
		mustRegister(v, tag+orEmptySuffix, func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || fn(s)
		})
	}

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: registrar %s: %v", tag, err))
	}
}

// Struct devuelve todas las violaciones de s (vacío si es válido).
func (x *Validator) Struct(s interface{}) []domain.Violation {
	err := x.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.Violation{{Field: "body", Rule: "invalid", Message: err.Error()}}
	}
	out := make([]domain.Violation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.Violation{
			Field:   fieldPath(fe.Namespace()),
			Rule:    strings.TrimSuffix(fe.Tag(), orEmptySuffix),
			Message: message(fe),
		})
	}
	return out
}

// Validate devuelve nil o un *domain.ValidationError con todas las violaciones.
func (x *Validator) Validate(s interface{}) error {
	return domain.NewValidationError(x.Struct(s)...)
}

// fieldPath quita el nombre del struct raíz: "ExportRequest.company_info.nif" -> "company_info.nif".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch strings.TrimSuffix(fe.Tag(), orEmptySuffix) {
	case "required":
		return "es obligatorio"
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "gte":
		return "debe ser mayor o igual que " + fe.Param()
	case "lte":
		return "debe ser menor o igual que " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return "longitud mínima " + fe.Param()
		}
		return "valor mínimo " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return "longitud máxima " + fe.Param()
		}
		return "valor máximo " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "email inválido"
	case "uuid":
		return "debe ser un UUID"
	case "nif9":
		return "el NIF debe tener exactamente 9 dígitos"
	case "nif":
		return "NIF inválido (dígito de control)"
	case "pt_postal_code":
		return "el código postal debe tener el formato NNNN-NNN"
	case "ymd":
		return "debe ser una fecha con formato YYYY-MM-DD"
	case "gtefield":
		return "debe ser mayor o igual que " + fe.Param()
	default:
		return "no cumple la regla " + fe.Tag()
	}
}
