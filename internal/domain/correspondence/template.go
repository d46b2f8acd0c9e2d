// Package correspondence implementa la sustitución de marcadores {{variable}} en plantillas.
//
// La plantilla se analiza una sola vez en segmentos (texto literal y marcadores) y se
// ejecuta con una búsqueda exacta por nombre: los nombres son literales, no expresiones,
// y un valor sustituido nunca se vuelve a expandir. Los marcadores sin valor se dejan tal cual.
package correspondence

import (
	"strconv"
	"strings"
	"time"
)

// Marcadores disponibles siempre, salvo que el llamador los redefina.
const (
	BuiltinCurrentDate = "current_date" // DD/MM/YYYY
	BuiltinCurrentYear = "current_year"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

type segment struct {
	text  string
	token bool
}

// Template plantilla ya analizada; es inmutable y segura para uso concurrente.
type Template struct {
	segments []segment
	tokens   []string
}

// Parse recorre s una vez y separa texto literal de marcadores.
// Un "{{" sin cierre, o seguido de otro "{{" antes del cierre, se conserva como texto.
func Parse(s string) *Template {
	t := &Template{}
	seen := map[string]struct{}{}
	var lit strings.Builder

	for len(s) > 0 {
		i := strings.Index(s, openDelim)
		if i < 0 {
			lit.WriteString(s)
			break
		}
		// "{{{x}}}": las llaves sobrantes a la izquierda son texto
		for i+len(openDelim) < len(s) && s[i+len(openDelim)] == '{' {
			i++
		}
		rest := s[i+len(openDelim):]
		j := strings.Index(rest, closeDelim)
		if j < 0 {
			lit.WriteString(s)
			break
		}
		// "{{" suelto antes de un marcador: es texto y el marcador empieza en el último "{{"
		if k := strings.LastIndex(rest[:j], openDelim); k >= 0 {
			lit.WriteString(s[:i+len(openDelim)+k])
			s = rest[k:]
			continue
		}
		lit.WriteString(s[:i])
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{text: lit.String()})
			lit.Reset()
		}
		name := rest[:j]
		t.segments = append(t.segments, segment{text: name, token: true})
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			t.tokens = append(t.tokens, name)
		}
		s = rest[j+len(closeDelim):]
	}
	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{text: lit.String()})
	}
	return t
}

// Tokens nombres de marcador únicos en orden de aparición.
func (t *Template) Tokens() []string {
	out := make([]string, len(t.tokens))
	copy(out, t.tokens)
	return out
}

// Execute sustituye los marcadores presentes en vars; el resto queda literal.
func (t *Template) Execute(vars map[string]string) string {
	var b strings.Builder
	for _, seg := range t.segments {
		if !seg.token {
			b.WriteString(seg.text)
			continue
		}
		if v, ok := vars[seg.text]; ok {
			b.WriteString(v)
			continue
		}
		b.WriteString(openDelim)
		b.WriteString(seg.text)
		b.WriteString(closeDelim)
	}
	return b.String()
}

// BuiltinVariables valores de current_date y current_year para now.
func BuiltinVariables(now time.Time) map[string]string {
	return map[string]string{
		BuiltinCurrentDate: now.Format("02/01/2006"),
		BuiltinCurrentYear: strconv.Itoa(now.Year()),
	}
}

// MergeVariables combina capas de variables; las posteriores prevalecen.
func MergeVariables(layers ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, l := range layers {
		for k, v := range l {
			out[k] = v
		}
	}
	return out
}

// SubstituteVariables analiza template y sustituye vars más los marcadores integrados.
// Un valor de vars con el mismo nombre que un integrado lo reemplaza.
func SubstituteVariables(template string, vars map[string]string, now time.Time) string {
	return Parse(template).Execute(MergeVariables(BuiltinVariables(now), vars))
}

// Variables devuelve los marcadores de varios textos (por ejemplo asunto y cuerpo) sin repetir.
func Variables(texts ...string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, s := range texts {
		for _, tok := range Parse(s).tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			out = append(out, tok)
		}
	}
	return out
}
