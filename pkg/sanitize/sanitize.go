// Package sanitize limpia texto libre antes de persistirlo.
//
// Text deja texto plano (sin etiquetas HTML ni caracteres de control); RichText
// conserva un subconjunto seguro de HTML para cuerpos de plantillas de correspondencia.
// El escapado de salida queda a cargo de cada codificador (JSON, XML, CSV).
package sanitize

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
)

// Text elimina etiquetas HTML (y el contenido de script/style), decodifica entidades,
// quita caracteres de control salvo salto de línea y tabulador, y recorta espacios.
func Text(s string) string {
	if s == "" {
		return s
	}
	out := html.UnescapeString(strict.Sanitize(s))
	out = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, out)
	return strings.TrimSpace(out)
}

// RichText conserva HTML de contenido de usuario seguro (párrafos, énfasis, enlaces, listas).
// Las llaves de los marcadores {{...}} no se alteran.
func RichText(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(ugc.Sanitize(s))
}

// Ptr aplica Text a un puntero opcional.
func Ptr(s *string) *string {
	if s == nil {
		return nil
	}
	v := Text(*s)
	return &v
}
