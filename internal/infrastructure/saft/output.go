package saft

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/ucarion/c14n"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/proman-api/internal/domain"
	pkgsaft "github.com/jhoicas/proman-api/pkg/saft"
)

// Digest devuelve el SHA-256 (hex) de la forma canónica C14N del documento.
// Se calcula siempre sobre la versión UTF-8, antes de cualquier transcodificación.
func Digest(xmlBytes []byte) (string, error) {
	canonical, err := canonicalizeXML(xmlBytes)
	if err != nil {
		return "", fmt.Errorf("saft: canonicalizar XML: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

var (
	utf8Decl        = []byte(`encoding="UTF-8"`)
	windows1252Decl = []byte(`encoding="windows-1252"`)
)

// Encode convierte el XML UTF-8 a la codificación pedida, ajustando la declaración.
// Un carácter no representable en Windows-1252 es un error de validación de "encoding".
func Encode(xmlUTF8 []byte, encoding string) ([]byte, error) {
	switch encoding {
	case "", pkgsaft.EncodingUTF8:
		return xmlUTF8, nil
	case pkgsaft.EncodingWindows1252:
		src := bytes.Replace(xmlUTF8, utf8Decl, windows1252Decl, 1)
		out, err := charmap.Windows1252.NewEncoder().Bytes(src)
		if err != nil {
			return nil, domain.Invalid("encoding", "charset",
				"el contenido tiene caracteres no representables en windows-1252")
		}
		return out, nil
	default:
		return nil, domain.Invalid("encoding", "oneof", "codificación no soportada: "+encoding)
	}
}

// CompressXMLToZip empaqueta el fichero en un ZIP en memoria con una única entrada xmlFilename.
func CompressXMLToZip(xmlBytes []byte, xmlFilename string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	fw, err := zw.Create(xmlFilename)
	if err != nil {
		return nil, fmt.Errorf("zip: crear entrada %s: %w", xmlFilename, err)
	}
	if _, err := fw.Write(xmlBytes); err != nil {
		return nil, fmt.Errorf("zip: escribir XML: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return buf.Bytes(), nil
}

// ZipFilename cambia la extensión .xml por .zip.
func ZipFilename(xmlFilename string) string {
	if n := len(xmlFilename); n > 4 && xmlFilename[n-4:] == ".xml" {
		return xmlFilename[:n-4] + ".zip"
	}
	return xmlFilename + ".zip"
}
