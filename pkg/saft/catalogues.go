// Package saft reúne las constantes y reglas de identidad del SAF-T PT (Portaria 302/2016),
// versión 1.04_01: NIF, código postal, códigos de exención y convención de nombres de fichero.
package saft

import (
	"fmt"
	"regexp"
)

// Cabecera del AuditFile.
const (
	AuditFileVersion   = "1.04_01"
	Namespace          = "urn:OECD:StandardAuditFile-Tax:PT_1.04_01"
	CurrencyCode       = "EUR"
	CountryPT          = "PT"
	TaxAccountingBasis = "F" // facturación
	TaxEntityGlobal    = "Global"
	// Identificador de cliente final sin NIF.
	ConsumidorFinalNIF = "999999990"
	Desconhecido       = "Desconhecido"
)

// Impuestos y exención aplicada a arrendamiento habitacional.
const (
	TaxTypeIVA = "IVA"
	TaxCodeISE = "ISE"
	// M07: "Isento artigo 9.º do CIVA" (arrendamiento de inmuebles para habitación).
	TaxExemptionCodeResidentialRent   = "M07"
	TaxExemptionReasonResidentialRent = "Isento artigo 9.º do CIVA"
)

// Tipos y estados de documento de venta.
const (
	InvoiceTypeFatura    = "FT"
	InvoiceStatusNormal  = "N"
	InvoiceStatusAnulado = "A"
)

// Codificaciones admitidas para el fichero.
const (
	EncodingUTF8        = "UTF-8"
	EncodingWindows1252 = "windows-1252"
)

var postalCodeRe = regexp.MustCompile(`^\d{4}-\d{3}$`)

// ValidatePostalCode comprueba el formato NNNN-NNN.
func ValidatePostalCode(s string) bool {
	return postalCodeRe.MatchString(s)
}

// Filename devuelve SAF-T_{NIF}_{year}_{MM-MM}.xml con los meses a dos dígitos.
func Filename(nif string, fiscalYear, startMonth, endMonth int) string {
	return fmt.Sprintf("SAF-T_%s_%d_%02d-%02d.xml", nif, fiscalYear, startMonth, endMonth)
}
