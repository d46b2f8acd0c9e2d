// Package saft contiene las reglas de dominio de una solicitud de exportación SAF-T PT:
// dígito de control del NIF, año fiscal y rango de meses. La validación estructural
// (campos presentes, formatos) ocurre antes, en la capa de aplicación.
package saft

import (
	"fmt"
	"time"

	"github.com/jhoicas/proman-api/internal/domain"
	pkgsaft "github.com/jhoicas/proman-api/pkg/saft"
)

// MinFiscalYear primer año fiscal exportable.
const MinFiscalYear = 2000

// Request datos de la solicitud relevantes para las reglas de dominio.
type Request struct {
	FiscalYear int
	StartMonth int
	EndMonth   int
	NIF        string
}

// Validate aplica las reglas de dominio y devuelve todas las violaciones.
// El dígito de control solo se comprueba si el NIF tiene forma de 9 dígitos
// (si no, la violación estructural ya lo cubre).
func Validate(r Request, now time.Time) []domain.Violation {
	var out []domain.Violation

	if pkgsaft.IsNIFShape(r.NIF) && !pkgsaft.ValidateNIF(r.NIF) {
		out = append(out, domain.Violation{
			Field: "company_info.nif", Rule: "nif_checksum",
			Message: "el dígito de control del NIF no es válido",
		})
	}

	maxYear := now.Year() + 1
	if r.FiscalYear != 0 && (r.FiscalYear < MinFiscalYear || r.FiscalYear > maxYear) {
		out = append(out, domain.Violation{
			Field: "fiscal_year", Rule: "range",
			Message: fmt.Sprintf("el año fiscal debe estar entre %d y %d", MinFiscalYear, maxYear),
		})
	}

	if validMonth(r.StartMonth) && validMonth(r.EndMonth) && r.EndMonth < r.StartMonth {
		out = append(out, domain.Violation{
			Field: "end_month", Rule: "gtefield",
			Message: "end_month debe ser mayor o igual que start_month",
		})
	}
	return out
}

func validMonth(m int) bool { return m >= 1 && m <= 12 }

// Period intervalo cubierto por el fichero: del primer día de StartMonth al último de EndMonth.
type Period struct {
	FiscalYear int
	StartMonth int
	EndMonth   int
	Start      time.Time // 00:00:00 del primer día
	End        time.Time // 23:59:59.999999999 del último día
}

// NewPeriod construye el periodo en la zona loc. Asume meses ya validados.
func NewPeriod(fiscalYear, startMonth, endMonth int, loc *time.Location) Period {
	start := time.Date(fiscalYear, time.Month(startMonth), 1, 0, 0, 0, 0, loc)
	end := time.Date(fiscalYear, time.Month(endMonth)+1, 1, 0, 0, 0, 0, loc).Add(-time.Nanosecond)
	return Period{FiscalYear: fiscalYear, StartMonth: startMonth, EndMonth: endMonth, Start: start, End: end}
}

// StartDate YYYY-MM-DD del primer día.
func (p Period) StartDate() string { return p.Start.Format("2006-01-02") }

// EndDate YYYY-MM-DD del último día.
func (p Period) EndDate() string { return p.End.Format("2006-01-02") }
