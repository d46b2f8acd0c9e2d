package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/proman-api/internal/application/dto"
)

// Content types de las salidas tabulares.
const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Table representación tabular de un reporte: cabecera estable por tipo y una fila por registro.
// La comparten CSV y XLSX.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// ToTable convierte el reporte en filas. Importes con 2 decimales fijos.
func ToTable(r *dto.Report) Table {
	switch {
	case r.Financial != nil:
		return financialTable(r.Financial)
	case r.Tax != nil:
		return taxTable(r.Tax)
	case r.RentRoll != nil:
		return rentRollTable(r.RentRoll)
	case r.InvoiceSummary != nil:
		return invoiceSummaryTable(r.InvoiceSummary)
	default:
		return Table{Title: r.Type}
	}
}

// WriteCSV serializa el reporte. Función pura del reporte.
func WriteCSV(r *dto.Report) ([]byte, error) {
	t := ToTable(r)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, fmt.Errorf("csv: cabecera: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, fmt.Errorf("csv: filas: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename {type}-report-{YYYY-MM-DD}.{ext} con la fecha de generación.
func Filename(r *dto.Report, ext string) string {
	return fmt.Sprintf("%s-report-%s.%s", r.Type, r.GeneratedOn, ext)
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func financialTable(f *dto.FinancialReport) Table {
	t := Table{
		Title:  "Financiero",
		Header: []string{"date", "kind", "category", "id", "property_id", "tenant_id", "description", "amount"},
		Rows:   make([][]string, 0, len(f.Entries)+3),
	}
	for _, e := range f.Entries {
		t.Rows = append(t.Rows, []string{
			e.Date, e.Kind, e.Category, e.ID, e.PropertyID, e.TenantID, e.Description, money(e.Amount),
		})
	}
	t.Rows = append(t.Rows,
		[]string{"TOTAL", "income", "", "", "", "", "", money(f.TotalIncome)},
		[]string{"TOTAL", "expenses", "", "", "", "", "", money(f.TotalExpenses)},
		[]string{"TOTAL", "net", "", "", "", "", "", money(f.NetIncome)},
	)
	return t
}

func taxTable(x *dto.TaxReport) Table {
	t := Table{
		Title:  "Fiscal " + strconv.Itoa(x.Year),
		Header: []string{"section", "key", "label", "count", "income", "expenses", "net"},
	}
	for _, m := range x.Months {
		t.Rows = append(t.Rows, []string{
			"month", fmt.Sprintf("%d-%02d", x.Year, m.Month), "", "",
			money(m.Income), money(m.Expenses), money(m.Net),
		})
	}
	for _, c := range x.ExpensesByCategory {
		t.Rows = append(t.Rows, []string{
			"category", c.Category, "", strconv.Itoa(c.Count), "", money(c.Total), "",
		})
	}
	for _, p := range x.Properties {
		t.Rows = append(t.Rows, []string{
			"property", p.PropertyID, p.PropertyName, "",
			money(p.Income), money(p.Expenses), money(p.Net),
		})
	}
	t.Rows = append(t.Rows, []string{
		"TOTAL", strconv.Itoa(x.Year), "", "",
		money(x.TotalIncome), money(x.TotalExpenses), money(x.NetTaxableIncome),
	})
	return t
}

func rentRollTable(r *dto.RentRoll) Table {
	t := Table{
		Title: "Rent roll",
		Header: []string{
			"tenant_id", "tenant_name", "property_id", "property_name",
			"rent", "lease_start", "lease_end", "payment_status",
		},
		Rows: make([][]string, 0, len(r.Entries)+1),
	}
	for _, e := range r.Entries {
		t.Rows = append(t.Rows, []string{
			e.TenantID, e.TenantName, e.PropertyID, e.PropertyName,
			money(e.Rent), e.LeaseStart, e.LeaseEnd, e.PaymentStatus,
		})
	}
	t.Rows = append(t.Rows, []string{
		"TOTAL", "", "", fmt.Sprintf("%d/%d", r.OccupiedUnits, r.TotalUnits),
		money(r.TotalMonthlyRent), "", "", "",
	})
	return t
}

func invoiceSummaryTable(s *dto.InvoiceSummary) Table {
	t := Table{
		Title:  "Facturas",
		Header: []string{"status", "count", "total"},
		Rows:   make([][]string, 0, len(s.ByStatus)+2),
	}
	for _, b := range s.ByStatus {
		t.Rows = append(t.Rows, []string{b.Status, strconv.Itoa(b.Count), money(b.Total)})
	}
	t.Rows = append(t.Rows,
		[]string{"TOTAL", strconv.Itoa(s.TotalCount), money(s.TotalAmount)},
		[]string{"OUTSTANDING", "", money(s.OutstandingAmount)},
	)
	return t
}

// SpreadsheetWriter puerto para la salida XLSX; la implementación vive en infraestructura.
type SpreadsheetWriter interface {
	WriteXLSX(t Table) ([]byte, error)
}
