// Package reports agrega recibos, gastos, facturas e inquilinos en reportes derivados
// (financiero, fiscal, rent roll y resumen de facturas). Nada se persiste ni se cachea:
// cada llamada lee del FinancialDataSource.
package reports

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/application/validation"
	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
)

// MinYear primer año aceptado en el reporte fiscal.
const MinYear = 2000

// Generator orquesta las consultas y aplica las reglas de agregación.
type Generator struct {
	data repository.FinancialDataSource
	log  zerolog.Logger
	loc  *time.Location
	now  func() time.Time
}

// NewGenerator construye el generador. Las fechas se interpretan en UTC.
func NewGenerator(data repository.FinancialDataSource, log zerolog.Logger) *Generator {
	return &Generator{data: data, log: log, loc: time.UTC, now: time.Now}
}

// WithClock fija el reloj usado para los valores por defecto.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate valida los parámetros y construye el reporte pedido.
// Errores de validación: *domain.ValidationError. Fallos de lectura: domain.ErrDatabase, sin resultado parcial.
func (g *Generator) Generate(ctx context.Context, userID string, req dto.ReportRequest) (*dto.Report, error) {
	now := g.now().In(g.loc)
	report := &dto.Report{Type: req.Type, GeneratedOn: now.Format(validation.DateLayout)}

	var err error
	switch req.Type {
	case dto.ReportFinancial:
		report.Financial, err = g.financial(ctx, userID, req.Financial, now)
	case dto.ReportTax:
		report.Tax, err = g.tax(ctx, userID, req.Tax, now)
	case dto.ReportRentRoll:
		report.RentRoll, err = g.rentRoll(ctx, userID, req.RentRoll, now)
	case dto.ReportInvoiceSummary:
		report.InvoiceSummary, err = g.invoiceSummary(ctx, userID, req.InvoiceSummary, now)
	default:
		err = domain.Invalid("type", "oneof", "tipo de reporte no soportado: "+req.Type)
	}
	if err != nil {
		if errors.Is(err, domain.ErrDatabase) {
			g.log.Error().Err(err).Str("user_id", userID).Str("type", req.Type).Msg("reporte: fallo de lectura")
		}
		return nil, err
	}
	return report, nil
}

// ── Financiero ──────────────────────────────────────────────────────────────

func (g *Generator) financial(ctx context.Context, userID string, p *dto.FinancialReportParams, now time.Time) (*dto.FinancialReport, error) {
	if p == nil {
		p = &dto.FinancialReportParams{}
	}
	start, end, violations := parsePeriod(p.StartDate, p.EndDate, now)
	if err := domain.NewValidationError(violations...); err != nil {
		return nil, err
	}
	rng := repository.DateRange{From: start, To: end}

	receipts, expenses, err := g.fetchIncomeAndExpenses(ctx, userID, rng)
	if err != nil {
		return nil, err
	}
	return buildFinancial(start, end, receipts, expenses), nil
}

// ── Fiscal ──────────────────────────────────────────────────────────────────

func (g *Generator) tax(ctx context.Context, userID string, p *dto.TaxReportParams, now time.Time) (*dto.TaxReport, error) {
	year := now.Year()
	if p != nil && p.Year != "" {
		y, err := strconv.Atoi(p.Year)
		if err != nil {
			return nil, domain.Invalid("year", "int", "debe ser un año numérico")
		}
		year = y
	}
	if maxYear := now.Year() + 1; year < MinYear || year > maxYear {
		return nil, domain.Invalid("year", "range", fmt.Sprintf("el año debe estar entre %d y %d", MinYear, maxYear))
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, g.loc)
	end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	rng := repository.DateRange{From: start, To: end}

	type propertiesResult struct {
		rows []*entity.Property
		err  error
	}
	propChan := make(chan propertiesResult, 1)
	go func() {
		rows, err := g.data.ListProperties(ctx, userID)
		propChan <- propertiesResult{rows, err}
	}()

	receipts, expenses, err := g.fetchIncomeAndExpenses(ctx, userID, rng)
	propRes := <-propChan
	if err != nil {
		return nil, err
	}
	if propRes.err != nil {
		return nil, fetchError("reports: inmuebles", propRes.err)
	}
	return buildTax(year, start, end, receipts, expenses, propRes.rows), nil
}

// ── Rent roll ───────────────────────────────────────────────────────────────

func (g *Generator) rentRoll(ctx context.Context, userID string, p *dto.RentRollParams, now time.Time) (*dto.RentRoll, error) {
	asOf := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, g.loc)
	if p != nil {
		t, ok, v := validation.ParseDate("as_of", p.AsOf, g.loc)
		if v != nil {
			return nil, domain.NewValidationError(*v)
		}
		if ok {
			asOf = t
		}
	}

	type tenantsResult struct {
		rows []*entity.Tenant
		err  error
	}
	type propertiesResult struct {
		rows []*entity.Property
		err  error
	}
	tenChan := make(chan tenantsResult, 1)
	propChan := make(chan propertiesResult, 1)

	go func() {
		rows, err := g.data.ListTenants(ctx, userID)
		tenChan <- tenantsResult{rows, err}
	}()
	go func() {
		rows, err := g.data.ListProperties(ctx, userID)
		propChan <- propertiesResult{rows, err}
	}()

	tenRes := <-tenChan
	propRes := <-propChan
	if tenRes.err != nil {
		return nil, fetchError("reports: inquilinos", tenRes.err)
	}
	if propRes.err != nil {
		return nil, fetchError("reports: inmuebles", propRes.err)
	}
	return buildRentRoll(asOf, tenRes.rows, propRes.rows), nil
}

// ── Resumen de facturas ─────────────────────────────────────────────────────

func (g *Generator) invoiceSummary(ctx context.Context, userID string, p *dto.InvoiceSummaryParams, now time.Time) (*dto.InvoiceSummary, error) {
	if p == nil {
		p = &dto.InvoiceSummaryParams{}
	}
	rng, violations := parseOptionalRange(p.StartDate, p.EndDate, g.loc)
	if err := domain.NewValidationError(violations...); err != nil {
		return nil, err
	}

	invoices, err := g.data.ListInvoices(ctx, userID, repository.InvoiceFilter{
		DateField: repository.InvoiceByDueDate,
		Range:     rng,
	})
	if err != nil {
		return nil, fetchError("reports: facturas", err)
	}

	var period *dto.PeriodDTO
	if p.StartDate != "" || p.EndDate != "" {
		period = &dto.PeriodDTO{StartDate: p.StartDate, EndDate: p.EndDate}
	}
	return buildInvoiceSummary(period, invoices), nil
}

// ── lectura concurrente ─────────────────────────────────────────────────────

// fetchIncomeAndExpenses lee recibos pagados y gastos del rango en paralelo.
// Si cualquiera falla no se devuelve nada.
func (g *Generator) fetchIncomeAndExpenses(ctx context.Context, userID string, rng repository.DateRange) ([]*entity.Receipt, []*entity.Expense, error) {
	type receiptsResult struct {
		rows []*entity.Receipt
		err  error
	}
	type expensesResult struct {
		rows []*entity.Expense
		err  error
	}

	rcChan := make(chan receiptsResult, 1)
	exChan := make(chan expensesResult, 1)

	go func() {
		rows, err := g.data.ListReceipts(ctx, userID, repository.ReceiptFilter{
			Status: entity.ReceiptStatusPaid,
			Range:  rng,
		})
		rcChan <- receiptsResult{rows, err}
	}()
	go func() {
		rows, err := g.data.ListExpenses(ctx, userID, repository.ExpenseFilter{Range: rng})
		exChan <- expensesResult{rows, err}
	}()

	rcRes := <-rcChan
	exRes := <-exChan

	if rcRes.err != nil {
		return nil, nil, fetchError("reports: recibos", rcRes.err)
	}
	if exRes.err != nil {
		return nil, nil, fetchError("reports: gastos", exRes.err)
	}
	return rcRes.rows, exRes.rows, nil
}

func fetchError(op string, err error) error {
	if errors.Is(err, domain.ErrDatabase) {
		return err
	}
	return domain.DatabaseError(op, err)
}

// ── periodos ────────────────────────────────────────────────────────────────

// parsePeriod convierte los strings de fecha; vacíos toman el mes natural en curso.
// end es inclusivo hasta el final del día.
func parsePeriod(startStr, endStr string, now time.Time) (start, end time.Time, violations []domain.Violation) {
	loc := now.Location()
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if t, ok, v := validation.ParseDate("start_date", startStr, loc); v != nil {
		violations = append(violations, *v)
	} else if ok {
		start = t
	}
	if t, ok, v := validation.ParseDate("end_date", endStr, loc); v != nil {
		violations = append(violations, *v)
	} else if ok {
		end = endOfDay(t)
	}

	if len(violations) == 0 && start.After(end) {
		violations = append(violations, domain.Violation{
			Field: "end_date", Rule: "gtefield", Message: "start_date no puede ser posterior a end_date",
		})
	}
	return start, end, violations
}

// parseOptionalRange como parsePeriod pero sin valores por defecto: un extremo vacío no restringe.
func parseOptionalRange(startStr, endStr string, loc *time.Location) (repository.DateRange, []domain.Violation) {
	var rng repository.DateRange
	var violations []domain.Violation

	if t, ok, v := validation.ParseDate("start_date", startStr, loc); v != nil {
		violations = append(violations, *v)
	} else if ok {
		rng.From = t
	}
	if t, ok, v := validation.ParseDate("end_date", endStr, loc); v != nil {
		violations = append(violations, *v)
	} else if ok {
		rng.To = endOfDay(t)
	}

	if len(violations) == 0 && !rng.From.IsZero() && !rng.To.IsZero() && rng.From.After(rng.To) {
		violations = append(violations, domain.Violation{
			Field: "end_date", Rule: "gtefield", Message: "start_date no puede ser posterior a end_date",
		})
	}
	return rng, violations
}

func endOfDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
