package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/application/validation"
	"github.com/jhoicas/proman-api/internal/domain/entity"
)

// Nombre del grupo para importes sin inmueble conocido en el reporte fiscal.
const unassignedProperty = "Sin asignar"

var hundred = decimal.NewFromInt(100)

func buildFinancial(start, end time.Time, receipts []*entity.Receipt, expenses []*entity.Expense) *dto.FinancialReport {
	income, outgo := decimal.Zero, decimal.Zero
	entries := make([]dto.FinancialEntry, 0, len(receipts)+len(expenses))

	for _, r := range receipts {
		income = income.Add(r.Amount)
		entries = append(entries, dto.FinancialEntry{
			Date:        r.Date.Format(validation.DateLayout),
			Kind:        dto.EntryIncome,
			Category:    r.Type,
			ID:          r.ID,
			PropertyID:  r.PropertyID,
			TenantID:    r.TenantID,
			Description: r.Description,
			Amount:      r.Amount,
		})
	}
	for _, e := range expenses {
		outgo = outgo.Add(e.Amount)
		entries = append(entries, dto.FinancialEntry{
			Date:        e.Date.Format(validation.DateLayout),
			Kind:        dto.EntryExpense,
			Category:    e.Category,
			ID:          e.ID,
			PropertyID:  e.PropertyID,
			Description: e.Description,
			Amount:      e.Amount,
		})
	}

	// Date en formato ISO ordena lexicográficamente igual que cronológicamente.
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.ID < b.ID
	})

	return &dto.FinancialReport{
		Period: dto.PeriodDTO{
			StartDate: start.Format(validation.DateLayout),
			EndDate:   end.Format(validation.DateLayout),
		},
		TotalIncome:   income.Round(2),
		TotalExpenses: outgo.Round(2),
		NetIncome:     income.Sub(outgo).Round(2),
		IncomeCount:   len(receipts),
		ExpenseCount:  len(expenses),
		Entries:       entries,
	}
}

func buildTax(year int, start, end time.Time, receipts []*entity.Receipt, expenses []*entity.Expense, properties []*entity.Property) *dto.TaxReport {
	months := make([]dto.MonthlyTotals, 12)
	for i := range months {
		months[i] = dto.MonthlyTotals{Month: i + 1, Income: decimal.Zero, Expenses: decimal.Zero, Net: decimal.Zero}
	}

	type propAcc struct{ income, expenses decimal.Decimal }
	byProperty := make(map[string]*propAcc)
	acc := func(id string) *propAcc {
		a, ok := byProperty[id]
		if !ok {
			a = &propAcc{income: decimal.Zero, expenses: decimal.Zero}
			byProperty[id] = a
		}
		return a
	}

	income, outgo := decimal.Zero, decimal.Zero
	for _, r := range receipts {
		income = income.Add(r.Amount)
		m := &months[r.Date.Month()-1]
		m.Income = m.Income.Add(r.Amount)
		a := acc(r.PropertyID)
		a.income = a.income.Add(r.Amount)
	}

	type catAcc struct {
		count int
		total decimal.Decimal
	}
	byCategory := make(map[string]*catAcc)
	for _, e := range expenses {
		outgo = outgo.Add(e.Amount)
		m := &months[e.Date.Month()-1]
		m.Expenses = m.Expenses.Add(e.Amount)
		a := acc(e.PropertyID)
		a.expenses = a.expenses.Add(e.Amount)

		c, ok := byCategory[e.Category]
		if !ok {
			c = &catAcc{total: decimal.Zero}
			byCategory[e.Category] = c
		}
		c.count++
		c.total = c.total.Add(e.Amount)
	}
	for i := range months {
		months[i].Net = months[i].Income.Sub(months[i].Expenses)
	}

	categories := make([]dto.CategoryTotal, 0, len(byCategory))
	for name, c := range byCategory {
		categories = append(categories, dto.CategoryTotal{Category: name, Count: c.count, Total: c.total.Round(2)})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Category < categories[j].Category })

	// properties ya viene ordenado por nombre e ID.
	props := make([]dto.PropertyTotal, 0, len(properties)+1)
	for _, p := range properties {
		a := acc(p.ID)
		props = append(props, dto.PropertyTotal{
			PropertyID:   p.ID,
			PropertyName: p.Name,
			Income:       a.income.Round(2),
			Expenses:     a.expenses.Round(2),
			Net:          a.income.Sub(a.expenses).Round(2),
		})
		delete(byProperty, p.ID)
	}
	if len(byProperty) > 0 {
		rest := propAcc{income: decimal.Zero, expenses: decimal.Zero}
		for _, a := range byProperty {
			rest.income = rest.income.Add(a.income)
			rest.expenses = rest.expenses.Add(a.expenses)
		}
		props = append(props, dto.PropertyTotal{
			PropertyName: unassignedProperty,
			Income:       rest.income.Round(2),
			Expenses:     rest.expenses.Round(2),
			Net:          rest.income.Sub(rest.expenses).Round(2),
		})
	}

	return &dto.TaxReport{
		Year: year,
		Period: dto.PeriodDTO{
			StartDate: start.Format(validation.DateLayout),
			EndDate:   end.Format(validation.DateLayout),
		},
		TotalIncome:        income.Round(2),
		TotalExpenses:      outgo.Round(2),
		NetTaxableIncome:   income.Sub(outgo).Round(2),
		Months:             months,
		ExpensesByCategory: categories,
		Properties:         props,
	}
}

func buildRentRoll(asOf time.Time, tenants []*entity.Tenant, properties []*entity.Property) *dto.RentRoll {
	names := make(map[string]string, len(properties))
	for _, p := range properties {
		names[p.ID] = p.Name
	}

	total := decimal.Zero
	occupied := make(map[string]struct{})
	entries := make([]dto.RentRollEntry, 0, len(tenants))

	// tenants ya viene ordenado por nombre e ID.
	for _, t := range tenants {
		if !t.ActiveOn(asOf) {
			continue
		}
		e := dto.RentRollEntry{
			TenantID:      t.ID,
			TenantName:    t.Name,
			Rent:          t.Rent,
			LeaseStart:    t.LeaseStart.Format(validation.DateLayout),
			PaymentStatus: t.PaymentStatus,
		}
		if t.LeaseEnd != nil {
			e.LeaseEnd = t.LeaseEnd.Format(validation.DateLayout)
		}
		if t.PropertyID != nil {
			e.PropertyID = *t.PropertyID
			e.PropertyName = names[*t.PropertyID]
			if _, known := names[*t.PropertyID]; known {
				occupied[*t.PropertyID] = struct{}{}
			}
		}
		total = total.Add(t.Rent)
		entries = append(entries, e)
	}

	rate := decimal.Zero
	if len(properties) > 0 {
		rate = decimal.NewFromInt(int64(len(occupied))).
			Div(decimal.NewFromInt(int64(len(properties)))).
			Mul(hundred).Round(2)
	}

	return &dto.RentRoll{
		AsOf:             asOf.Format(validation.DateLayout),
		Entries:          entries,
		TotalMonthlyRent: total.Round(2),
		OccupiedUnits:    len(occupied),
		TotalUnits:       len(properties),
		OccupancyRate:    rate,
	}
}

func buildInvoiceSummary(period *dto.PeriodDTO, invoices []*entity.Invoice) *dto.InvoiceSummary {
	idx := make(map[string]int, len(entity.InvoiceStatuses))
	byStatus := make([]dto.InvoiceStatusSummary, len(entity.InvoiceStatuses))
	for i, s := range entity.InvoiceStatuses {
		idx[s] = i
		byStatus[i] = dto.InvoiceStatusSummary{Status: s, Total: decimal.Zero}
	}

	total, outstanding := decimal.Zero, decimal.Zero
	for _, inv := range invoices {
		i, ok := idx[inv.Status]
		if !ok {
			continue
		}
		byStatus[i].Count++
		byStatus[i].Total = byStatus[i].Total.Add(inv.Amount)
		total = total.Add(inv.Amount)
		if inv.Status == entity.InvoiceStatusPending || inv.Status == entity.InvoiceStatusOverdue {
			outstanding = outstanding.Add(inv.Amount)
		}
	}
	for i := range byStatus {
		byStatus[i].Total = byStatus[i].Total.Round(2)
	}

	count := 0
	for _, s := range byStatus {
		count += s.Count
	}

	return &dto.InvoiceSummary{
		Period:            period,
		ByStatus:          byStatus,
		TotalCount:        count,
		TotalAmount:       total.Round(2),
		OutstandingAmount: outstanding.Round(2),
	}
}
