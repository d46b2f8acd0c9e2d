package memory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/proman-api/internal/domain/entity"
)

// DemoUserID propietario de los datos de demostración.
const DemoUserID = "00000000-0000-0000-0000-0000000000d0"

// SeedDemo carga una cartera pequeña (2 inmuebles, 2 inquilinos) con facturas, recibos
// y gastos mensuales del año en curso hasta el mes de now. Es determinista para un now dado.
func (s *Store) SeedDemo(userID string, now time.Time) {
	loc := now.Location()
	year := now.Year()
	created := time.Date(year, 1, 1, 9, 0, 0, 0, loc)

	s.mu.Lock()
	defer s.mu.Unlock()

	props := []entity.Property{
		{ID: "demo-prop-1", Name: "Apartamento T2 Alfama", Address: "Rua dos Remédios 12, 2.º Esq", City: "Lisboa", PostalCode: "1100-441", Type: "apartment", Bedrooms: 2, Rent: decimal.NewFromInt(950), Status: entity.PropertyStatusOccupied},
		{ID: "demo-prop-2", Name: "Moradia Foz", Address: "Rua do Passeio Alegre 80", City: "Porto", PostalCode: "4150-573", Type: "house", Bedrooms: 3, Rent: decimal.NewFromInt(1450), Status: entity.PropertyStatusOccupied},
		{ID: "demo-prop-3", Name: "Estúdio Coimbra", Address: "Rua da Sofia 5", City: "Coimbra", PostalCode: "3000-389", Type: "apartment", Bedrooms: 0, Rent: decimal.NewFromInt(480), Status: entity.PropertyStatusAvailable},
	}
	for _, p := range props {
		p.UserID, p.CreatedAt, p.UpdatedAt = userID, created, created
		s.properties[p.ID] = p
	}

	p1, p2 := "demo-prop-1", "demo-prop-2"
	tenants := []entity.Tenant{
		{ID: "demo-tenant-1", PropertyID: &p1, Name: "Ana Sousa", Email: "ana.sousa@example.pt", Phone: "+351912000001", NIF: "123456789", Rent: decimal.NewFromInt(950), LeaseStart: time.Date(year-1, 9, 1, 0, 0, 0, 0, loc)},
		{ID: "demo-tenant-2", PropertyID: &p2, Name: "Bruno Costa", Email: "bruno.costa@example.pt", Phone: "+351912000002", Rent: decimal.NewFromInt(1450), LeaseStart: time.Date(year, 1, 1, 0, 0, 0, 0, loc)},
	}
	for _, t := range tenants {
		t.UserID, t.PaymentStatus, t.CreatedAt, t.UpdatedAt = userID, entity.PaymentStatusCurrent, created, created
		s.tenants[t.ID] = t
	}

	for m := time.January; m <= now.Month(); m++ {
		issue := time.Date(year, m, 1, 0, 0, 0, 0, loc)
		due := time.Date(year, m, 8, 0, 0, 0, 0, loc)
		paid := m < now.Month()
		for i, t := range tenants {
			inv := entity.Invoice{
				ID:          fmt.Sprintf("demo-inv-%d-%02d-%d", year, m, i+1),
				UserID:      userID,
				TenantID:    t.ID,
				PropertyID:  t.PropertyID,
				Description: fmt.Sprintf("Renda %02d/%d", m, year),
				Amount:      t.Rent,
				IssueDate:   issue,
				DueDate:     due,
				Status:      entity.InvoiceStatusPending,
				LineItems: []entity.LineItem{{
					Description: fmt.Sprintf("Renda %02d/%d", m, year),
					Quantity:    decimal.NewFromInt(1),
					UnitPrice:   t.Rent,
					Total:       t.Rent,
				}},
				CreatedAt: issue,
				UpdatedAt: issue,
			}
			if paid {
				pd := due.AddDate(0, 0, -2)
				inv.Status, inv.PaidDate = entity.InvoiceStatusPaid, &pd
				invID := inv.ID
				s.receipts["demo-rcpt-"+inv.ID[9:]] = entity.Receipt{
					ID: "demo-rcpt-" + inv.ID[9:], UserID: userID, TenantID: t.ID, PropertyID: *t.PropertyID,
					InvoiceID: &invID, Amount: t.Rent, Date: pd, Type: entity.ReceiptTypeRent,
					Status: entity.ReceiptStatusPaid, Description: inv.Description, CreatedAt: pd, UpdatedAt: pd,
				}
			}
			s.invoices[inv.ID] = inv
		}

		exp := entity.Expense{
			ID: fmt.Sprintf("demo-exp-%d-%02d", year, m), UserID: userID, PropertyID: p1,
			Amount: decimal.RequireFromString("45.90"), Date: time.Date(year, m, 15, 0, 0, 0, 0, loc),
			Category: entity.ExpenseCategoryUtilities, Description: "Condomínio", Vendor: "Administração Alfama",
			CreatedAt: issue, UpdatedAt: issue,
		}
		s.expenses[exp.ID] = exp
	}

	ins := entity.Expense{
		ID: fmt.Sprintf("demo-exp-%d-ins", year), UserID: userID, PropertyID: p2,
		Amount: decimal.RequireFromString("320.00"), Date: time.Date(year, 1, 20, 0, 0, 0, 0, loc),
		Category: entity.ExpenseCategoryInsurance, Description: "Seguro multirriscos", Vendor: "Fidelidade",
		CreatedAt: created, UpdatedAt: created,
	}
	s.expenses[ins.ID] = ins

	tpl := entity.CorrespondenceTemplate{
		ID: "demo-tpl-reminder", UserID: userID, Name: "Lembrete de renda", Type: "reminder",
		Subject:   "Renda de {{property_name}}",
		Content:   "Caro(a) {{tenant_name}},\n\nLembramos que a renda de {{rent_amount}} EUR vence em breve.\n\nLisboa, {{current_date}}",
		Variables: []string{"property_name", "tenant_name", "rent_amount", "current_date"},
		CreatedAt: created, UpdatedAt: created,
	}
	s.templates[tpl.ID] = tpl
}
