package postgres

import (
	"context"
	"fmt"
)

// schema crea las tablas si no existen. Se ejecuta al arrancar (y con rentctl dbcheck --migrate).
// Todas las filas pertenecen a un user_id; los importes son NUMERIC(12,2).
const schema = `
CREATE TABLE IF NOT EXISTS properties (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    name        TEXT NOT NULL,
    address     TEXT NOT NULL,
    city        TEXT,
    postal_code TEXT,
    type        TEXT,
    bedrooms    INTEGER NOT NULL DEFAULT 0,
    rent        NUMERIC(12,2) NOT NULL DEFAULT 0,
    status      TEXT NOT NULL DEFAULT 'available',
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS tenants (
    id             TEXT PRIMARY KEY,
    user_id        TEXT NOT NULL,
    property_id    TEXT REFERENCES properties(id) ON DELETE SET NULL,
    name           TEXT NOT NULL,
    email          TEXT,
    phone          TEXT,
    nif            TEXT,
    rent           NUMERIC(12,2) NOT NULL DEFAULT 0,
    lease_start    DATE NOT NULL,
    lease_end      DATE,
    payment_status TEXT NOT NULL DEFAULT 'current',
    notes          TEXT,
    created_at     TIMESTAMPTZ NOT NULL,
    updated_at     TIMESTAMPTZ NOT NULL,
    CHECK (lease_end IS NULL OR lease_end >= lease_start)
);

CREATE TABLE IF NOT EXISTS invoices (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    tenant_id   TEXT NOT NULL REFERENCES tenants(id),
    property_id TEXT REFERENCES properties(id) ON DELETE SET NULL,
    number      TEXT,
    description TEXT,
    amount      NUMERIC(12,2) NOT NULL CHECK (amount > 0),
    issue_date  DATE NOT NULL,
    due_date    DATE NOT NULL,
    status      TEXT NOT NULL,
    paid_date   DATE,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL,
    CHECK (status <> 'paid' OR paid_date IS NOT NULL)
);

CREATE TABLE IF NOT EXISTS invoice_line_items (
    invoice_id  TEXT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
    position    INTEGER NOT NULL,
    description TEXT NOT NULL,
    quantity    NUMERIC(12,4) NOT NULL,
    unit_price  NUMERIC(12,4) NOT NULL,
    total       NUMERIC(12,2) NOT NULL,
    PRIMARY KEY (invoice_id, position)
);

CREATE TABLE IF NOT EXISTS receipts (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    tenant_id   TEXT NOT NULL REFERENCES tenants(id),
    property_id TEXT NOT NULL REFERENCES properties(id),
    invoice_id  TEXT REFERENCES invoices(id) ON DELETE SET NULL,
    amount      NUMERIC(12,2) NOT NULL CHECK (amount > 0),
    date        DATE NOT NULL,
    type        TEXT NOT NULL,
    status      TEXT NOT NULL,
    description TEXT,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    property_id TEXT NOT NULL REFERENCES properties(id),
    amount      NUMERIC(12,2) NOT NULL CHECK (amount > 0),
    date        DATE NOT NULL,
    category    TEXT NOT NULL,
    description TEXT,
    vendor      TEXT,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS correspondence_templates (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    name       TEXT NOT NULL,
    type       TEXT NOT NULL,
    subject    TEXT,
    content    TEXT NOT NULL,
    variables  TEXT[] NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS correspondences (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    template_id TEXT NOT NULL,
    tenant_id   TEXT,
    subject     TEXT,
    content     TEXT NOT NULL,
    status      TEXT NOT NULL,
    sent_at     TIMESTAMPTZ,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_receipts_invoice ON receipts(invoice_id) WHERE invoice_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_properties_user ON properties(user_id, name);
CREATE INDEX IF NOT EXISTS idx_tenants_user ON tenants(user_id, name);
CREATE INDEX IF NOT EXISTS idx_invoices_user_issue ON invoices(user_id, issue_date);
CREATE INDEX IF NOT EXISTS idx_invoices_user_due ON invoices(user_id, due_date);
CREATE INDEX IF NOT EXISTS idx_receipts_user_date ON receipts(user_id, date);
CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses(user_id, date);
`

// Migrate aplica el esquema (idempotente).
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
