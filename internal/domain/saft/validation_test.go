package saft_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/proman-api/internal/domain/saft"
)

var now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestValidate_SolicitudValida(t *testing.T) {
	assert.Empty(t, saft.Validate(saft.Request{FiscalYear: 2025, StartMonth: 1, EndMonth: 3, NIF: "123456789"}, now))
}

func TestValidate_AcumulaReglas(t *testing.T) {
	got := saft.Validate(saft.Request{FiscalYear: 1999, StartMonth: 6, EndMonth: 2, NIF: "123456780"}, now)
	require.Len(t, got, 3)
	assert.Equal(t, "nif_checksum", got[0].Rule)
	assert.Equal(t, "fiscal_year", got[1].Field)
	assert.Equal(t, "end_month", got[2].Field)
}

func TestValidate_AnioSiguientePermitido(t *testing.T) {
	assert.Empty(t, saft.Validate(saft.Request{FiscalYear: 2026, StartMonth: 1, EndMonth: 1, NIF: "123456789"}, now))
	assert.Len(t, saft.Validate(saft.Request{FiscalYear: 2027, StartMonth: 1, EndMonth: 1, NIF: "123456789"}, now), 1)
}

func TestValidate_NoDuplicaErroresEstructurales(t *testing.T) {
	// NIF sin forma de 9 dígitos y mes fuera de rango: lo reporta la validación estructural.
	assert.Empty(t, saft.Validate(saft.Request{FiscalYear: 2025, StartMonth: 13, EndMonth: 2, NIF: "12"}, now))
}

func TestNewPeriod(t *testing.T) {
	p := saft.NewPeriod(2024, 1, 2, time.UTC)
	assert.Equal(t, "2024-01-01", p.StartDate())
	assert.Equal(t, "2024-02-29", p.EndDate(), "año bisiesto")

	q := saft.NewPeriod(2025, 10, 12, time.UTC)
	assert.Equal(t, "2025-12-31", q.EndDate())
	assert.True(t, q.End.Before(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}
