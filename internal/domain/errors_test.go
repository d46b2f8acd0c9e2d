package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/proman-api/internal/domain"
)

func TestValidationError_EsErrInvalidInput(t *testing.T) {
	err := domain.Invalid("nif", "nif", "NIF inválido")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	wrapped := fmt.Errorf("saft: %w", err)
	assert.True(t, errors.Is(wrapped, domain.ErrInvalidInput))
	require.Len(t, domain.Violations(wrapped), 1)
}

func TestMergeValidation_AcumulaTodas(t *testing.T) {
	err := domain.MergeValidation(
		domain.Invalid("company_info.nif", "nif", "dígito de control inválido"),
		nil,
		domain.Invalid("company_info.postal_code", "pt_postal_code", "formato NNNN-NNN"),
	)
	require.Error(t, err)
	v := domain.Violations(err)
	require.Len(t, v, 2)
	assert.Equal(t, "company_info.nif", v[0].Field)
	assert.Equal(t, "company_info.postal_code", v[1].Field)
}

func TestMergeValidation_SinErrores(t *testing.T) {
	assert.NoError(t, domain.MergeValidation(nil, nil))
	assert.Nil(t, domain.NewValidationError())
}

func TestMergeValidation_PropagaErrorNoValidacion(t *testing.T) {
	boom := errors.New("boom")
	assert.Same(t, boom, domain.MergeValidation(domain.Invalid("a", "b", "c"), boom))
}

func TestDatabaseError_ConservaCausa(t *testing.T) {
	cause := errors.New("conexión rechazada")
	err := domain.DatabaseError("listar recibos", cause)
	assert.True(t, errors.Is(err, domain.ErrDatabase))
	assert.True(t, errors.Is(err, cause))
}
