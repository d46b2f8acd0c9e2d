package saft_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/proman-api/pkg/saft"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dígito de control NIF (módulo 11, pesos 9..2)
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateNIF_Casos(t *testing.T) {
	cases := []struct {
		nif   string
		valid bool
	}{
		{"123456789", true},  // suma 156, 156 mod 11 = 2 -> 9
		{"501442600", true},  // resto 1 -> 10 -> 0
		{"500000000", true},  // suma 45, resto 1 -> 0
		{"123456780", false}, // dígito de control alterado
		{"12345678", false},  // 8 dígitos
		{"1234567890", false},
		{"12345678a", false},
		{"", false},
		{"１23456789", false}, // dígito no ASCII
	}
	for _, tc := range cases {
		t.Run(tc.nif, func(t *testing.T) {
			assert.Equal(t, tc.valid, saft.ValidateNIF(tc.nif))
		})
	}
}

func TestComputeNIFCheckDigit(t *testing.T) {
	d, err := saft.ComputeNIFCheckDigit("12345678")
	require.NoError(t, err)
	assert.Equal(t, byte('9'), d)

	_, err = saft.ComputeNIFCheckDigit("1234567")
	assert.Error(t, err)

	_, err = saft.ComputeNIFCheckDigit("1234567x")
	assert.Error(t, err)
}

// Todo NIF construido con la regla es válido.
func TestValidateNIF_ConstruidosSonValidos(t *testing.T) {
	for base := 10000000; base < 100000000; base += 7919 {
		nif, err := saft.CompleteNIF(fmt.Sprintf("%08d", base))
		require.NoError(t, err)
		assert.True(t, saft.ValidateNIF(nif), "NIF %s debe ser válido", nif)
	}
}

// Cualquier alteración de un solo dígito invalida el NIF cuando el dígito de
// control no es 0 (los restos 0 y 1 comparten el dígito 0 y no garantizan detección).
func TestValidateNIF_CorrupcionDeUnDigito(t *testing.T) {
	checked := 0
	for base := 10000000; base < 100000000 && checked < 300; base += 104729 {
		nif, err := saft.CompleteNIF(fmt.Sprintf("%08d", base))
		require.NoError(t, err)
		if nif[8] == '0' {
			continue
		}
		checked++
		for pos := 0; pos < 9; pos++ {
			for d := byte('0'); d <= '9'; d++ {
				if nif[pos] == d {
					continue
				}
				corrupted := []byte(nif)
				corrupted[pos] = d
				assert.False(t, saft.ValidateNIF(string(corrupted)),
					"%s (alterado desde %s en la posición %d) no debe validar", corrupted, nif, pos)
			}
		}
	}
	assert.Greater(t, checked, 0)
}

// ──────────────────────────────────────────────────────────────────────────────
// Código postal y nombre de fichero
// ──────────────────────────────────────────────────────────────────────────────

func TestValidatePostalCode(t *testing.T) {
	assert.True(t, saft.ValidatePostalCode("1000-001"))
	assert.False(t, saft.ValidatePostalCode("1000001"))
	assert.False(t, saft.ValidatePostalCode("100-0001"))
	assert.False(t, saft.ValidatePostalCode("1000-001 "))
}

func TestFilename_MesesConDosDigitos(t *testing.T) {
	assert.Equal(t, "SAF-T_123456789_2025_01-03.xml", saft.Filename("123456789", 2025, 1, 3))
	assert.Equal(t, "SAF-T_123456789_2024_10-12.xml", saft.Filename("123456789", 2024, 10, 12))
}
