package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestNIFCheckDigit(t *testing.T) {
	out, err := execute(t, "nif", "check-digit", "12345678")
	require.NoError(t, err)
	assert.Equal(t, "123456789\n", out)
}

func TestNIFCheckDigit_Invalido(t *testing.T) {
	_, err := execute(t, "nif", "check-digit", "1234567a")
	assert.Error(t, err)
}

func TestNIFValidate(t *testing.T) {
	out, err := execute(t, "nif", "validate", "123456789", "123456780", "12345")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 de 3")
	assert.Contains(t, out, "123456789\tválido")
	assert.Contains(t, out, "123456780\tinválido (dígito de control)")
	assert.Contains(t, out, "12345\tinválido (se esperan 9 dígitos)")
}
