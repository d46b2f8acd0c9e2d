package saft

import "fmt"

// pesos del dígito de control del NIF portugués, aplicados a los 8 primeros dígitos de izquierda a derecha.
var nifWeights = [8]int{9, 8, 7, 6, 5, 4, 3, 2}

// NIFLength es la longitud exacta de un NIF.
const NIFLength = 9

// IsNIFShape indica si s tiene exactamente 9 dígitos ASCII (sin comprobar el dígito de control).
func IsNIFShape(s string) bool {
	if len(s) != NIFLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ValidateNIF devuelve true si nif tiene 9 dígitos y el noveno coincide con el
// dígito de control módulo 11 calculado sobre los ocho primeros.
func ValidateNIF(nif string) bool {
	if !IsNIFShape(nif) {
		return false
	}
	expected, err := ComputeNIFCheckDigit(nif[:8])
	if err != nil {
		return false
	}
	return nif[8] == expected
}

// ComputeNIFCheckDigit calcula el dígito de control (como carácter '0'..'9') para los 8 primeros dígitos.
// check = 11 - (suma ponderada mod 11); 10 y 11 se convierten en 0.
func ComputeNIFCheckDigit(first8 string) (byte, error) {
	if len(first8) != 8 {
		return 0, fmt.Errorf("saft: se requieren 8 dígitos para calcular el dígito de control, se recibieron %d", len(first8))
	}
	var sum int
	for i := 0; i < 8; i++ {
		c := first8[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("saft: carácter no numérico %q en la posición %d", c, i)
		}
		sum += int(c-'0') * nifWeights[i]
	}
	check := 11 - sum%11
	if check >= 10 {
		check = 0
	}
	return byte('0' + check), nil
}

// CompleteNIF devuelve el NIF de 9 dígitos a partir de sus 8 primeros dígitos.
func CompleteNIF(first8 string) (string, error) {
	d, err := ComputeNIFCheckDigit(first8)
	if err != nil {
		return "", err
	}
	return first8 + string(d), nil
}
