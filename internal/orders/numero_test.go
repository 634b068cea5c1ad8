package orders

import (
	"strings"
	"testing"
)

func TestGenerarNumeroPedido(t *testing.T) {
	vistos := make(map[string]bool)
	for i := 0; i < 50; i++ {
		numero, err := GenerarNumeroPedido()
		if err != nil {
			t.Fatalf("error inesperado: %v", err)
		}
		if len(numero) != 10 {
			t.Fatalf("el número debe tener 10 caracteres, devolvió %q", numero)
		}
		for _, r := range numero {
			if !strings.ContainsRune(numeroAlfabeto, r) {
				t.Fatalf("carácter fuera del alfabeto en %q", numero)
			}
		}
		vistos[numero] = true
	}
	// Con 36^10 combinaciones, 50 números repetidos delatarían un generador roto.
	if len(vistos) < 2 {
		t.Error("el generador devuelve siempre el mismo número")
	}
}
