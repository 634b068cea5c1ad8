package production

import (
	"regexp"
	"testing"
)

func TestGenerarNumeroOrden(t *testing.T) {
	formato := regexp.MustCompile(`^ORD\d{6}$`)
	for i := 0; i < 50; i++ {
		numero, err := GenerarNumeroOrden()
		if err != nil {
			t.Fatalf("error inesperado: %v", err)
		}
		if !formato.MatchString(numero) {
			t.Fatalf("número con formato inválido: %q", numero)
		}
	}
}
