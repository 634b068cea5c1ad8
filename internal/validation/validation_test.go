package validation

import (
	"strings"
	"testing"

	"pasteleria-backend/internal/lineitem"
)

func TestNombre(t *testing.T) {
	testCases := []struct {
		name    string
		value   string
		wantErr string // fragmento esperado del mensaje, "" si válido
	}{
		{"valido con tilde y espacio", "María José", ""},
		{"rechaza digitos", "Nombre123", "caracteres especiales ni números"},
		{"rechaza puntuacion", "Juan.Perez", "caracteres especiales ni números"},
		{"vacio", "", "obligatorio"},
		{"muy corto", "Ana", "al menos 5 letras"},
		{"muy largo", strings.Repeat("a", 31), "no debe exceder los 30"},
		{"enie valida", "Ñoño Pérez", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Errors{}
			Nombre(errs, "nombre", "El nombre", tc.value, 5)
			msg := errs["nombre"]
			if tc.wantErr == "" && msg != "" {
				t.Errorf("%q no debería tener error, devolvió %q", tc.value, msg)
			}
			if tc.wantErr != "" && !strings.Contains(msg, tc.wantErr) {
				t.Errorf("%q: mensaje %q no contiene %q", tc.value, msg, tc.wantErr)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		ok    bool
	}{
		{"valido", "ana@mail.com", true},
		{"valido con signos", "a.b+c%d@sub.dominio.co", true},
		{"vacio", "", false},
		{"muy corto", "a@b", false},
		{"muy largo", strings.Repeat("a", 25) + "@mail.com", false},
		{"sin arroba", "anamail.com", false},
		{"dominio sin punto", "ana@mailcom", false},
		{"tld de una letra", "ana@mail.c", false},
		{"local invalida", "an a@mail.com", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Errors{}
			Email(errs, "email", tc.value)
			if tc.ok != errs.Empty() {
				t.Errorf("Email(%q): errores %v, esperado ok=%v", tc.value, errs, tc.ok)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		ok    bool
	}{
		{"valida", "Abcdef1!", true},
		{"vacia", "", false},
		{"corta", "Ab1!", false},
		{"larga", "Abcdefgh1234567!", false},
		{"sin letra", "12345678!", false},
		{"sin numero", "Abcdefgh!", false},
		{"sin especial", "Abcdefg1", false},
		{"guion cuenta como especial", "Abcdef1-", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Errors{}
			Password(errs, "password", tc.value)
			if tc.ok != errs.Empty() {
				t.Errorf("Password(%q): errores %v, esperado ok=%v", tc.value, errs, tc.ok)
			}
		})
	}
}

func TestTelefono(t *testing.T) {
	errs := Errors{}
	Telefono(errs, "contacto", "El número de contacto", "3011234567")
	if !errs.Empty() {
		t.Errorf("teléfono válido rechazado: %v", errs)
	}

	for _, v := range []string{"", "123456", "301-23456", "telefono"} {
		errs := Errors{}
		Telefono(errs, "contacto", "El número de contacto", v)
		if errs.Empty() {
			t.Errorf("teléfono %q debería ser inválido", v)
		}
	}
}

func TestNumeroPositivo(t *testing.T) {
	for _, v := range []string{"1", "0.5", "1000"} {
		errs := Errors{}
		NumeroPositivo(errs, "precio", "El precio", v)
		if !errs.Empty() {
			t.Errorf("%q debería ser positivo válido: %v", v, errs)
		}
	}
	for _, v := range []string{"", "0", "-3", "abc"} {
		errs := Errors{}
		NumeroPositivo(errs, "precio", "El precio", v)
		if errs.Empty() {
			t.Errorf("%q debería ser inválido", v)
		}
	}
}

func TestValidarPedido(t *testing.T) {
	// Sin líneas siempre falta el detalle, sin importar el resto.
	errs := ValidarPedido("1", "2026-09-01", nil)
	if errs["detallesPedido"] != "Debe agregar al menos un detalle de pedido" {
		t.Errorf("falta el error de detalle: %v", errs)
	}

	detalles := []lineitem.LineItem{
		{ReferenceID: "1", Cantidad: "2", PrecioUnitario: "5"},
		{ReferenceID: "", Cantidad: "", PrecioUnitario: "0"},
	}
	errs = ValidarPedido("", "", detalles)
	for _, key := range []string{"id_cliente", "fecha_entrega", "producto_1", "cantidad_1", "precio_unitario_1"} {
		if errs[key] == "" {
			t.Errorf("falta error para %q: %v", key, errs)
		}
	}
	// La línea 0 está completa, no debe aportar errores.
	for _, key := range []string{"producto_0", "cantidad_0", "precio_unitario_0"} {
		if errs[key] != "" {
			t.Errorf("error inesperado para %q: %v", key, errs[key])
		}
	}

	errs = ValidarPedido("1", "2026-09-01", detalles[:1])
	if !errs.Empty() {
		t.Errorf("pedido completo no debería tener errores: %v", errs)
	}
}

func TestValidarVenta(t *testing.T) {
	errs := ValidarVenta("", "", nil)
	if errs["detalleVentas"] != "Debe agregar al menos un detalle de venta" {
		t.Errorf("falta el error de detalle de venta: %v", errs)
	}
	if errs["fecha_venta"] == "" || errs["id_cliente"] == "" {
		t.Errorf("faltan errores de cabecera: %v", errs)
	}
}

func TestValidarFichaTecnica(t *testing.T) {
	detalles := []lineitem.LineItem{
		{ReferenceID: "3", Cantidad: "0.5"},
		{ReferenceID: "3", Cantidad: "1"},
	}
	errs := ValidarFichaTecnica("1", "bizcocho tradicional", detalles)
	if errs["general"] != "No se pueden tener insumos duplicados." {
		t.Errorf("debe rechazar insumos duplicados: %v", errs)
	}

	errs = ValidarFichaTecnica("", "", nil)
	for _, key := range []string{"id_producto", "descripcion", "insumos"} {
		if errs[key] == "" {
			t.Errorf("falta error para %q: %v", key, errs)
		}
	}

	detalles = []lineitem.LineItem{{ReferenceID: "3", Cantidad: "0.5"}, {ReferenceID: "7", Cantidad: "2"}}
	errs = ValidarFichaTecnica("1", "bizcocho tradicional", detalles)
	if !errs.Empty() {
		t.Errorf("ficha válida no debería tener errores: %v", errs)
	}
}
