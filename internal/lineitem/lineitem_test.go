package lineitem

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRecomputeLine(t *testing.T) {
	testCases := []struct {
		name     string
		cantidad string
		precio   string
		want     string
	}{
		{"enteros por decimales", "3", "12.50", "37.5"},
		{"cantidad vacia vale cero", "", "5", "0"},
		{"precio vacio vale cero", "4", "", "0"},
		{"cantidad no numerica vale cero", "abc", "10", "0"},
		{"espacios alrededor", " 2 ", " 3.5 ", "7"},
		{"ambos vacios", "", "", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := RecomputeLine(LineItem{Cantidad: tc.cantidad, PrecioUnitario: tc.precio})
			if !got.Subtotal.Equal(dec(tc.want)) {
				t.Errorf("subtotal = %s, esperado %s", got.Subtotal, tc.want)
			}
		})
	}
}

func TestRecomputeLine_NoMutatesInput(t *testing.T) {
	in := LineItem{Cantidad: "2", PrecioUnitario: "5", Subtotal: decimal.Zero}
	out := RecomputeLine(in)
	if !in.Subtotal.Equal(decimal.Zero) {
		t.Error("la línea original no debe mutar")
	}
	if !out.Subtotal.Equal(dec("10")) {
		t.Errorf("subtotal = %s, esperado 10", out.Subtotal)
	}
}

func TestRecomputeTotal(t *testing.T) {
	if !RecomputeTotal(nil).Equal(decimal.Zero) {
		t.Error("lista vacía debe totalizar cero")
	}

	lines := []LineItem{
		RecomputeLine(LineItem{ReferenceID: "1", Cantidad: "3", PrecioUnitario: "12.50"}),
		RecomputeLine(LineItem{ReferenceID: "2", Cantidad: "2", PrecioUnitario: "4"}),
		RecomputeLine(LineItem{ReferenceID: "3", Cantidad: "", PrecioUnitario: "9"}),
	}
	if got := RecomputeTotal(lines); !got.Equal(dec("45.5")) {
		t.Errorf("total = %s, esperado 45.5", got)
	}
}

func TestRecomputeTotal_TrasOperaciones(t *testing.T) {
	// El total debe coincidir con la suma de subtotales tras cualquier
	// secuencia de agregar/editar/quitar.
	var lines []LineItem
	lines = AddLine(lines)
	lines = UpdateLineField(lines, 0, FieldReferencia, "7", nil)
	lines = UpdateLineField(lines, 0, FieldCantidad, "4", nil)
	lines = UpdateLineField(lines, 0, FieldPrecioUnitario, "2.25", nil)
	lines = AddLine(lines)
	lines = UpdateLineField(lines, 1, FieldCantidad, "10", nil)
	lines = UpdateLineField(lines, 1, FieldPrecioUnitario, "1", nil)
	lines = AddLine(lines)
	lines = RemoveLine(lines, 2)

	suma := decimal.Zero
	for _, li := range lines {
		suma = suma.Add(li.Subtotal)
	}
	if got := RecomputeTotal(lines); !got.Equal(suma) {
		t.Errorf("total = %s, suma de subtotales = %s", got, suma)
	}
	if !suma.Equal(dec("19")) {
		t.Errorf("suma = %s, esperado 19", suma)
	}
}

func TestAddLine(t *testing.T) {
	lines := AddLine(nil)
	if len(lines) != 1 {
		t.Fatalf("len = %d, esperado 1", len(lines))
	}
	li := lines[0]
	if li.ReferenceID != "" || li.Cantidad != "" || li.PrecioUnitario != "" || !li.Subtotal.Equal(decimal.Zero) {
		t.Errorf("la línea nueva debe estar en blanco: %+v", li)
	}
}

func TestRemoveLine_IndiceInvalido(t *testing.T) {
	lines := []LineItem{{ReferenceID: "1"}, {ReferenceID: "2"}}

	for _, idx := range []int{-1, 2, 100} {
		got := RemoveLine(lines, idx)
		if len(got) != 2 {
			t.Errorf("índice %d fuera de rango debe ser no-op, len = %d", idx, len(got))
		}
	}

	got := RemoveLine(lines, 0)
	if len(got) != 1 || got[0].ReferenceID != "2" {
		t.Errorf("tras quitar el índice 0 queda %+v", got)
	}
}

func TestUpdateLineField_ReferenciaSobrescribePrecio(t *testing.T) {
	precios := func(ref string) (decimal.Decimal, bool) {
		if ref == "5" {
			return dec("8.50"), true
		}
		return decimal.Zero, false
	}

	lines := AddLine(nil)
	lines = UpdateLineField(lines, 0, FieldCantidad, "2", precios)
	lines = UpdateLineField(lines, 0, FieldPrecioUnitario, "99", precios) // ajuste manual

	lines = UpdateLineField(lines, 0, FieldReferencia, "5", precios)
	if lines[0].PrecioUnitario != "8.5" {
		t.Errorf("elegir producto debe resetear el precio, quedó %q", lines[0].PrecioUnitario)
	}
	if !lines[0].Subtotal.Equal(dec("17")) {
		t.Errorf("subtotal = %s, esperado 17", lines[0].Subtotal)
	}

	// Producto inexistente: el precio queda vacío y el subtotal en cero.
	lines = UpdateLineField(lines, 0, FieldReferencia, "404", precios)
	if lines[0].PrecioUnitario != "" {
		t.Errorf("precio de producto inexistente debe quedar vacío, quedó %q", lines[0].PrecioUnitario)
	}
	if !lines[0].Subtotal.Equal(decimal.Zero) {
		t.Errorf("subtotal = %s, esperado 0", lines[0].Subtotal)
	}
}

func TestUpdateLineField_SinLookupConservaPrecio(t *testing.T) {
	lines := AddLine(nil)
	lines = UpdateLineField(lines, 0, FieldPrecioUnitario, "3", nil)
	lines = UpdateLineField(lines, 0, FieldReferencia, "9", nil)
	if lines[0].PrecioUnitario != "3" {
		t.Errorf("sin lookup el precio no cambia, quedó %q", lines[0].PrecioUnitario)
	}
}

func TestHasDuplicateReferences(t *testing.T) {
	testCases := []struct {
		name  string
		lines []LineItem
		want  bool
	}{
		{"duplicado", []LineItem{{ReferenceID: "A"}, {ReferenceID: "B"}, {ReferenceID: "A"}}, true},
		{"sin duplicados", []LineItem{{ReferenceID: "A"}, {ReferenceID: "B"}}, false},
		{"vacios no cuentan", []LineItem{{ReferenceID: "A"}, {ReferenceID: ""}, {ReferenceID: ""}}, false},
		{"lista vacia", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasDuplicateReferences(tc.lines); got != tc.want {
				t.Errorf("HasDuplicateReferences = %v, esperado %v", got, tc.want)
			}
		})
	}
}
