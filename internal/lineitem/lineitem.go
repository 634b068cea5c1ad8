package lineitem

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem es una fila de detalle de un pedido, una venta o una ficha técnica.
// Cantidad y PrecioUnitario se mantienen tal como los escribió el usuario; el
// subtotal siempre se recalcula, nunca se edita directamente.
type LineItem struct {
	ReferenceID    string `json:"reference_id"` // id del producto o insumo, "" si no se seleccionó
	Cantidad       string `json:"cantidad"`
	PrecioUnitario string `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// Field enumera los campos editables de una línea.
type Field string

const (
	FieldReferencia     Field = "reference_id"
	FieldCantidad       Field = "cantidad"
	FieldPrecioUnitario Field = "precio_unitario"
)

// PriceLookup resuelve el precio vigente de un producto a partir de su
// referencia. Se usa en pedidos y ventas: elegir un producto siempre
// sobreescribe el precio unitario, descartando cualquier ajuste manual.
type PriceLookup func(referenceID string) (decimal.Decimal, bool)

// parseDecimal es tolerante: entrada vacía o no numérica vale cero.
// La leniencia es deliberada, el formulario nunca debe fallar por un
// número a medio escribir.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// RecomputeLine devuelve una copia de la línea con el subtotal recalculado
// como cantidad * precio unitario.
func RecomputeLine(li LineItem) LineItem {
	li.Subtotal = parseDecimal(li.Cantidad).Mul(parseDecimal(li.PrecioUnitario))
	return li
}

// RecomputeTotal suma los subtotales de todas las líneas. Lista vacía: cero.
func RecomputeTotal(lines []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range lines {
		total = total.Add(li.Subtotal)
	}
	return total
}

// AddLine agrega una línea con todos los campos en blanco.
func AddLine(lines []LineItem) []LineItem {
	return append(append([]LineItem(nil), lines...), LineItem{Subtotal: decimal.Zero})
}

// RemoveLine elimina la línea en el índice dado. Un índice fuera de rango no
// hace nada: la pantalla nunca presenta índices inválidos.
func RemoveLine(lines []LineItem, index int) []LineItem {
	if index < 0 || index >= len(lines) {
		return lines
	}
	out := append([]LineItem(nil), lines[:index]...)
	return append(out, lines[index+1:]...)
}

// UpdateLineField fija el campo indicado sobre la línea en index y recalcula
// su subtotal. Si el campo es la referencia y hay un PriceLookup, el precio
// unitario se reemplaza por el precio vigente del producto ("" si no existe).
func UpdateLineField(lines []LineItem, index int, field Field, value string, precios PriceLookup) []LineItem {
	if index < 0 || index >= len(lines) {
		return lines
	}

	out := append([]LineItem(nil), lines...)
	li := out[index]

	switch field {
	case FieldReferencia:
		li.ReferenceID = value
		if precios != nil {
			if precio, ok := precios(value); ok {
				li.PrecioUnitario = precio.String()
			} else {
				li.PrecioUnitario = ""
			}
		}
	case FieldCantidad:
		li.Cantidad = value
	case FieldPrecioUnitario:
		li.PrecioUnitario = value
	}

	out[index] = RecomputeLine(li)
	return out
}

// HasDuplicateReferences informa si alguna referencia no vacía aparece más de
// una vez. Solo las fichas técnicas rechazan duplicados; los pedidos y ventas
// pueden repetir producto en varias filas (política por entidad, intencional).
func HasDuplicateReferences(lines []LineItem) bool {
	seen := make(map[string]bool, len(lines))
	for _, li := range lines {
		if li.ReferenceID == "" {
			continue
		}
		if seen[li.ReferenceID] {
			return true
		}
		seen[li.ReferenceID] = true
	}
	return false
}
