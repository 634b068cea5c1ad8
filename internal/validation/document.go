package validation

import (
	"fmt"

	"pasteleria-backend/internal/lineitem"
)

// Validación de documento completo para pedidos y ventas. Los errores por
// línea se indexan como "{campo}_{i}" para que la pantalla los pinte junto a
// la fila correspondiente.

func ValidarPedido(clienteID, fechaEntrega string, detalles []lineitem.LineItem) Errors {
	errs := Errors{}
	Requerido(errs, "id_cliente", "El cliente es obligatorio", clienteID)
	Requerido(errs, "fecha_entrega", "La fecha de entrega es obligatoria", fechaEntrega)
	if len(detalles) == 0 {
		errs["detallesPedido"] = "Debe agregar al menos un detalle de pedido"
	}
	validarDetalles(errs, detalles)
	return errs
}

func ValidarVenta(clienteID, fechaVenta string, detalles []lineitem.LineItem) Errors {
	errs := Errors{}
	Requerido(errs, "id_cliente", "El cliente es obligatorio", clienteID)
	Requerido(errs, "fecha_venta", "La fecha de venta es obligatoria", fechaVenta)
	if len(detalles) == 0 {
		errs["detalleVentas"] = "Debe agregar al menos un detalle de venta"
	}
	validarDetalles(errs, detalles)
	return errs
}

func validarDetalles(errs Errors, detalles []lineitem.LineItem) {
	for i, d := range detalles {
		if d.ReferenceID == "" {
			errs[fmt.Sprintf("producto_%d", i)] = "El producto es obligatorio"
		}
		NumeroPositivo(errs, fmt.Sprintf("cantidad_%d", i), "La cantidad", d.Cantidad)
		NumeroPositivo(errs, fmt.Sprintf("precio_unitario_%d", i), "El precio unitario", d.PrecioUnitario)
	}
}

// ValidarFichaTecnica: producto y descripción obligatorios, al menos un
// insumo, insumos y cantidades por línea, y sin insumos repetidos.
func ValidarFichaTecnica(productoID, descripcion string, detalles []lineitem.LineItem) Errors {
	errs := Errors{}
	Requerido(errs, "id_producto", "El producto es requerido", productoID)
	Requerido(errs, "descripcion", "La descripción es requerida", descripcion)
	if len(detalles) == 0 {
		errs["insumos"] = "Los insumos son requeridos"
	}
	for i, d := range detalles {
		if d.ReferenceID == "" {
			errs[fmt.Sprintf("id_insumo_%d", i)] = "El insumo es requerido"
		}
		NumeroPositivo(errs, fmt.Sprintf("cantidad_%d", i), "La cantidad", d.Cantidad)
	}
	if lineitem.HasDuplicateReferences(detalles) {
		errs["general"] = "No se pueden tener insumos duplicados."
	}
	return errs
}
