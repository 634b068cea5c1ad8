package lifecycle

// Estados del ciclo de vida de pedidos y ventas. Los textos son los que ve el
// usuario y los que persiste el backend, no se traducen.
const (
	EstadoEsperandoPago        = "Esperando Pago"
	EstadoPendientePreparacion = "Pendiente de Preparación"
	EstadoEnPreparacion        = "En Preparación"
	EstadoListoParaEntrega     = "Listo Para Entrega"
	EstadoCompletado           = "Completado"
)

// Estados en orden de avance.
var estados = []string{
	EstadoEsperandoPago,
	EstadoPendientePreparacion,
	EstadoEnPreparacion,
	EstadoListoParaEntrega,
	EstadoCompletado,
}

func EsEstadoValido(estado string) bool {
	for _, e := range estados {
		if e == estado {
			return true
		}
	}
	return false
}

// NextEstado devuelve el único estado siguiente que puede elegirse manualmente
// desde la pantalla de "actualizar estado". Un pedido sin pagar no ofrece
// transición manual: solo el toggle de pagado lo avanza. Completado es
// terminal.
func NextEstado(actual string, pagado bool) (string, bool) {
	if !pagado {
		return "", false
	}
	switch actual {
	case EstadoEsperandoPago:
		return EstadoPendientePreparacion, true
	case EstadoPendientePreparacion:
		return EstadoEnPreparacion, true
	case EstadoEnPreparacion:
		return EstadoListoParaEntrega, true
	case EstadoListoParaEntrega:
		return EstadoCompletado, true
	}
	return "", false
}

// PuedeTransicionar valida una transición manual solicitada por el cliente.
func PuedeTransicionar(actual, siguiente string, pagado bool) bool {
	next, ok := NextEstado(actual, pagado)
	return ok && next == siguiente
}

// AplicarPagado deriva el estado al marcar o desmarcar el pago: pagar fuerza
// "Pendiente de Preparación", despagar vuelve a "Esperando Pago". El llamador
// debe limpiar la fecha de pago cuando pagado pasa a false y exigirla cuando
// pasa a true.
func AplicarPagado(pagado bool) string {
	if pagado {
		return EstadoPendientePreparacion
	}
	return EstadoEsperandoPago
}

// PuedeEditar: los documentos completados, inactivos o anulados no se editan
// ni cambian de estado.
func PuedeEditar(estado string, activo bool, anulado bool) bool {
	return activo && !anulado && estado != EstadoCompletado
}

// PuedeAnular: solo un documento activo y no anulado puede anularse, y
// siempre con un motivo.
func PuedeAnular(activo bool, anulado bool, motivo string) bool {
	return activo && !anulado && motivo != ""
}

// PuedeReactivar: la anulación es permanente.
func PuedeReactivar(activo bool, anulado bool) bool {
	return !activo && !anulado
}
