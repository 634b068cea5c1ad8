package lifecycle

import "testing"

func TestNextEstado(t *testing.T) {
	testCases := []struct {
		name   string
		actual string
		pagado bool
		want   string
		ok     bool
	}{
		{"esperando pago sin pagar no ofrece transicion", EstadoEsperandoPago, false, "", false},
		{"esperando pago pagado avanza a pendiente", EstadoEsperandoPago, true, EstadoPendientePreparacion, true},
		{"pendiente avanza a en preparacion", EstadoPendientePreparacion, true, EstadoEnPreparacion, true},
		{"en preparacion avanza a listo", EstadoEnPreparacion, true, EstadoListoParaEntrega, true},
		{"listo avanza a completado", EstadoListoParaEntrega, true, EstadoCompletado, true},
		{"completado es terminal", EstadoCompletado, true, "", false},
		{"completado sin pagar tambien terminal", EstadoCompletado, false, "", false},
		{"sin pagar nunca hay transicion manual", EstadoEnPreparacion, false, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NextEstado(tc.actual, tc.pagado)
			if ok != tc.ok || got != tc.want {
				t.Errorf("NextEstado(%q, %v) = (%q, %v), esperado (%q, %v)",
					tc.actual, tc.pagado, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestPuedeTransicionar(t *testing.T) {
	if !PuedeTransicionar(EstadoEsperandoPago, EstadoPendientePreparacion, true) {
		t.Error("transición válida rechazada")
	}
	// No se puede saltar estados.
	if PuedeTransicionar(EstadoEsperandoPago, EstadoEnPreparacion, true) {
		t.Error("no debe permitir saltar estados")
	}
	// Ni retroceder.
	if PuedeTransicionar(EstadoEnPreparacion, EstadoPendientePreparacion, true) {
		t.Error("no debe permitir retroceder")
	}
	if PuedeTransicionar(EstadoCompletado, EstadoCompletado, true) {
		t.Error("completado no admite transiciones")
	}
}

func TestAplicarPagado(t *testing.T) {
	if got := AplicarPagado(true); got != EstadoPendientePreparacion {
		t.Errorf("pagar debe forzar %q, devolvió %q", EstadoPendientePreparacion, got)
	}
	if got := AplicarPagado(false); got != EstadoEsperandoPago {
		t.Errorf("despagar debe volver a %q, devolvió %q", EstadoEsperandoPago, got)
	}
}

func TestPuedeEditar(t *testing.T) {
	if !PuedeEditar(EstadoEnPreparacion, true, false) {
		t.Error("documento activo en preparación debe ser editable")
	}
	if PuedeEditar(EstadoCompletado, true, false) {
		t.Error("completado no es editable")
	}
	if PuedeEditar(EstadoEnPreparacion, false, false) {
		t.Error("inactivo no es editable")
	}
	if PuedeEditar(EstadoEnPreparacion, true, true) {
		t.Error("anulado no es editable")
	}
}

func TestAnulacion(t *testing.T) {
	if PuedeAnular(true, false, "") {
		t.Error("anular sin motivo no está permitido")
	}
	if !PuedeAnular(true, false, "cliente desistió") {
		t.Error("anular con motivo debe permitirse")
	}
	if PuedeAnular(false, false, "motivo") {
		t.Error("un documento inactivo no puede anularse de nuevo")
	}
	// La anulación es permanente.
	if PuedeReactivar(false, true) {
		t.Error("un documento anulado nunca se reactiva")
	}
	if !PuedeReactivar(false, false) {
		t.Error("un documento desactivado sin anulación sí se reactiva")
	}
}

func TestEsEstadoValido(t *testing.T) {
	for _, e := range estados {
		if !EsEstadoValido(e) {
			t.Errorf("%q debería ser válido", e)
		}
	}
	if EsEstadoValido("Enviado") {
		t.Error("estado desconocido aceptado")
	}
}
