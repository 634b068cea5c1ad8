package sales

import (
	"testing"

	"pasteleria-backend/internal/lineitem"
	"pasteleria-backend/internal/models"

	"github.com/shopspring/decimal"
)

func TestADetallesTruncaCantidad(t *testing.T) {
	detalles, total := aDetalles([]lineitem.LineItem{
		{ReferenceID: "1", Cantidad: "2.5", PrecioUnitario: "10"},
	})

	if detalles[0].Cantidad != 2 {
		t.Errorf("cantidad decimal debe truncarse a 2, devolvió %d", detalles[0].Cantidad)
	}
	if !detalles[0].Subtotal.Equal(decimal.NewFromInt(20)) {
		t.Errorf("subtotal debe calcularse con la cantidad truncada, devolvió %s", detalles[0].Subtotal)
	}
	if !total.Equal(decimal.NewFromInt(20)) {
		t.Errorf("total incorrecto: %s", total)
	}
}

func TestResolverCambioActivo(t *testing.T) {
	t.Run("desactivar sin motivo se rechaza", func(t *testing.T) {
		venta := models.Venta{Activo: true}
		errs, err := resolverCambioActivo(&venta, false, "")
		if err != nil {
			t.Fatalf("error inesperado: %v", err)
		}
		if errs["anulacion"] == "" {
			t.Error("falta el error de campo para el motivo de anulación")
		}
		if !venta.Activo || venta.Anulado() {
			t.Error("la venta no debe modificarse cuando falta el motivo")
		}
	})

	t.Run("desactivar con motivo anula", func(t *testing.T) {
		venta := models.Venta{Activo: true}
		errs, err := resolverCambioActivo(&venta, false, "pago rechazado")
		if err != nil || !errs.Empty() {
			t.Fatalf("anulación válida rechazada: errs=%v err=%v", errs, err)
		}
		if venta.Activo || venta.Anulacion != "pago rechazado" {
			t.Errorf("venta debe quedar inactiva y anulada: %+v", venta)
		}
	})

	t.Run("reactivar anulada se rechaza", func(t *testing.T) {
		venta := models.Venta{Activo: false, Anulacion: "duplicada"}
		_, err := resolverCambioActivo(&venta, true, "")
		if err == nil {
			t.Fatal("una venta anulada nunca puede reactivarse")
		}
	})
}
