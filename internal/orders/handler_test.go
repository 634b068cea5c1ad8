package orders

import (
	"fmt"
	"testing"

	"pasteleria-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestADetallesTruncaCantidad(t *testing.T) {
	detalles, total := aDetalles([]DetallePedidoRequest{
		{ProductoID: "1", Cantidad: "2.5", PrecioUnitario: "10"},
		{ProductoID: "2", Cantidad: "3", PrecioUnitario: "4.50"},
	})

	if detalles[0].Cantidad != 2 {
		t.Errorf("cantidad decimal debe truncarse a 2, devolvió %d", detalles[0].Cantidad)
	}
	// La fila persistida debe cumplir subtotal = cantidad * precio unitario.
	esperado := decimal.NewFromInt(20)
	if !detalles[0].Subtotal.Equal(esperado) {
		t.Errorf("subtotal con cantidad truncada debe ser %s, devolvió %s", esperado, detalles[0].Subtotal)
	}
	if !detalles[1].Subtotal.Equal(decimal.RequireFromString("13.5")) {
		t.Errorf("subtotal de la línea entera incorrecto: %s", detalles[1].Subtotal)
	}
	if !total.Equal(decimal.RequireFromString("33.5")) {
		t.Errorf("total debe ser la suma de los subtotales, devolvió %s", total)
	}

	for i, d := range detalles {
		producto := d.PrecioUnitario.Mul(decimal.NewFromInt(int64(d.Cantidad)))
		if !d.Subtotal.Equal(producto) {
			t.Errorf("línea %d: subtotal %s no es cantidad*precio %s", i, d.Subtotal, producto)
		}
	}
}

func TestResolverCambioActivo(t *testing.T) {
	t.Run("desactivar sin motivo se rechaza", func(t *testing.T) {
		pedido := models.Pedido{Activo: true}
		errs, err := resolverCambioActivo(&pedido, false, "")
		if err != nil {
			t.Fatalf("error inesperado: %v", err)
		}
		if errs["anulacion"] == "" {
			t.Error("falta el error de campo para el motivo de anulación")
		}
		if !pedido.Activo || pedido.Anulado() {
			t.Error("el pedido no debe modificarse cuando falta el motivo")
		}
	})

	t.Run("desactivar con motivo anula", func(t *testing.T) {
		pedido := models.Pedido{Activo: true}
		errs, err := resolverCambioActivo(&pedido, false, "cliente canceló")
		if err != nil || !errs.Empty() {
			t.Fatalf("anulación válida rechazada: errs=%v err=%v", errs, err)
		}
		if pedido.Activo || pedido.Anulacion != "cliente canceló" {
			t.Errorf("pedido debe quedar inactivo y anulado: %+v", pedido)
		}
	})

	t.Run("reactivar anulado se rechaza", func(t *testing.T) {
		pedido := models.Pedido{Activo: false, Anulacion: "duplicado"}
		_, err := resolverCambioActivo(&pedido, true, "")
		if err == nil {
			t.Fatal("un pedido anulado nunca puede reactivarse")
		}
		if pedido.Activo {
			t.Error("el pedido anulado no debe quedar activo")
		}
	})

	t.Run("anular dos veces se rechaza", func(t *testing.T) {
		pedido := models.Pedido{Activo: false, Anulacion: "duplicado"}
		_, err := resolverCambioActivo(&pedido, false, "otro motivo")
		if err == nil {
			t.Fatal("un pedido ya anulado no puede anularse de nuevo")
		}
		if pedido.Anulacion != "duplicado" {
			t.Error("el motivo original no debe sobreescribirse")
		}
	})
}

func TestEsNumeroDuplicado(t *testing.T) {
	if !esNumeroDuplicado(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)) {
		t.Error("una violación de clave duplicada debe reintentarse")
	}
	if esNumeroDuplicado(gorm.ErrForeignKeyViolated) {
		t.Error("una violación de clave foránea no debe reintentarse")
	}
	if esNumeroDuplicado(nil) {
		t.Error("nil no es un duplicado")
	}
}
