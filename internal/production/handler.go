package production

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"pasteleria-backend/internal/audit"
	"pasteleria-backend/internal/auth"
	"pasteleria-backend/internal/database"
	"pasteleria-backend/internal/models"
	"pasteleria-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// El cliente envía los números de las ventas marcadas; las cantidades por
// producto se consolidan aquí con el agregador, nunca se confía en el detalle
// que calcule la pantalla.
type OrdenProduccionRequest struct {
	FechaOrden   string   `json:"fecha_orden"`
	NumeroVentas []string `json:"numero_ventas"`
}

type DetalleOrdenResponse struct {
	ProductoID uint   `json:"id_producto"`
	Producto   string `json:"producto"`
	Cantidad   int    `json:"cantidad"`
}

type OrdenProduccionResponse struct {
	ID           uint                   `json:"id_orden"`
	NumeroOrden  string                 `json:"numero_orden"`
	FechaOrden   string                 `json:"fecha_orden"`
	Detalles     []DetalleOrdenResponse `json:"productos"`
	NumeroVentas []string               `json:"numero_ventas"`
	Activo       bool                   `json:"activo"`
	CreatedAt    string                 `json:"createdAt"`
	UpdatedAt    string                 `json:"updatedAt"`
}

func ordenToResponse(o *models.OrdenProduccion) OrdenProduccionResponse {
	detalles := make([]DetalleOrdenResponse, 0, len(o.Detalles))
	for i := range o.Detalles {
		d := &o.Detalles[i]
		detalles = append(detalles, DetalleOrdenResponse{
			ProductoID: d.ProductoID,
			Producto:   d.Producto.Nombre,
			Cantidad:   d.Cantidad,
		})
	}
	numeros := make([]string, 0, len(o.Ventas))
	for i := range o.Ventas {
		numeros = append(numeros, o.Ventas[i].Venta.NumeroVenta)
	}
	return OrdenProduccionResponse{
		ID:           o.ID,
		NumeroOrden:  o.NumeroOrden,
		FechaOrden:   o.FechaOrden.Format("2006-01-02"),
		Detalles:     detalles,
		NumeroVentas: numeros,
		Activo:       o.Activo,
		CreatedAt:    o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    o.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// GenerarNumeroOrden produce un número ORD seguido de seis dígitos.
func GenerarNumeroOrden() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD%06d", n.Int64()), nil
}

// cargarVentas resuelve las ventas marcadas y rechaza las que ya pertenecen a
// otra orden de producción (excluyendo la propia al editar).
func cargarVentas(numeros []string, excluirOrdenID uint) ([]models.Venta, error) {
	ventas := make([]models.Venta, 0, len(numeros))
	for _, numero := range numeros {
		var venta models.Venta
		if err := database.DB.Preload("Detalles.Producto").First(&venta, "numero_venta = ?", numero).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Venta no encontrada: %s", numero))
		}

		var asociada models.VentaAsociada
		err := database.DB.First(&asociada, "venta_id = ?", venta.ID).Error
		if err == nil && asociada.OrdenProduccionID != excluirOrdenID {
			return nil, fiber.NewError(fiber.StatusConflict, fmt.Sprintf("La venta %s ya está asociada a otra orden de producción", numero))
		}

		ventas = append(ventas, venta)
	}
	return ventas, nil
}

// consolidar pliega las líneas de todas las ventas con el agregador.
func consolidar(ventas []models.Venta) []Entry {
	var entries []Entry
	for i := range ventas {
		lines := make([]SaleLine, 0, len(ventas[i].Detalles))
		for _, d := range ventas[i].Detalles {
			lines = append(lines, SaleLine{
				ProductoID: d.ProductoID,
				Nombre:     d.Producto.Nombre,
				Cantidad:   d.Cantidad,
			})
		}
		entries = Toggle(entries, lines, true)
	}
	return entries
}

func validarOrden(body *OrdenProduccionRequest) validation.Errors {
	errs := validation.Errors{}
	validation.Requerido(errs, "fecha_orden", "La fecha de la orden es obligatoria", body.FechaOrden)
	if len(body.NumeroVentas) == 0 {
		errs["numero_ventas"] = "Debe seleccionar al menos una venta"
	}
	return errs
}

// POST /api/ordenesproduccion
func CreateOrdenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OrdenProduccionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if errs := validarOrden(&body); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		fechaOrden, err := time.Parse("2006-01-02", body.FechaOrden)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La fecha de la orden no es válida")
		}

		ventas, err := cargarVentas(body.NumeroVentas, 0)
		if err != nil {
			return err
		}

		numero, err := GenerarNumeroOrden()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el número de orden")
		}

		entries := consolidar(ventas)
		detalles := make([]models.DetalleOrdenProduccion, 0, len(entries))
		for _, e := range entries {
			detalles = append(detalles, models.DetalleOrdenProduccion{
				ProductoID: e.ProductoID,
				Cantidad:   e.Cantidad,
			})
		}
		asociadas := make([]models.VentaAsociada, 0, len(ventas))
		for i := range ventas {
			asociadas = append(asociadas, models.VentaAsociada{VentaID: ventas[i].ID})
		}

		orden := models.OrdenProduccion{
			NumeroOrden: numero,
			FechaOrden:  fechaOrden,
			Detalles:    detalles,
			Ventas:      asociadas,
			Activo:      true,
		}

		if err := database.DB.Create(&orden).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la orden de producción")
		}

		database.DB.Preload("Detalles.Producto").Preload("Ventas.Venta").First(&orden, orden.ID)

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "orden_produccion",
				EntityID:    orden.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Orden de producción creada: %s", orden.NumeroOrden),
				After:       ordenToResponse(&orden),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(ordenToResponse(&orden))
	}
}

// GET /api/ordenesproduccion
func ListOrdenesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ordenes []models.OrdenProduccion
		err := database.DB.
			Preload("Detalles.Producto").
			Preload("Ventas.Venta").
			Order("id desc").
			Find(&ordenes).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las órdenes de producción")
		}

		resp := make([]OrdenProduccionResponse, 0, len(ordenes))
		for i := range ordenes {
			resp = append(resp, ordenToResponse(&ordenes[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/ordenesproduccion/todas_ventas_asociadas
// Números de todas las ventas ya comprometidas en alguna orden; la pantalla
// los usa para ocultar esas ventas de la lista de selección.
func ListVentasAsociadasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var asociadas []models.VentaAsociada
		if err := database.DB.Preload("Venta").Find(&asociadas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las ventas asociadas")
		}

		numeros := make([]string, 0, len(asociadas))
		for i := range asociadas {
			numeros = append(numeros, asociadas[i].Venta.NumeroVenta)
		}
		return c.JSON(numeros)
	}
}

// GET /api/ordenesproduccion/:id/ventas_asociadas
func ListVentasDeOrdenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var asociadas []models.VentaAsociada
		if err := database.DB.Preload("Venta").Where("orden_produccion_id = ?", id).Find(&asociadas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las ventas de la orden")
		}

		numeros := make([]string, 0, len(asociadas))
		for i := range asociadas {
			numeros = append(numeros, asociadas[i].Venta.NumeroVenta)
		}
		return c.JSON(numeros)
	}
}

// PUT /api/ordenesproduccion/:id
// El conjunto de ventas se reemplaza completo y el consolidado se recalcula.
func UpdateOrdenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var orden models.OrdenProduccion
		if err := database.DB.Preload("Detalles.Producto").Preload("Ventas.Venta").First(&orden, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Orden de producción no encontrada")
		}

		var body OrdenProduccionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if errs := validarOrden(&body); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		fechaOrden, err := time.Parse("2006-01-02", body.FechaOrden)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La fecha de la orden no es válida")
		}

		ventas, err := cargarVentas(body.NumeroVentas, orden.ID)
		if err != nil {
			return err
		}

		before := ordenToResponse(&orden)

		entries := consolidar(ventas)
		detalles := make([]models.DetalleOrdenProduccion, 0, len(entries))
		for _, e := range entries {
			detalles = append(detalles, models.DetalleOrdenProduccion{
				ProductoID: e.ProductoID,
				Cantidad:   e.Cantidad,
			})
		}
		asociadas := make([]models.VentaAsociada, 0, len(ventas))
		for i := range ventas {
			asociadas = append(asociadas, models.VentaAsociada{VentaID: ventas[i].ID})
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("orden_produccion_id = ?", orden.ID).Delete(&models.DetalleOrdenProduccion{}).Error; err != nil {
				return err
			}
			if err := tx.Where("orden_produccion_id = ?", orden.ID).Delete(&models.VentaAsociada{}).Error; err != nil {
				return err
			}
			orden.FechaOrden = fechaOrden
			orden.Detalles = detalles
			orden.Ventas = asociadas
			return tx.Save(&orden).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la orden de producción")
		}

		database.DB.Preload("Detalles.Producto").Preload("Ventas.Venta").First(&orden, orden.ID)

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "orden_produccion",
				EntityID:    orden.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Orden de producción actualizada: %s", orden.NumeroOrden),
				Before:      before,
				After:       ordenToResponse(&orden),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.JSON(ordenToResponse(&orden))
	}
}

// PATCH /api/ordenesproduccion/:id/estado  {"activo": bool}
func ToggleOrdenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body struct {
			Activo bool `json:"activo"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		var orden models.OrdenProduccion
		if err := database.DB.First(&orden, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Orden de producción no encontrada")
		}

		orden.Activo = body.Activo
		if err := database.DB.Save(&orden).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cambiar el estado de la orden")
		}

		database.DB.Preload("Detalles.Producto").Preload("Ventas.Venta").First(&orden, orden.ID)
		return c.JSON(ordenToResponse(&orden))
	}
}
