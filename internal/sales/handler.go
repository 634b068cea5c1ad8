package sales

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pasteleria-backend/internal/audit"
	"pasteleria-backend/internal/auth"
	"pasteleria-backend/internal/database"
	"pasteleria-backend/internal/lifecycle"
	"pasteleria-backend/internal/lineitem"
	"pasteleria-backend/internal/models"
	"pasteleria-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type DetalleVentaRequest struct {
	ProductoID     string `json:"id_producto"`
	Cantidad       string `json:"cantidad"`
	PrecioUnitario string `json:"precio_unitario"`
}

// NumeroPedido no vacío convierte ese pedido en venta: se copian su cliente,
// su número, sus fechas y sus líneas con el precio vigente de cada producto.
type VentaRequest struct {
	ClienteID    string                `json:"id_cliente"`
	NumeroPedido string                `json:"numero_pedido"`
	FechaVenta   string                `json:"fecha_venta"`
	FechaEntrega string                `json:"fecha_entrega"`
	Detalles     []DetalleVentaRequest `json:"detalleVentas"`
}

type DetalleVentaResponse struct {
	ID             uint            `json:"id"`
	ProductoID     uint            `json:"id_producto"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID           uint                   `json:"id_venta"`
	NumeroVenta  string                 `json:"numero_venta"`
	ClienteID    uint                   `json:"id_cliente"`
	Cliente      string                 `json:"cliente"`
	FechaVenta   string                 `json:"fecha_venta"`
	FechaEntrega string                 `json:"fecha_entrega,omitempty"`
	Estado       string                 `json:"estado"`
	Pagado       bool                   `json:"pagado"`
	Detalles     []DetalleVentaResponse `json:"detalleVentas"`
	Total        decimal.Decimal        `json:"total"`
	Activo       bool                   `json:"activo"`
	Anulacion    string                 `json:"anulacion,omitempty"`
	CreatedAt    string                 `json:"createdAt"`
	UpdatedAt    string                 `json:"updatedAt"`
}

func ventaToResponse(v *models.Venta) VentaResponse {
	detalles := make([]DetalleVentaResponse, 0, len(v.Detalles))
	for i := range v.Detalles {
		d := &v.Detalles[i]
		detalles = append(detalles, DetalleVentaResponse{
			ID:             d.ID,
			ProductoID:     d.ProductoID,
			Producto:       d.Producto.Nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}

	resp := VentaResponse{
		ID:          v.ID,
		NumeroVenta: v.NumeroVenta,
		ClienteID:   v.ClienteID,
		Cliente:     v.Cliente.Nombre,
		FechaVenta:  v.FechaVenta.Format("2006-01-02"),
		Estado:      v.Estado,
		Pagado:      v.Pagado,
		Detalles:    detalles,
		Total:       v.Total,
		Activo:      v.Activo,
		Anulacion:   v.Anulacion,
		CreatedAt:   v.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   v.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if v.FechaEntrega != nil {
		resp.FechaEntrega = v.FechaEntrega.Format("2006-01-02")
	}
	return resp
}

// precioVigente resuelve el precio actual de un producto por su id en texto.
func precioVigente() lineitem.PriceLookup {
	return func(referenceID string) (decimal.Decimal, bool) {
		var producto models.Producto
		if err := database.DB.First(&producto, "id = ?", referenceID).Error; err != nil {
			return decimal.Zero, false
		}
		return producto.Precio, true
	}
}

func aLineas(detalles []DetalleVentaRequest) []lineitem.LineItem {
	lineas := make([]lineitem.LineItem, 0, len(detalles))
	for _, d := range detalles {
		lineas = append(lineas, lineitem.LineItem{
			ReferenceID:    d.ProductoID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
		})
	}
	return lineas
}

// aDetalles convierte las líneas al modelo. Las cantidades de una venta son
// enteras: un decimal se trunca antes de calcular el subtotal, así la fila
// persistida siempre cumple subtotal = cantidad * precio unitario.
func aDetalles(lineas []lineitem.LineItem) ([]models.DetalleVenta, decimal.Decimal) {
	out := make([]models.DetalleVenta, 0, len(lineas))
	for i, li := range lineas {
		cantidad, _ := decimal.NewFromString(strings.TrimSpace(li.Cantidad))
		li.Cantidad = strconv.FormatInt(cantidad.IntPart(), 10)
		li = lineitem.RecomputeLine(li)
		lineas[i] = li

		productoID, _ := strconv.ParseUint(li.ReferenceID, 10, 32)
		precio, _ := decimal.NewFromString(li.PrecioUnitario)

		out = append(out, models.DetalleVenta{
			ProductoID:     uint(productoID),
			Cantidad:       int(cantidad.IntPart()),
			PrecioUnitario: precio,
			Subtotal:       li.Subtotal,
		})
	}
	return out, lineitem.RecomputeTotal(lineas)
}

// resolverCambioActivo aplica la regla de anulación sobre la venta en memoria.
// Desactivar siempre exige un motivo y anula de forma permanente; reactivar
// solo es posible mientras la venta no esté anulada.
func resolverCambioActivo(venta *models.Venta, activo bool, motivo string) (validation.Errors, error) {
	if activo {
		if !lifecycle.PuedeReactivar(venta.Activo, venta.Anulado()) {
			return nil, fiber.NewError(fiber.StatusConflict, "Una venta anulada no puede reactivarse")
		}
		venta.Activo = true
		return nil, nil
	}
	if motivo == "" {
		return validation.Errors{"anulacion": "El motivo de anulación es obligatorio"}, nil
	}
	if !lifecycle.PuedeAnular(venta.Activo, venta.Anulado(), motivo) {
		return nil, fiber.NewError(fiber.StatusConflict, "La venta no puede anularse")
	}
	venta.Anulacion = motivo
	venta.Activo = false
	return nil, nil
}

// lineasDesdePedido copia las líneas del pedido con el precio vigente de cada
// producto, descartando el precio pactado en el pedido.
func lineasDesdePedido(pedido *models.Pedido) []lineitem.LineItem {
	precios := precioVigente()
	lineas := make([]lineitem.LineItem, 0, len(pedido.Detalles))
	for _, d := range pedido.Detalles {
		ref := strconv.FormatUint(uint64(d.ProductoID), 10)
		li := lineitem.LineItem{
			ReferenceID: ref,
			Cantidad:    strconv.Itoa(d.Cantidad),
		}
		if precio, ok := precios(ref); ok {
			li.PrecioUnitario = precio.String()
		}
		lineas = append(lineas, lineitem.RecomputeLine(li))
	}
	return lineas
}

// POST /api/ventas
// Con numero_pedido, la venta se construye a partir de ese pedido; sin él, la
// venta es independiente y su número se genera como VENTA-<milisegundos>.
func CreateVentaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body VentaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		var lineas []lineitem.LineItem
		numero := body.NumeroPedido
		var fechaEntrega *time.Time

		if body.NumeroPedido != "" {
			var pedido models.Pedido
			if err := database.DB.Preload("Detalles").First(&pedido, "numero_pedido = ?", body.NumeroPedido).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
			}
			if !pedido.Activo || pedido.Anulado() || pedido.Estado != lifecycle.EstadoPendientePreparacion {
				return fiber.NewError(fiber.StatusConflict, "Solo un pedido activo y pendiente de preparación puede convertirse en venta")
			}

			lineas = lineasDesdePedido(&pedido)
			body.ClienteID = strconv.FormatUint(uint64(pedido.ClienteID), 10)
			fechaEntrega = &pedido.FechaEntrega
			if body.FechaVenta == "" && pedido.FechaPago != nil {
				body.FechaVenta = pedido.FechaPago.Format("2006-01-02")
			}
		} else {
			lineas = aLineas(body.Detalles)
			numero = fmt.Sprintf("VENTA-%d", time.Now().UnixMilli())
		}

		if errs := validation.ValidarVenta(body.ClienteID, body.FechaVenta, lineas); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		fechaVenta, err := time.Parse("2006-01-02", body.FechaVenta)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La fecha de venta no es válida")
		}
		if fechaEntrega == nil && body.FechaEntrega != "" {
			t, err := time.Parse("2006-01-02", body.FechaEntrega)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "La fecha de entrega no es válida")
			}
			fechaEntrega = &t
		}

		clienteID, _ := strconv.ParseUint(body.ClienteID, 10, 32)
		detalles, total := aDetalles(lineas)

		venta := models.Venta{
			ClienteID:    uint(clienteID),
			NumeroVenta:  numero,
			FechaVenta:   fechaVenta,
			FechaEntrega: fechaEntrega,
			Estado:       lifecycle.EstadoPendientePreparacion,
			Pagado:       true,
			Detalles:     detalles,
			Total:        total,
			Activo:       true,
		}

		if err := database.DB.Create(&venta).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la venta")
		}

		database.DB.Preload("Cliente").Preload("Detalles.Producto").First(&venta, venta.ID)

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "venta",
				EntityID:    venta.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Venta creada: %s", venta.NumeroVenta),
				After:       ventaToResponse(&venta),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(ventaToResponse(&venta))
	}
}

// GET /api/ventas
func ListVentasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ventas []models.Venta
		err := database.DB.
			Preload("Cliente").
			Preload("Detalles.Producto").
			Order("id desc").
			Find(&ventas).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las ventas")
		}

		resp := make([]VentaResponse, 0, len(ventas))
		for i := range ventas {
			resp = append(resp, ventaToResponse(&ventas[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/ventas/:id
func GetVentaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var venta models.Venta
		err = database.DB.
			Preload("Cliente").
			Preload("Detalles.Producto").
			First(&venta, "id = ?", id).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venta no encontrada")
		}

		return c.JSON(ventaToResponse(&venta))
	}
}

// PUT /api/ventas/:id/estado  {"estado": "..."}
func UpdateEstadoVentaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body struct {
			Estado string `json:"estado"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}
		if !lifecycle.EsEstadoValido(body.Estado) {
			return fiber.NewError(fiber.StatusBadRequest, "Estado desconocido")
		}

		var venta models.Venta
		if err := database.DB.Preload("Cliente").Preload("Detalles.Producto").First(&venta, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venta no encontrada")
		}

		if !lifecycle.PuedeEditar(venta.Estado, venta.Activo, venta.Anulado()) {
			return fiber.NewError(fiber.StatusConflict, "La venta ya no puede cambiar de estado")
		}
		if !lifecycle.PuedeTransicionar(venta.Estado, body.Estado, venta.Pagado) {
			return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("No se puede pasar de %q a %q", venta.Estado, body.Estado))
		}

		before := ventaToResponse(&venta)
		venta.Estado = body.Estado
		if err := database.DB.Save(&venta).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el estado de la venta")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "venta",
				EntityID:    venta.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Venta %s: %s -> %s", venta.NumeroVenta, before.Estado, venta.Estado),
				Before:      before,
				After:       ventaToResponse(&venta),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.JSON(ventaToResponse(&venta))
	}
}

// PATCH /api/ventas/:id/estado  {"activo": bool, "anulacion": "..."}
// Igual que en pedidos: anular exige motivo y es permanente.
func ToggleActivoVentaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body struct {
			Activo    bool   `json:"activo"`
			Anulacion string `json:"anulacion"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		var venta models.Venta
		if err := database.DB.Preload("Cliente").Preload("Detalles.Producto").First(&venta, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venta no encontrada")
		}

		before := ventaToResponse(&venta)

		errs, err := resolverCambioActivo(&venta, body.Activo, body.Anulacion)
		if err != nil {
			return err
		}
		if !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		if err := database.DB.Save(&venta).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cambiar el estado de la venta")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			accion := models.AuditActionUpdate
			descripcion := fmt.Sprintf("Venta %s: activo=%v", venta.NumeroVenta, venta.Activo)
			if venta.Anulado() && before.Anulacion == "" {
				accion = models.AuditActionAnnul
				descripcion = fmt.Sprintf("Venta anulada: %s (%s)", venta.NumeroVenta, venta.Anulacion)
			}
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "venta",
				EntityID:    venta.ID,
				Action:      accion,
				Description: descripcion,
				Before:      before,
				After:       ventaToResponse(&venta),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.JSON(ventaToResponse(&venta))
	}
}
