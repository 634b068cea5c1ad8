package orders

import (
	"errors"
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
	"gorm.io/gorm"
)

type DetallePedidoRequest struct {
	ProductoID     string `json:"id_producto"`
	Cantidad       string `json:"cantidad"`
	PrecioUnitario string `json:"precio_unitario"`
}

type PedidoRequest struct {
	ClienteID    string                 `json:"id_cliente"`
	FechaEntrega string                 `json:"fecha_entrega"`
	Pagado       bool                   `json:"pagado"`
	FechaPago    string                 `json:"fecha_pago"`
	Detalles     []DetallePedidoRequest `json:"detallesPedido"`
}

type DetallePedidoResponse struct {
	ID             uint            `json:"id"`
	ProductoID     uint            `json:"id_producto"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type PedidoResponse struct {
	ID           uint                    `json:"id_pedido"`
	NumeroPedido string                  `json:"numero_pedido"`
	ClienteID    uint                    `json:"id_cliente"`
	Cliente      string                  `json:"cliente"`
	FechaEntrega string                  `json:"fecha_entrega"`
	FechaPago    string                  `json:"fecha_pago,omitempty"`
	Estado       string                  `json:"estado"`
	Pagado       bool                    `json:"pagado"`
	Detalles     []DetallePedidoResponse `json:"detallesPedido"`
	Total        decimal.Decimal         `json:"total"`
	Activo       bool                    `json:"activo"`
	Anulacion    string                  `json:"anulacion,omitempty"`
	CreatedAt    string                  `json:"createdAt"`
	UpdatedAt    string                  `json:"updatedAt"`
}

func pedidoToResponse(p *models.Pedido) PedidoResponse {
	detalles := make([]DetallePedidoResponse, 0, len(p.Detalles))
	for i := range p.Detalles {
		d := &p.Detalles[i]
		detalles = append(detalles, DetallePedidoResponse{
			ID:             d.ID,
			ProductoID:     d.ProductoID,
			Producto:       d.Producto.Nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}

	resp := PedidoResponse{
		ID:           p.ID,
		NumeroPedido: p.NumeroPedido,
		ClienteID:    p.ClienteID,
		Cliente:      p.Cliente.Nombre,
		FechaEntrega: p.FechaEntrega.Format("2006-01-02"),
		Estado:       p.Estado,
		Pagado:       p.Pagado,
		Detalles:     detalles,
		Total:        p.Total,
		Activo:       p.Activo,
		Anulacion:    p.Anulacion,
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if p.FechaPago != nil {
		resp.FechaPago = p.FechaPago.Format("2006-01-02")
	}
	return resp
}

func aLineas(detalles []DetallePedidoRequest) []lineitem.LineItem {
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

// aDetalles convierte las líneas validadas al modelo, con el subtotal siempre
// recalculado en el servidor. Las cantidades de un pedido son enteras: un
// decimal se trunca antes de calcular el subtotal, de modo que la fila
// persistida siempre cumple subtotal = cantidad * precio unitario. El total
// devuelto es la suma de los subtotales.
func aDetalles(detalles []DetallePedidoRequest) ([]models.DetallePedido, decimal.Decimal) {
	lineas := aLineas(detalles)
	out := make([]models.DetallePedido, 0, len(lineas))
	for i, li := range lineas {
		cantidad, _ := decimal.NewFromString(strings.TrimSpace(li.Cantidad))
		li.Cantidad = strconv.FormatInt(cantidad.IntPart(), 10)
		li = lineitem.RecomputeLine(li)
		lineas[i] = li

		productoID, _ := strconv.ParseUint(li.ReferenceID, 10, 32)
		precio, _ := decimal.NewFromString(li.PrecioUnitario)

		out = append(out, models.DetallePedido{
			ProductoID:     uint(productoID),
			Cantidad:       int(cantidad.IntPart()),
			PrecioUnitario: precio,
			Subtotal:       li.Subtotal,
		})
	}
	return out, lineitem.RecomputeTotal(lineas)
}

func esNumeroDuplicado(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// resolverCambioActivo aplica la regla de anulación sobre el pedido en memoria.
// Desactivar siempre exige un motivo y anula de forma permanente; reactivar
// solo es posible mientras el pedido no esté anulado. Devuelve errores de
// campo o un error de conflicto.
func resolverCambioActivo(pedido *models.Pedido, activo bool, motivo string) (validation.Errors, error) {
	if activo {
		if !lifecycle.PuedeReactivar(pedido.Activo, pedido.Anulado()) {
			return nil, fiber.NewError(fiber.StatusConflict, "Un pedido anulado no puede reactivarse")
		}
		pedido.Activo = true
		return nil, nil
	}
	if motivo == "" {
		return validation.Errors{"anulacion": "El motivo de anulación es obligatorio"}, nil
	}
	if !lifecycle.PuedeAnular(pedido.Activo, pedido.Anulado(), motivo) {
		return nil, fiber.NewError(fiber.StatusConflict, "El pedido no puede anularse")
	}
	pedido.Anulacion = motivo
	pedido.Activo = false
	return nil, nil
}

func parseFechaPago(body *PedidoRequest, errs validation.Errors) *time.Time {
	if !body.Pagado {
		return nil
	}
	if body.FechaPago == "" {
		errs["fecha_pago"] = "La fecha de pago es obligatoria cuando el pedido está pagado"
		return nil
	}
	t, err := time.Parse("2006-01-02", body.FechaPago)
	if err != nil {
		errs["fecha_pago"] = "La fecha de pago no es válida"
		return nil
	}
	return &t
}

// POST /api/pedidos
func CreatePedidoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PedidoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		errs := validation.ValidarPedido(body.ClienteID, body.FechaEntrega, aLineas(body.Detalles))
		fechaPago := parseFechaPago(&body, errs)
		if !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		fechaEntrega, err := time.Parse("2006-01-02", body.FechaEntrega)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La fecha de entrega no es válida")
		}

		clienteID, _ := strconv.ParseUint(body.ClienteID, 10, 32)
		detalles, total := aDetalles(body.Detalles)

		pedido := models.Pedido{
			ClienteID:    uint(clienteID),
			FechaEntrega: fechaEntrega,
			FechaPago:    fechaPago,
			Estado:       lifecycle.AplicarPagado(body.Pagado),
			Pagado:       body.Pagado,
			Detalles:     detalles,
			Total:        total,
			Activo:       true,
		}

		// Reintenta solo ante el choque improbable del número generado;
		// cualquier otro fallo de inserción se devuelve de inmediato.
		for intento := 0; intento < 3; intento++ {
			numero, err := GenerarNumeroPedido()
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el número de pedido")
			}
			pedido.NumeroPedido = numero
			err = database.DB.Create(&pedido).Error
			if err == nil {
				break
			}
			if !esNumeroDuplicado(err) || intento == 2 {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el pedido")
			}
		}

		database.DB.Preload("Cliente").Preload("Detalles.Producto").First(&pedido, pedido.ID)

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "pedido",
				EntityID:    pedido.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Pedido creado: %s", pedido.NumeroPedido),
				After:       pedidoToResponse(&pedido),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(pedidoToResponse(&pedido))
	}
}

// GET /api/pedidos
func ListPedidosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var pedidos []models.Pedido
		err := database.DB.
			Preload("Cliente").
			Preload("Detalles.Producto").
			Order("id desc").
			Find(&pedidos).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los pedidos")
		}

		resp := make([]PedidoResponse, 0, len(pedidos))
		for i := range pedidos {
			resp = append(resp, pedidoToResponse(&pedidos[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/pedidos/:id
func GetPedidoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var pedido models.Pedido
		err = database.DB.
			Preload("Cliente").
			Preload("Detalles.Producto").
			First(&pedido, "id = ?", id).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
		}

		return c.JSON(pedidoToResponse(&pedido))
	}
}

// PUT /api/pedidos/:id
// Un pedido completado, anulado o inactivo ya no se edita. Las líneas se
// reemplazan completas y el total se recalcula.
func UpdatePedidoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var pedido models.Pedido
		if err := database.DB.Preload("Detalles.Producto").First(&pedido, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
		}

		if !lifecycle.PuedeEditar(pedido.Estado, pedido.Activo, pedido.Anulado()) {
			return fiber.NewError(fiber.StatusConflict, "El pedido ya no puede editarse")
		}

		var body PedidoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		errs := validation.ValidarPedido(body.ClienteID, body.FechaEntrega, aLineas(body.Detalles))
		fechaPago := parseFechaPago(&body, errs)
		if !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		fechaEntrega, err := time.Parse("2006-01-02", body.FechaEntrega)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La fecha de entrega no es válida")
		}

		database.DB.Preload("Cliente").First(&pedido, pedido.ID)
		before := pedidoToResponse(&pedido)

		clienteID, _ := strconv.ParseUint(body.ClienteID, 10, 32)
		detalles, total := aDetalles(body.Detalles)

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("pedido_id = ?", pedido.ID).Delete(&models.DetallePedido{}).Error; err != nil {
				return err
			}
			pedido.ClienteID = uint(clienteID)
			pedido.FechaEntrega = fechaEntrega
			pedido.FechaPago = fechaPago
			pedido.Pagado = body.Pagado
			pedido.Estado = lifecycle.AplicarPagado(body.Pagado)
			pedido.Detalles = detalles
			pedido.Total = total
			return tx.Save(&pedido).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el pedido")
		}

		database.DB.Preload("Cliente").Preload("Detalles.Producto").First(&pedido, pedido.ID)

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "pedido",
				EntityID:    pedido.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Pedido actualizado: %s", pedido.NumeroPedido),
				Before:      before,
				After:       pedidoToResponse(&pedido),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.JSON(pedidoToResponse(&pedido))
	}
}

// PUT /api/pedidos/:id/estado  {"estado": "..."}
// Solo se acepta el siguiente estado de la cadena, y solo con el pedido pagado.
func UpdateEstadoPedidoHandler() fiber.Handler {
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

		var pedido models.Pedido
		if err := database.DB.Preload("Cliente").Preload("Detalles.Producto").First(&pedido, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
		}

		if !lifecycle.PuedeEditar(pedido.Estado, pedido.Activo, pedido.Anulado()) {
			return fiber.NewError(fiber.StatusConflict, "El pedido ya no puede cambiar de estado")
		}
		if !lifecycle.PuedeTransicionar(pedido.Estado, body.Estado, pedido.Pagado) {
			return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("No se puede pasar de %q a %q", pedido.Estado, body.Estado))
		}

		before := pedidoToResponse(&pedido)
		pedido.Estado = body.Estado
		if err := database.DB.Save(&pedido).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el estado del pedido")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "pedido",
				EntityID:    pedido.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Pedido %s: %s -> %s", pedido.NumeroPedido, before.Estado, pedido.Estado),
				Before:      before,
				After:       pedidoToResponse(&pedido),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.JSON(pedidoToResponse(&pedido))
	}
}

// PATCH /api/pedidos/:id/pagado  {"pagado": bool, "fecha_pago": "..."}
// Pagar fuerza "Pendiente de Preparación"; despagar vuelve a "Esperando Pago"
// y borra la fecha de pago.
func TogglePagadoPedidoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body struct {
			Pagado    bool   `json:"pagado"`
			FechaPago string `json:"fecha_pago"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		var pedido models.Pedido
		if err := database.DB.Preload("Cliente").Preload("Detalles.Producto").First(&pedido, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
		}

		if !lifecycle.PuedeEditar(pedido.Estado, pedido.Activo, pedido.Anulado()) {
			return fiber.NewError(fiber.StatusConflict, "El pedido ya no puede editarse")
		}

		if body.Pagado {
			if body.FechaPago == "" {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
					"errors": validation.Errors{"fecha_pago": "La fecha de pago es obligatoria cuando el pedido está pagado"},
				})
			}
			fechaPago, err := time.Parse("2006-01-02", body.FechaPago)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "La fecha de pago no es válida")
			}
			pedido.FechaPago = &fechaPago
		} else {
			pedido.FechaPago = nil
		}

		before := pedidoToResponse(&pedido)
		pedido.Pagado = body.Pagado
		pedido.Estado = lifecycle.AplicarPagado(body.Pagado)

		if err := database.DB.Save(&pedido).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el pago del pedido")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "pedido",
				EntityID:    pedido.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Pago del pedido %s: pagado=%v", pedido.NumeroPedido, pedido.Pagado),
				Before:      before,
				After:       pedidoToResponse(&pedido),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.JSON(pedidoToResponse(&pedido))
	}
}

// PATCH /api/pedidos/:id/estado  {"activo": bool, "anulacion": "..."}
// Desactivar anula el pedido de forma permanente y siempre exige un motivo.
func ToggleActivoPedidoHandler() fiber.Handler {
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

		var pedido models.Pedido
		if err := database.DB.Preload("Cliente").Preload("Detalles.Producto").First(&pedido, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
		}

		before := pedidoToResponse(&pedido)

		errs, err := resolverCambioActivo(&pedido, body.Activo, body.Anulacion)
		if err != nil {
			return err
		}
		if !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		if err := database.DB.Save(&pedido).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cambiar el estado del pedido")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			accion := models.AuditActionUpdate
			descripcion := fmt.Sprintf("Pedido %s: activo=%v", pedido.NumeroPedido, pedido.Activo)
			if pedido.Anulado() && before.Anulacion == "" {
				accion = models.AuditActionAnnul
				descripcion = fmt.Sprintf("Pedido anulado: %s (%s)", pedido.NumeroPedido, pedido.Anulacion)
			}
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "pedido",
				EntityID:    pedido.ID,
				Action:      accion,
				Description: descripcion,
				Before:      before,
				After:       pedidoToResponse(&pedido),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.JSON(pedidoToResponse(&pedido))
	}
}
