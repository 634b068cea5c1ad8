package catalog

import (
	"fmt"
	"strings"

	"pasteleria-backend/internal/audit"
	"pasteleria-backend/internal/auth"
	"pasteleria-backend/internal/database"
	"pasteleria-backend/internal/models"
	"pasteleria-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductoRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Precio      string `json:"precio"`
}

type ProductoResponse struct {
	ID          uint            `json:"id_producto"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Activo      bool            `json:"activo"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

func productoToResponse(p *models.Producto) ProductoResponse {
	return ProductoResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Activo:      p.Activo,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func validarProducto(body *ProductoRequest) validation.Errors {
	errs := validation.Errors{}
	validation.Nombre(errs, "nombre", "El nombre", body.Nombre, 3)
	validation.Nombre(errs, "descripcion", "La descripción", body.Descripcion, 5)
	validation.NumeroPositivo(errs, "precio", "El precio", body.Precio)
	return errs
}

// POST /api/productos
func CreateProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if errs := validarProducto(&body); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		precio, _ := decimal.NewFromString(body.Precio)

		producto := models.Producto{
			Nombre:      strings.TrimSpace(body.Nombre),
			Descripcion: strings.TrimSpace(body.Descripcion),
			Precio:      precio,
			Activo:      true,
		}

		if err := database.DB.Create(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el producto")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "producto",
				EntityID:    producto.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Producto creado: %s", producto.Nombre),
				After:       productoToResponse(&producto),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(productoToResponse(&producto))
	}
}

// GET /api/productos
func ListProductosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var productos []models.Producto
		if err := database.DB.Order("nombre asc").Find(&productos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los productos")
		}

		resp := make([]ProductoResponse, 0, len(productos))
		for i := range productos {
			resp = append(resp, productoToResponse(&productos[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/productos/activos
// Las pantallas de pedidos y ventas solo ofrecen productos activos.
func ListProductosActivosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var productos []models.Producto
		if err := database.DB.Where("activo = ?", true).Order("nombre asc").Find(&productos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los productos")
		}

		resp := make([]ProductoResponse, 0, len(productos))
		for i := range productos {
			resp = append(resp, productoToResponse(&productos[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/productos/:id
func GetProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var producto models.Producto
		if err := database.DB.First(&producto, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		return c.JSON(productoToResponse(&producto))
	}
}

// PUT /api/productos/:id
func UpdateProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var producto models.Producto
		if err := database.DB.First(&producto, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		var body ProductoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if errs := validarProducto(&body); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		before := productoToResponse(&producto)

		precio, _ := decimal.NewFromString(body.Precio)
		producto.Nombre = strings.TrimSpace(body.Nombre)
		producto.Descripcion = strings.TrimSpace(body.Descripcion)
		producto.Precio = precio

		if err := database.DB.Save(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el producto")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "producto",
				EntityID:    producto.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Producto actualizado: %s", producto.Nombre),
				Before:      before,
				After:       productoToResponse(&producto),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.JSON(productoToResponse(&producto))
	}
}

// PATCH /api/productos/:id/estado  {"activo": bool}
func ToggleProductoHandler() fiber.Handler {
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

		var producto models.Producto
		if err := database.DB.First(&producto, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		producto.Activo = body.Activo
		if err := database.DB.Save(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cambiar el estado del producto")
		}

		return c.JSON(productoToResponse(&producto))
	}
}
