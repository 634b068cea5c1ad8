package catalog

import (
	"strconv"
	"strings"

	"pasteleria-backend/internal/database"
	"pasteleria-backend/internal/models"
	"pasteleria-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Los campos numéricos llegan como texto, igual que los envía el formulario;
// la coerción a número ocurre aquí, después de validar.
type InsumoRequest struct {
	CategoriaID string `json:"id_categoria"`
	Nombre      string `json:"nombre"`
	Unidad      string `json:"unidad"`
	Precio      string `json:"precio"`
}

type InsumoResponse struct {
	ID          uint            `json:"id_insumo"`
	CategoriaID uint            `json:"id_categoria"`
	Categoria   string          `json:"categoria"`
	Nombre      string          `json:"nombre"`
	Unidad      string          `json:"unidad"`
	Precio      decimal.Decimal `json:"precio"`
	Activo      bool            `json:"activo"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

func insumoToResponse(in *models.Insumo) InsumoResponse {
	return InsumoResponse{
		ID:          in.ID,
		CategoriaID: in.CategoriaID,
		Categoria:   in.Categoria.Nombre,
		Nombre:      in.Nombre,
		Unidad:      in.Unidad,
		Precio:      in.Precio,
		Activo:      in.Activo,
		CreatedAt:   in.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   in.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func validarInsumo(body *InsumoRequest) validation.Errors {
	errs := validation.Errors{}
	validation.Nombre(errs, "nombre", "El nombre", body.Nombre, 4)
	validation.Requerido(errs, "id_categoria", "Debe seleccionar una categoría.", body.CategoriaID)
	validation.Requerido(errs, "unidad", "Debe seleccionar una unidad.", body.Unidad)
	validation.NumeroPositivo(errs, "precio", "El precio", body.Precio)
	return errs
}

// POST /api/insumos
func CreateInsumoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body InsumoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if errs := validarInsumo(&body); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		categoriaID, _ := strconv.ParseUint(body.CategoriaID, 10, 32)
		precio, _ := decimal.NewFromString(body.Precio)

		insumo := models.Insumo{
			CategoriaID: uint(categoriaID),
			Nombre:      strings.TrimSpace(body.Nombre),
			Unidad:      body.Unidad,
			Precio:      precio,
			Activo:      true,
		}

		if err := database.DB.Create(&insumo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el insumo")
		}

		database.DB.Preload("Categoria").First(&insumo, insumo.ID)
		return c.Status(fiber.StatusCreated).JSON(insumoToResponse(&insumo))
	}
}

// GET /api/insumos
func ListInsumosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var insumos []models.Insumo
		if err := database.DB.Preload("Categoria").Order("nombre asc").Find(&insumos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los insumos")
		}

		resp := make([]InsumoResponse, 0, len(insumos))
		for i := range insumos {
			resp = append(resp, insumoToResponse(&insumos[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/insumos/:id
func UpdateInsumoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var insumo models.Insumo
		if err := database.DB.First(&insumo, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Insumo no encontrado")
		}

		var body InsumoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if errs := validarInsumo(&body); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		categoriaID, _ := strconv.ParseUint(body.CategoriaID, 10, 32)
		precio, _ := decimal.NewFromString(body.Precio)

		insumo.CategoriaID = uint(categoriaID)
		insumo.Nombre = strings.TrimSpace(body.Nombre)
		insumo.Unidad = body.Unidad
		insumo.Precio = precio

		if err := database.DB.Save(&insumo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el insumo")
		}

		database.DB.Preload("Categoria").First(&insumo, insumo.ID)
		return c.JSON(insumoToResponse(&insumo))
	}
}

// PATCH /api/insumos/:id/estado  {"activo": bool}
func ToggleInsumoHandler() fiber.Handler {
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

		var insumo models.Insumo
		if err := database.DB.First(&insumo, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Insumo no encontrado")
		}

		insumo.Activo = body.Activo
		if err := database.DB.Save(&insumo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cambiar el estado del insumo")
		}

		return c.JSON(insumoToResponse(&insumo))
	}
}
