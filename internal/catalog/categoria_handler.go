package catalog

import (
	"strings"

	"pasteleria-backend/internal/database"
	"pasteleria-backend/internal/models"
	"pasteleria-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CategoriaRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

type CategoriaResponse struct {
	ID          uint   `json:"id_categoria"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Activo      bool   `json:"activo"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func categoriaToResponse(cat *models.CategoriaInsumo) CategoriaResponse {
	return CategoriaResponse{
		ID:          cat.ID,
		Nombre:      cat.Nombre,
		Descripcion: cat.Descripcion,
		Activo:      cat.Activo,
		CreatedAt:   cat.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   cat.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func validarCategoria(body *CategoriaRequest) validation.Errors {
	errs := validation.Errors{}
	validation.Nombre(errs, "nombre", "El nombre", body.Nombre, 4)
	return errs
}

// POST /api/categoriainsumos
func CreateCategoriaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoriaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if errs := validarCategoria(&body); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		categoria := models.CategoriaInsumo{
			Nombre:      strings.TrimSpace(body.Nombre),
			Descripcion: strings.TrimSpace(body.Descripcion),
			Activo:      true,
		}

		if err := database.DB.Create(&categoria).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la categoría")
		}

		return c.Status(fiber.StatusCreated).JSON(categoriaToResponse(&categoria))
	}
}

// GET /api/categoriainsumos
func ListCategoriasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categorias []models.CategoriaInsumo
		if err := database.DB.Order("nombre asc").Find(&categorias).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las categorías")
		}

		resp := make([]CategoriaResponse, 0, len(categorias))
		for i := range categorias {
			resp = append(resp, categoriaToResponse(&categorias[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/categoriainsumos/:id
func UpdateCategoriaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var categoria models.CategoriaInsumo
		if err := database.DB.First(&categoria, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Categoría no encontrada")
		}

		var body CategoriaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if errs := validarCategoria(&body); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		categoria.Nombre = strings.TrimSpace(body.Nombre)
		categoria.Descripcion = strings.TrimSpace(body.Descripcion)

		if err := database.DB.Save(&categoria).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la categoría")
		}

		return c.JSON(categoriaToResponse(&categoria))
	}
}

// PATCH /api/categoriainsumos/:id/estado  {"activo": bool}
func ToggleCategoriaHandler() fiber.Handler {
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

		var categoria models.CategoriaInsumo
		if err := database.DB.First(&categoria, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Categoría no encontrada")
		}

		categoria.Activo = body.Activo
		if err := database.DB.Save(&categoria).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cambiar el estado de la categoría")
		}

		return c.JSON(categoriaToResponse(&categoria))
	}
}
