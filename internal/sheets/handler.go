package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"pasteleria-backend/internal/audit"
	"pasteleria-backend/internal/auth"
	"pasteleria-backend/internal/database"
	"pasteleria-backend/internal/lineitem"
	"pasteleria-backend/internal/models"
	"pasteleria-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Las líneas de insumo llegan como texto, igual que el resto de campos
// numéricos del formulario.
type DetalleFichaRequest struct {
	InsumoID string `json:"id_insumo"`
	Cantidad string `json:"cantidad"`
}

type FichaTecnicaRequest struct {
	ProductoID  string                `json:"id_producto"`
	Descripcion string                `json:"descripcion"`
	Insumos     []DetalleFichaRequest `json:"insumos"`
}

type DetalleFichaResponse struct {
	ID       uint            `json:"id"`
	InsumoID uint            `json:"id_insumo"`
	Insumo   string          `json:"insumo"`
	Unidad   string          `json:"unidad"`
	Cantidad decimal.Decimal `json:"cantidad"`
}

type FichaTecnicaResponse struct {
	ID          uint                   `json:"id_ficha"`
	ProductoID  uint                   `json:"id_producto"`
	Producto    string                 `json:"producto"`
	Descripcion string                 `json:"descripcion"`
	Insumos     []DetalleFichaResponse `json:"insumos"`
	Activo      bool                   `json:"activo"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
}

func fichaToResponse(f *models.FichaTecnica) FichaTecnicaResponse {
	insumos := make([]DetalleFichaResponse, 0, len(f.Detalles))
	for i := range f.Detalles {
		d := &f.Detalles[i]
		insumos = append(insumos, DetalleFichaResponse{
			ID:       d.ID,
			InsumoID: d.InsumoID,
			Insumo:   d.Insumo.Nombre,
			Unidad:   d.Insumo.Unidad,
			Cantidad: d.Cantidad,
		})
	}
	return FichaTecnicaResponse{
		ID:          f.ID,
		ProductoID:  f.ProductoID,
		Producto:    f.Producto.Nombre,
		Descripcion: f.Descripcion,
		Insumos:     insumos,
		Activo:      f.Activo,
		CreatedAt:   f.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   f.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func aLineas(insumos []DetalleFichaRequest) []lineitem.LineItem {
	lineas := make([]lineitem.LineItem, 0, len(insumos))
	for _, in := range insumos {
		lineas = append(lineas, lineitem.LineItem{ReferenceID: in.InsumoID, Cantidad: in.Cantidad})
	}
	return lineas
}

func aDetalles(insumos []DetalleFichaRequest) []models.DetalleFichaTecnica {
	detalles := make([]models.DetalleFichaTecnica, 0, len(insumos))
	for _, in := range insumos {
		insumoID, _ := strconv.ParseUint(in.InsumoID, 10, 32)
		cantidad, _ := decimal.NewFromString(in.Cantidad)
		detalles = append(detalles, models.DetalleFichaTecnica{
			InsumoID: uint(insumoID),
			Cantidad: cantidad,
		})
	}
	return detalles
}

// POST /api/fichas-tecnicas
func CreateFichaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body FichaTecnicaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if errs := validation.ValidarFichaTecnica(body.ProductoID, body.Descripcion, aLineas(body.Insumos)); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		productoID, _ := strconv.ParseUint(body.ProductoID, 10, 32)

		ficha := models.FichaTecnica{
			ProductoID:  uint(productoID),
			Descripcion: strings.TrimSpace(body.Descripcion),
			Detalles:    aDetalles(body.Insumos),
			Activo:      true,
		}

		if err := database.DB.Create(&ficha).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la ficha técnica")
		}

		database.DB.Preload("Producto").Preload("Detalles.Insumo").First(&ficha, ficha.ID)

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "ficha_tecnica",
				EntityID:    ficha.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Ficha técnica creada para: %s", ficha.Producto.Nombre),
				After:       fichaToResponse(&ficha),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fichaToResponse(&ficha))
	}
}

// GET /api/fichas-tecnicas
func ListFichasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var fichas []models.FichaTecnica
		err := database.DB.
			Preload("Producto").
			Preload("Detalles.Insumo").
			Order("id desc").
			Find(&fichas).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las fichas técnicas")
		}

		resp := make([]FichaTecnicaResponse, 0, len(fichas))
		for i := range fichas {
			resp = append(resp, fichaToResponse(&fichas[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/fichas-tecnicas/:id
func GetFichaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var ficha models.FichaTecnica
		err = database.DB.
			Preload("Producto").
			Preload("Detalles.Insumo").
			First(&ficha, "id = ?", id).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ficha técnica no encontrada")
		}

		return c.JSON(fichaToResponse(&ficha))
	}
}

// PUT /api/fichas-tecnicas/:id
// Las líneas se reemplazan completas: se borran las anteriores y se insertan
// las del cuerpo de la petición.
func UpdateFichaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var ficha models.FichaTecnica
		if err := database.DB.Preload("Producto").First(&ficha, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ficha técnica no encontrada")
		}

		var body FichaTecnicaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if errs := validation.ValidarFichaTecnica(body.ProductoID, body.Descripcion, aLineas(body.Insumos)); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		database.DB.Preload("Detalles.Insumo").First(&ficha, ficha.ID)
		before := fichaToResponse(&ficha)

		productoID, _ := strconv.ParseUint(body.ProductoID, 10, 32)

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("ficha_tecnica_id = ?", ficha.ID).Delete(&models.DetalleFichaTecnica{}).Error; err != nil {
				return err
			}
			ficha.ProductoID = uint(productoID)
			ficha.Descripcion = strings.TrimSpace(body.Descripcion)
			ficha.Detalles = aDetalles(body.Insumos)
			return tx.Save(&ficha).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la ficha técnica")
		}

		database.DB.Preload("Producto").Preload("Detalles.Insumo").First(&ficha, ficha.ID)

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "ficha_tecnica",
				EntityID:    ficha.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Ficha técnica actualizada para: %s", ficha.Producto.Nombre),
				Before:      before,
				After:       fichaToResponse(&ficha),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.JSON(fichaToResponse(&ficha))
	}
}

// PATCH /api/fichas-tecnicas/:id/estado  {"activo": bool}
func ToggleFichaHandler() fiber.Handler {
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

		var ficha models.FichaTecnica
		if err := database.DB.First(&ficha, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ficha técnica no encontrada")
		}

		ficha.Activo = body.Activo
		if err := database.DB.Save(&ficha).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cambiar el estado de la ficha técnica")
		}

		database.DB.Preload("Producto").Preload("Detalles.Insumo").First(&ficha, ficha.ID)
		return c.JSON(fichaToResponse(&ficha))
	}
}
