package suppliers

import (
	"fmt"
	"strings"

	"pasteleria-backend/internal/audit"
	"pasteleria-backend/internal/auth"
	"pasteleria-backend/internal/database"
	"pasteleria-backend/internal/models"
	"pasteleria-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type ProveedorRequest struct {
	Nombre          string `json:"nombre"`
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	Contacto        string `json:"contacto"`
	Asesor          string `json:"asesor"`
}

type ProveedorResponse struct {
	ID              uint   `json:"id_proveedor"`
	Nombre          string `json:"nombre"`
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	Contacto        string `json:"contacto"`
	Asesor          string `json:"asesor"`
	Activo          bool   `json:"activo"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func proveedorToResponse(p *models.Proveedor) ProveedorResponse {
	return ProveedorResponse{
		ID:              p.ID,
		Nombre:          p.Nombre,
		TipoDocumento:   p.TipoDocumento,
		NumeroDocumento: p.NumeroDocumento,
		Contacto:        p.Contacto,
		Asesor:          p.Asesor,
		Activo:          p.Activo,
		CreatedAt:       p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Los nombres de proveedor y asesor admiten mínimo 4 letras, un umbral más
// laxo que el de usuarios y clientes.
func validarProveedor(body *ProveedorRequest) validation.Errors {
	errs := validation.Errors{}
	validation.Nombre(errs, "nombre", "El nombre del proveedor", body.Nombre, 4)
	validation.Requerido(errs, "tipo_documento", "El tipo de documento es requerido.", body.TipoDocumento)
	validation.Requerido(errs, "numero_documento", "El número de documento es requerido.", body.NumeroDocumento)
	validation.Telefono(errs, "contacto", "El número de contacto", body.Contacto)
	validation.Nombre(errs, "asesor", "El nombre del asesor", body.Asesor, 4)
	return errs
}

// POST /api/proveedores
func CreateProveedorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProveedorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if errs := validarProveedor(&body); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		proveedor := models.Proveedor{
			Nombre:          strings.TrimSpace(body.Nombre),
			TipoDocumento:   body.TipoDocumento,
			NumeroDocumento: body.NumeroDocumento,
			Contacto:        body.Contacto,
			Asesor:          strings.TrimSpace(body.Asesor),
			Activo:          true,
		}

		if err := database.DB.Create(&proveedor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el proveedor")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "proveedor",
				EntityID:    proveedor.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Proveedor creado: %s", proveedor.Nombre),
				After:       proveedorToResponse(&proveedor),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(proveedorToResponse(&proveedor))
	}
}

// GET /api/proveedores
func ListProveedoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var proveedores []models.Proveedor
		if err := database.DB.Order("nombre asc").Find(&proveedores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los proveedores")
		}

		resp := make([]ProveedorResponse, 0, len(proveedores))
		for i := range proveedores {
			resp = append(resp, proveedorToResponse(&proveedores[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/proveedores/:id
func UpdateProveedorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var proveedor models.Proveedor
		if err := database.DB.First(&proveedor, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proveedor no encontrado")
		}

		var body ProveedorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if errs := validarProveedor(&body); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		before := proveedorToResponse(&proveedor)

		proveedor.Nombre = strings.TrimSpace(body.Nombre)
		proveedor.TipoDocumento = body.TipoDocumento
		proveedor.NumeroDocumento = body.NumeroDocumento
		proveedor.Contacto = body.Contacto
		proveedor.Asesor = strings.TrimSpace(body.Asesor)

		if err := database.DB.Save(&proveedor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el proveedor")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "proveedor",
				EntityID:    proveedor.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Proveedor actualizado: %s", proveedor.Nombre),
				Before:      before,
				After:       proveedorToResponse(&proveedor),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.JSON(proveedorToResponse(&proveedor))
	}
}

// PATCH /api/proveedores/:id/estado  {"activo": bool}
func ToggleProveedorHandler() fiber.Handler {
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

		var proveedor models.Proveedor
		if err := database.DB.First(&proveedor, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proveedor no encontrado")
		}

		proveedor.Activo = body.Activo
		if err := database.DB.Save(&proveedor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cambiar el estado del proveedor")
		}

		return c.JSON(proveedorToResponse(&proveedor))
	}
}
