package clients

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

type ClienteRequest struct {
	Nombre          string `json:"nombre"`
	Contacto        string `json:"contacto"`
	Email           string `json:"email"`
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
}

type ClienteResponse struct {
	ID              uint   `json:"id_cliente"`
	Nombre          string `json:"nombre"`
	Contacto        string `json:"contacto"`
	Email           string `json:"email"`
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	Activo          bool   `json:"activo"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func clienteToResponse(cl *models.Cliente) ClienteResponse {
	return ClienteResponse{
		ID:              cl.ID,
		Nombre:          cl.Nombre,
		Contacto:        cl.Contacto,
		Email:           cl.Email,
		TipoDocumento:   cl.TipoDocumento,
		NumeroDocumento: cl.NumeroDocumento,
		Activo:          cl.Activo,
		CreatedAt:       cl.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       cl.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func validarCliente(body *ClienteRequest) validation.Errors {
	errs := validation.Errors{}
	validation.Nombre(errs, "nombre", "El nombre", body.Nombre, 5)
	validation.Telefono(errs, "contacto", "El número de contacto", body.Contacto)
	validation.Email(errs, "email", body.Email)
	validation.Requerido(errs, "tipo_documento", "Debe seleccionar un tipo de documento.", body.TipoDocumento)
	validation.Requerido(errs, "numero_documento", "Debe ingresar un número de documento.", body.NumeroDocumento)
	return errs
}

// POST /api/clientes
func CreateClienteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ClienteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if errs := validarCliente(&body); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		cliente := models.Cliente{
			Nombre:          strings.TrimSpace(body.Nombre),
			Contacto:        body.Contacto,
			Email:           strings.TrimSpace(body.Email),
			TipoDocumento:   body.TipoDocumento,
			NumeroDocumento: body.NumeroDocumento,
			Activo:          true,
		}

		if err := database.DB.Create(&cliente).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el cliente")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "cliente",
				EntityID:    cliente.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Cliente creado: %s", cliente.Nombre),
				After:       clienteToResponse(&cliente),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(clienteToResponse(&cliente))
	}
}

// GET /api/clientes
func ListClientesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var clientes []models.Cliente
		if err := database.DB.Order("nombre asc").Find(&clientes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los clientes")
		}

		resp := make([]ClienteResponse, 0, len(clientes))
		for i := range clientes {
			resp = append(resp, clienteToResponse(&clientes[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/clientes/:id
func UpdateClienteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var cliente models.Cliente
		if err := database.DB.First(&cliente, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cliente no encontrado")
		}

		var body ClienteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if errs := validarCliente(&body); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		before := clienteToResponse(&cliente)

		cliente.Nombre = strings.TrimSpace(body.Nombre)
		cliente.Contacto = body.Contacto
		cliente.Email = strings.TrimSpace(body.Email)
		cliente.TipoDocumento = body.TipoDocumento
		cliente.NumeroDocumento = body.NumeroDocumento

		if err := database.DB.Save(&cliente).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el cliente")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "cliente",
				EntityID:    cliente.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Cliente actualizado: %s", cliente.Nombre),
				Before:      before,
				After:       clienteToResponse(&cliente),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.JSON(clienteToResponse(&cliente))
	}
}

// PATCH /api/clientes/:id/estado  {"activo": bool}
func ToggleClienteHandler() fiber.Handler {
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

		var cliente models.Cliente
		if err := database.DB.First(&cliente, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cliente no encontrado")
		}

		cliente.Activo = body.Activo
		if err := database.DB.Save(&cliente).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cambiar el estado del cliente")
		}

		return c.JSON(clienteToResponse(&cliente))
	}
}

// DELETE /api/clientes/:id
// Un cliente referenciado por pedidos o ventas no puede eliminarse.
func DeleteClienteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var cliente models.Cliente
		if err := database.DB.First(&cliente, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cliente no encontrado")
		}

		var refs int64
		database.DB.Model(&models.Pedido{}).Where("cliente_id = ?", cliente.ID).Count(&refs)
		if refs == 0 {
			database.DB.Model(&models.Venta{}).Where("cliente_id = ?", cliente.ID).Count(&refs)
		}
		if refs > 0 {
			return fiber.NewError(fiber.StatusConflict, "El cliente no se puede eliminar porque se encuentra asociado a una venta o pedido.")
		}

		if err := database.DB.Delete(&cliente).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el cliente")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "cliente",
				EntityID:    cliente.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Cliente eliminado: %s", cliente.Nombre),
				Before:      clienteToResponse(&cliente),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
