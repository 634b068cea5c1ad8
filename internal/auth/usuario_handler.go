package auth

import (
	"strings"

	"pasteleria-backend/internal/database"
	"pasteleria-backend/internal/models"
	"pasteleria-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UsuarioRequest struct {
	Nombre          string     `json:"nombre"`
	Email           string     `json:"email"`
	Password        string     `json:"password"`
	TipoDocumento   string     `json:"tipo_documento"`
	NumeroDocumento string     `json:"numero_documento"`
	Genero          string     `json:"genero"`
	Nacionalidad    string     `json:"nacionalidad"`
	Telefono        string     `json:"telefono"`
	Direccion       string     `json:"direccion"`
	Rol             models.Rol `json:"rol"`
}

type UsuarioResponse struct {
	ID              uint       `json:"id"`
	Nombre          string     `json:"nombre"`
	Email           string     `json:"email"`
	TipoDocumento   string     `json:"tipo_documento"`
	NumeroDocumento string     `json:"numero_documento"`
	Genero          string     `json:"genero"`
	Nacionalidad    string     `json:"nacionalidad"`
	Telefono        string     `json:"telefono"`
	Direccion       string     `json:"direccion"`
	Rol             models.Rol `json:"rol"`
	Activo          bool       `json:"activo"`
	CreatedAt       string     `json:"created_at"`
	UpdatedAt       string     `json:"updated_at"`
}

func usuarioToResponse(u *models.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:              u.ID,
		Nombre:          u.Nombre,
		Email:           u.Email,
		TipoDocumento:   u.TipoDocumento,
		NumeroDocumento: u.NumeroDocumento,
		Genero:          u.Genero,
		Nacionalidad:    u.Nacionalidad,
		Telefono:        u.Telefono,
		Direccion:       u.Direccion,
		Rol:             u.Rol,
		Activo:          u.Activo,
		CreatedAt:       u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       u.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// La contraseña solo se valida al crear; en edición no se pide.
func validarUsuario(body *UsuarioRequest, editMode bool) validation.Errors {
	errs := validation.Errors{}
	validation.Nombre(errs, "nombre", "El nombre", body.Nombre, 5)
	validation.Email(errs, "email", body.Email)
	if !editMode {
		validation.Password(errs, "password", body.Password)
	}
	validation.Requerido(errs, "tipo_documento", "Debe seleccionar un tipo de documento.", body.TipoDocumento)
	validation.Requerido(errs, "numero_documento", "Debe ingresar un número de documento.", body.NumeroDocumento)
	validation.Requerido(errs, "genero", "Debe seleccionar un género.", body.Genero)
	validation.Requerido(errs, "nacionalidad", "Debe ingresar una nacionalidad.", body.Nacionalidad)
	validation.Telefono(errs, "telefono", "El teléfono", body.Telefono)
	validation.Requerido(errs, "direccion", "Debe ingresar una dirección.", body.Direccion)
	validation.Requerido(errs, "rol", "Debe seleccionar un rol.", string(body.Rol))
	return errs
}

// POST /api/usuarios
func CreateUsuarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UsuarioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if errs := validarUsuario(&body, false); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo procesar la contraseña")
		}

		usuario := models.Usuario{
			Nombre:          strings.TrimSpace(body.Nombre),
			Email:           body.Email,
			PasswordHash:    string(hash),
			TipoDocumento:   body.TipoDocumento,
			NumeroDocumento: body.NumeroDocumento,
			Genero:          body.Genero,
			Nacionalidad:    body.Nacionalidad,
			Telefono:        body.Telefono,
			Direccion:       body.Direccion,
			Rol:             body.Rol,
			Activo:          true,
		}

		if err := database.DB.Create(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el usuario")
		}

		return c.Status(fiber.StatusCreated).JSON(usuarioToResponse(&usuario))
	}
}

// GET /api/usuarios
func ListUsuariosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var usuarios []models.Usuario
		if err := database.DB.Order("nombre asc").Find(&usuarios).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los usuarios")
		}

		resp := make([]UsuarioResponse, 0, len(usuarios))
		for i := range usuarios {
			resp = append(resp, usuarioToResponse(&usuarios[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/usuarios/:id
func UpdateUsuarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var usuario models.Usuario
		if err := database.DB.First(&usuario, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}

		var body UsuarioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if errs := validarUsuario(&body, true); !errs.Empty() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
		}

		usuario.Nombre = strings.TrimSpace(body.Nombre)
		usuario.Email = body.Email
		usuario.TipoDocumento = body.TipoDocumento
		usuario.NumeroDocumento = body.NumeroDocumento
		usuario.Genero = body.Genero
		usuario.Nacionalidad = body.Nacionalidad
		usuario.Telefono = body.Telefono
		usuario.Direccion = body.Direccion
		usuario.Rol = body.Rol

		if err := database.DB.Save(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el usuario")
		}

		return c.JSON(usuarioToResponse(&usuario))
	}
}

// PATCH /api/usuarios/:id/estado  {"activo": bool}
func ToggleUsuarioHandler() fiber.Handler {
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

		var usuario models.Usuario
		if err := database.DB.First(&usuario, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}

		usuario.Activo = body.Activo
		if err := database.DB.Save(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cambiar el estado del usuario")
		}

		return c.JSON(usuarioToResponse(&usuario))
	}
}
