package auth

import (
	"strings"

	"pasteleria-backend/internal/config"
	"pasteleria-backend/internal/database"
	"pasteleria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email y contraseña son obligatorios")
		}

		var usuario models.Usuario
		if err := database.DB.First(&usuario, "email = ?", body.Email).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Credenciales inválidas")
		}
		if !usuario.Activo {
			return fiber.NewError(fiber.StatusForbidden, "El usuario está desactivado")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Credenciales inválidas")
		}

		token, err := GenerateToken(cfg.JWTSecret, &usuario)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"usuario": fiber.Map{
				"id":     usuario.ID,
				"nombre": usuario.Nombre,
				"email":  usuario.Email,
				"rol":    usuario.Rol,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, nombre, err := UserInfo(c)
		if err != nil {
			return err
		}
		rol, _ := c.Locals(CtxUserRolKey).(models.Rol)
		return c.JSON(fiber.Map{"id": userID, "nombre": nombre, "rol": rol})
	}
}

// UserInfo resuelve el usuario autenticado del contexto; los handlers lo usan
// para firmar los logs de auditoría.
func UserInfo(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "No se pudo obtener el usuario")
	}

	var usuario models.Usuario
	if err := database.DB.First(&usuario, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Usuario no encontrado")
	}

	return userID, usuario.Nombre, nil
}
