package auth

import (
	"time"

	"pasteleria-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type JWTCustomClaims struct {
	UserID uint       `json:"user_id"`
	Email  string     `json:"email"`
	Rol    models.Rol `json:"rol"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, usuario *models.Usuario) (string, error) {
	claims := &JWTCustomClaims{
		UserID: usuario.ID,
		Email:  usuario.Email,
		Rol:    usuario.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
