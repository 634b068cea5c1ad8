package models

import "time"

type Rol string

const (
	RolAdministrador Rol = "administrador"
	RolVendedor      Rol = "vendedor"
	RolProduccion    Rol = "produccion"
)

type Usuario struct {
	ID              uint   `gorm:"primaryKey"`
	Nombre          string `gorm:"size:30;not null"`
	Email           string `gorm:"size:30;not null;unique"`
	PasswordHash    string `gorm:"size:100;not null"`
	TipoDocumento   string `gorm:"size:30;not null"`
	NumeroDocumento string `gorm:"size:30;not null"`
	Genero          string `gorm:"size:20"`
	Nacionalidad    string `gorm:"size:40"`
	Telefono        string `gorm:"size:20"`
	Direccion       string `gorm:"size:100"`
	Rol             Rol    `gorm:"size:20;not null"`
	Activo          bool   `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
