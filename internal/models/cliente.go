package models

import "time"

type Cliente struct {
	ID              uint   `gorm:"primaryKey"`
	Nombre          string `gorm:"size:50;not null"`
	Contacto        string `gorm:"size:20;not null"` // teléfono de contacto
	Email           string `gorm:"size:30"`
	TipoDocumento   string `gorm:"size:30;not null"`
	NumeroDocumento string `gorm:"size:30;not null;unique"`
	Activo          bool   `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
