package models

import "time"

type Proveedor struct {
	ID              uint   `gorm:"primaryKey"`
	Nombre          string `gorm:"size:50;not null"`
	TipoDocumento   string `gorm:"size:30;not null"`
	NumeroDocumento string `gorm:"size:30;not null;unique"`
	Contacto        string `gorm:"size:20;not null"`
	Asesor          string `gorm:"size:50"` // persona de contacto del proveedor
	Activo          bool   `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
