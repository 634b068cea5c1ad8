package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto terminado, el que se vende en pedidos y ventas.
type Producto struct {
	ID          uint            `gorm:"primaryKey"`
	Nombre      string          `gorm:"size:50;not null;unique"`
	Descripcion string          `gorm:"size:100;not null"`
	Precio      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
