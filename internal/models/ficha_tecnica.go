package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FichaTecnica: receta de un producto terminado (lista de insumos).
// Un insumo no puede repetirse dentro de la misma ficha.
type FichaTecnica struct {
	ID          uint `gorm:"primaryKey"`
	ProductoID  uint `gorm:"index;not null"`
	Producto    Producto
	Descripcion string                `gorm:"size:100;not null"`
	Detalles    []DetalleFichaTecnica `gorm:"constraint:OnDelete:CASCADE"`
	Activo      bool                  `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type DetalleFichaTecnica struct {
	ID             uint `gorm:"primaryKey"`
	FichaTecnicaID uint `gorm:"index;not null"`
	InsumoID       uint `gorm:"index;not null"`
	Insumo         Insumo
	Cantidad       decimal.Decimal `gorm:"type:numeric(12,3);not null"` // en la unidad del insumo
}
