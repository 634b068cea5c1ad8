package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CategoriaInsumo struct {
	ID          uint   `gorm:"primaryKey"`
	Nombre      string `gorm:"size:50;not null;unique"`
	Descripcion string `gorm:"size:100"`
	Activo      bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Insumo struct {
	ID          uint `gorm:"primaryKey"`
	CategoriaID uint `gorm:"index;not null"`
	Categoria   CategoriaInsumo
	Nombre      string          `gorm:"size:50;not null"`
	Unidad      string          `gorm:"size:20;not null"` // kg, g, l, unidad
	Precio      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
