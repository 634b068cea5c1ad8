package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Venta struct {
	ID           uint `gorm:"primaryKey"`
	ClienteID    uint `gorm:"index;not null"`
	Cliente      Cliente
	NumeroVenta  string    `gorm:"size:30;not null;unique"` // número del pedido convertido, o generado
	FechaVenta   time.Time `gorm:"not null"`
	FechaEntrega *time.Time
	Estado       string         `gorm:"size:30;not null"`
	Pagado       bool           `gorm:"not null;default:true"`
	Detalles     []DetalleVenta `gorm:"constraint:OnDelete:CASCADE"`
	Total        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Activo       bool            `gorm:"not null;default:true"`
	Anulacion    string          `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (v *Venta) Anulado() bool {
	return v.Anulacion != ""
}

type DetalleVenta struct {
	ID             uint `gorm:"primaryKey"`
	VentaID        uint `gorm:"index;not null"`
	ProductoID     uint `gorm:"index;not null"`
	Producto       Producto
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}
