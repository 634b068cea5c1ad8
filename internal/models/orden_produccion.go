package models

import "time"

// OrdenProduccion consolida las cantidades de producto de varias ventas.
type OrdenProduccion struct {
	ID          uint      `gorm:"primaryKey"`
	NumeroOrden string    `gorm:"size:20;not null;unique"`
	FechaOrden  time.Time `gorm:"not null"`
	Detalles    []DetalleOrdenProduccion `gorm:"constraint:OnDelete:CASCADE"`
	Ventas      []VentaAsociada          `gorm:"constraint:OnDelete:CASCADE"`
	Activo      bool                     `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type DetalleOrdenProduccion struct {
	ID                uint `gorm:"primaryKey"`
	OrdenProduccionID uint `gorm:"index;not null"`
	ProductoID        uint `gorm:"index;not null"`
	Producto          Producto
	Cantidad          int `gorm:"not null"`
}

// VentaAsociada: una venta solo puede pertenecer a una orden de producción.
type VentaAsociada struct {
	ID                uint `gorm:"primaryKey"`
	OrdenProduccionID uint `gorm:"index;not null"`
	VentaID           uint `gorm:"index;not null;unique"`
	Venta             Venta
}
