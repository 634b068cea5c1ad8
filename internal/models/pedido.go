package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Pedido struct {
	ID           uint `gorm:"primaryKey"`
	ClienteID    uint `gorm:"index;not null"`
	Cliente      Cliente
	NumeroPedido string     `gorm:"size:10;not null;unique"` // token alfanumérico generado al crear
	FechaEntrega time.Time  `gorm:"not null"`
	FechaPago    *time.Time // solo cuando pagado
	Estado       string     `gorm:"size:30;not null"`
	Pagado       bool       `gorm:"not null;default:false"`
	Detalles     []DetallePedido `gorm:"constraint:OnDelete:CASCADE"`
	Total        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Activo       bool            `gorm:"not null;default:true"`
	Anulacion    string          `gorm:"size:255"` // motivo; no vacío implica anulado
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Anulado: un pedido anulado nunca puede reactivarse.
func (p *Pedido) Anulado() bool {
	return p.Anulacion != ""
}

type DetallePedido struct {
	ID             uint `gorm:"primaryKey"`
	PedidoID       uint `gorm:"index;not null"`
	ProductoID     uint `gorm:"index;not null"`
	Producto       Producto
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}
