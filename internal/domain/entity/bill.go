package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	BillStatusUnpaid = "UNPAID"
	BillStatusPaid   = "PAID"
)

// Medios de cobro aceptados en caja.
const (
	PaymentModeCash = "CASH"
	PaymentModeUPI  = "UPI"
	PaymentModeCard = "CARD"
)

// Límites de las columnas NUMERIC(12,3) de cantidad y NUMERIC(14,2) de importes.
const QuantityScale = 3

var (
	maxQuantity = decimal.New(1, 9)
	maxAmount   = decimal.New(1, 12)
)

// ValidQuantity informa si la cantidad es positiva, tiene a lo sumo tres decimales y
// cabe en la columna.
func ValidQuantity(q decimal.Decimal) bool {
	return q.IsPositive() && q.Equal(q.Round(QuantityScale)) && q.LessThan(maxQuantity)
}

// ValidAmount informa si un importe ya redondeado cabe en las columnas de totales.
func ValidAmount(a decimal.Decimal) bool {
	return a.Abs().LessThan(maxAmount)
}

// Bill factura emitida por un admin o uno de sus cajeros.
type Bill struct {
	ID            string
	AdminID       string
	IssuedBy      string // ID del actor que la emitió (admin o cajero)
	Number        string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Subtotal      decimal.Decimal
	TaxTotal      decimal.Decimal
	Total         decimal.Decimal
	Status        string
	PaymentMode   string // vacío mientras está UNPAID
	PaidAt        *time.Time
	Items         []BillItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BillItem línea de factura. Nombre y precio se copian del producto al emitir.
type BillItem struct {
	ID          string
	BillID      string
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	LineTotal   decimal.Decimal // quantity * unit_price, sin impuesto
	TaxAmount   decimal.Decimal
}
