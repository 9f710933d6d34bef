package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product artículo vendible de un tenant.
type Product struct {
	ID        string
	AdminID   string
	Name      string
	SKU       string // opcional, único por admin si viene
	Price     decimal.Decimal
	TaxRate   decimal.Decimal // porcentaje: 0, 5, 12, 18, 28
	Unit      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Límites de la columna NUMERIC(12,2) de precios.
const PriceScale = 2

var maxPrice = decimal.New(1, 10)

// ValidPrice informa si el precio cabe sin redondeo en la columna: no negativo, hasta dos
// decimales y menor que 10^10.
func ValidPrice(p decimal.Decimal) bool {
	return !p.IsNegative() && p.Equal(p.Round(PriceScale)) && p.LessThan(maxPrice)
}
