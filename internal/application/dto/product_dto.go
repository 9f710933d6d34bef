package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name    string          `json:"name" validate:"required,min=1,max=200"`
	SKU     string          `json:"sku" validate:"omitempty,max=100"`
	Price   decimal.Decimal `json:"price"`
	TaxRate decimal.Decimal `json:"tax_rate"`
	Unit    string          `json:"unit" validate:"omitempty,max=20"`
}

// UpdateProductRequest entrada para actualizar un producto. Nil = sin cambio.
type UpdateProductRequest struct {
	Name    *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU     *string          `json:"sku" validate:"omitempty,max=100"`
	Price   *decimal.Decimal `json:"price"`
	TaxRate *decimal.Decimal `json:"tax_rate"`
	Unit    *string          `json:"unit" validate:"omitempty,max=20"`
	Active  *bool            `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	AdminID   string          `json:"admin_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	Price     decimal.Decimal `json:"price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Unit      string          `json:"unit"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
