package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBillRequest body para POST /api/pos/bills.
type CreateBillRequest struct {
	CustomerName  string            `json:"customer_name" validate:"omitempty,max=200"`
	CustomerPhone string            `json:"customer_phone" validate:"omitempty,max=20"`
	CustomerEmail string            `json:"customer_email" validate:"omitempty,email"`
	Items         []BillItemRequest `json:"items" validate:"required,min=1,dive"`
}

// BillItemRequest línea pedida: producto y cantidad. El precio sale del catálogo.
type BillItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// PayBillRequest cobro en caja.
type PayBillRequest struct {
	Mode string `json:"mode" validate:"required,oneof=CASH UPI CARD"`
}

// BillResponse factura con sus líneas.
type BillResponse struct {
	ID            string             `json:"id"`
	AdminID       string             `json:"admin_id"`
	IssuedBy      string             `json:"issued_by"`
	Number        string             `json:"number"`
	CustomerName  string             `json:"customer_name,omitempty"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	CustomerEmail string             `json:"customer_email,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxTotal      decimal.Decimal    `json:"tax_total"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
	PaymentMode   string             `json:"payment_mode,omitempty"`
	PaidAt        *time.Time         `json:"paid_at,omitempty"`
	Items         []BillItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// BillItemResponse línea de factura.
type BillItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

// BillListResponse lista paginada de facturas (sin líneas).
type BillListResponse struct {
	Items []BillResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// DashboardResponse resumen del día para el tablero de caja.
type DashboardResponse struct {
	Since       time.Time       `json:"since"`
	BillCount   int             `json:"bill_count"`
	PaidCount   int             `json:"paid_count"`
	Collected   decimal.Decimal `json:"collected"`
	Outstanding decimal.Decimal `json:"outstanding"`
}
