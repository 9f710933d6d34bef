package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BillSync-api/internal/domain/entity"
)

func TestGenerateBillPDF(t *testing.T) {
	bill := &entity.Bill{
		ID: "b1", AdminID: "a1", Number: "BILL-20260101-123456",
		CustomerName: "Ravi",
		Subtotal:     decimal.RequireFromString("200"),
		TaxTotal:     decimal.RequireFromString("36"),
		Total:        decimal.RequireFromString("236"),
		Status:       entity.BillStatusUnpaid,
		CreatedAt:    time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		Items: []entity.BillItem{{
			ProductName: "Té masala", Quantity: decimal.NewFromInt(2),
			UnitPrice: decimal.NewFromInt(100), TaxRate: decimal.NewFromInt(18),
			LineTotal: decimal.NewFromInt(200), TaxAmount: decimal.NewFromInt(36),
		}},
	}
	admin := &entity.Admin{ID: "a1", Name: "Ana", Email: "ana@shop.in", BusinessName: "Chai Point", UPIID: "chai@upi"}

	out, err := NewMarotoPDFGenerator().GenerateBillPDF(context.Background(), bill, admin)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMoney(t *testing.T) {
	g := NewMarotoPDFGenerator()
	assert.Equal(t, "Rs. 1,234.50", g.money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "Rs. 0.00", g.money(decimal.Zero))
}
