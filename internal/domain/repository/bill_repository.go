package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
)

// BillSummary agregados del tablero.
type BillSummary struct {
	BillCount   int
	PaidCount   int
	Collected   decimal.Decimal
	Outstanding decimal.Decimal
}

// BillRepository puerto de persistencia para facturas y sus líneas.
type BillRepository interface {
	// Create persiste cabecera y líneas de forma atómica.
	Create(ctx context.Context, bill *entity.Bill) error
	// GetByID devuelve la factura con sus líneas, o nil si no existe en el scope.
	GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Bill, error)
	List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.Bill, error)
	// MarkPaid pasa UNPAID → PAID. Devuelve false si la fila ya no estaba UNPAID.
	MarkPaid(ctx context.Context, scope access.Scope, id, mode string, paidAt time.Time) (bool, error)
	Delete(ctx context.Context, scope access.Scope, id string) error
	Summary(ctx context.Context, scope access.Scope, since time.Time) (*BillSummary, error)
}
