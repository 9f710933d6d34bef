package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

const billColumns = `id, admin_id, issued_by, number, customer_name, customer_phone, customer_email,
	subtotal, tax_total, total, status, payment_mode, paid_at, created_at, updated_at`

// BillRepo facturas y líneas sobre PostgreSQL.
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

func scanBill(row interface{ Scan(...any) error }) (*entity.Bill, error) {
	var b entity.Bill
	err := row.Scan(&b.ID, &b.AdminID, &b.IssuedBy, &b.Number, &b.CustomerName, &b.CustomerPhone, &b.CustomerEmail,
		&b.Subtotal, &b.TaxTotal, &b.Total, &b.Status, &b.PaymentMode, &b.PaidAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserta cabecera y líneas en una transacción (un savepoint si q ya es una tx).
func (r *BillRepo) Create(ctx context.Context, b *entity.Bill) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin bill: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = tx.Exec(ctx, query, b.ID, b.AdminID, b.IssuedBy, b.Number, b.CustomerName, b.CustomerPhone, b.CustomerEmail,
		b.Subtotal, b.TaxTotal, b.Total, b.Status, b.PaymentMode, b.PaidAt, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return writeErr("insert bill", err)
	}

	batch := &pgx.Batch{}
	for i, it := range b.Items {
		batch.Queue(`
			INSERT INTO bill_items (id, bill_id, position, product_id, product_name, quantity, unit_price, tax_rate, line_total, tax_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			it.ID, b.ID, i, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.TaxRate, it.LineTotal, it.TaxAmount)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return writeErr("insert bill items", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit bill: %w", err)
	}
	return nil
}

// GetByID devuelve la factura del scope con sus líneas en orden.
func (r *BillRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1 AND admin_id = $2`
	b, err := scanBill(r.q.QueryRow(ctx, query, id, scope.AdminID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, bill_id, product_id, product_name, quantity, unit_price, tax_rate, line_total, tax_amount
		FROM bill_items WHERE bill_id = $1 ORDER BY position`, b.ID)
	if err != nil {
		return nil, fmt.Errorf("get bill items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.BillItem
		if err := rows.Scan(&it.ID, &it.BillID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice,
			&it.TaxRate, &it.LineTotal, &it.TaxAmount); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		b.Items = append(b.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get bill items: %w", err)
	}
	return b, nil
}

// List lista cabeceras del scope, más recientes primero.
func (r *BillRepo) List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE admin_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, scope.AdminID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// MarkPaid UNPAID → PAID de forma atómica; false si la fila no estaba UNPAID en el scope.
func (r *BillRepo) MarkPaid(ctx context.Context, scope access.Scope, id, mode string, paidAt time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE bills SET status = $3, payment_mode = $4, paid_at = $5, updated_at = $5
		WHERE id = $1 AND admin_id = $2 AND status = $6`,
		id, scope.AdminID, entity.BillStatusPaid, mode, paidAt, entity.BillStatusUnpaid)
	if err != nil {
		return false, fmt.Errorf("mark bill paid: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BillRepo) Delete(ctx context.Context, scope access.Scope, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM bills WHERE id = $1 AND admin_id = $2`, id, scope.AdminID)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Summary agregados del tablero desde since.
func (r *BillRepo) Summary(ctx context.Context, scope access.Scope, since time.Time) (*repository.BillSummary, error) {
	var s repository.BillSummary
	err := r.q.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE status = 'PAID'),
		       COALESCE(sum(total) FILTER (WHERE status = 'PAID'), 0),
		       COALESCE(sum(total) FILTER (WHERE status = 'UNPAID'), 0)
		FROM bills WHERE admin_id = $1 AND created_at >= $2`,
		scope.AdminID, since,
	).Scan(&s.BillCount, &s.PaidCount, &s.Collected, &s.Outstanding)
	if err != nil {
		return nil, fmt.Errorf("bill summary: %w", err)
	}
	return &s, nil
}
