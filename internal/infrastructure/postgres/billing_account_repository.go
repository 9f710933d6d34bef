package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/domain/repository"
)

var _ repository.BillingAccountRepository = (*BillingAccountRepo)(nil)

const accountColumns = `id, admin_id, name, email, password_hash, status, created_at, updated_at`

// BillingAccountRepo cajeros sobre PostgreSQL. Toda consulta con scope filtra por admin_id.
type BillingAccountRepo struct {
	q Querier
}

// NewBillingAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillingAccountRepository(q Querier) *BillingAccountRepo {
	return &BillingAccountRepo{q: q}
}

func scanAccount(row interface{ Scan(...any) error }) (*entity.BillingAccount, error) {
	var a entity.BillingAccount
	if err := row.Scan(&a.ID, &a.AdminID, &a.Name, &a.Email, &a.PasswordHash, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *BillingAccountRepo) Create(ctx context.Context, a *entity.BillingAccount) error {
	query := `INSERT INTO billing_accounts (` + accountColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, a.ID, a.AdminID, a.Name, a.Email, a.PasswordHash, a.Status, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert billing account: %w", err)
	}
	return nil
}

func (r *BillingAccountRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.BillingAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM billing_accounts WHERE id = $1 AND admin_id = $2`
	a, err := scanAccount(r.q.QueryRow(ctx, query, id, scope.AdminID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get billing account: %w", err)
	}
	return a, nil
}

func (r *BillingAccountRepo) GetByEmail(ctx context.Context, email string) (*entity.BillingAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM billing_accounts WHERE lower(email) = lower($1)`
	a, err := scanAccount(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get billing account by email: %w", err)
	}
	return a, nil
}

func (r *BillingAccountRepo) List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.BillingAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM billing_accounts WHERE admin_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, scope.AdminID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list billing accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.BillingAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan billing account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *BillingAccountRepo) Count(ctx context.Context, scope access.Scope) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM billing_accounts WHERE admin_id = $1`, scope.AdminID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count billing accounts: %w", err)
	}
	return n, nil
}

func (r *BillingAccountRepo) Update(ctx context.Context, scope access.Scope, a *entity.BillingAccount) error {
	query := `
		UPDATE billing_accounts SET name = $3, password_hash = $4, status = $5, updated_at = $6
		WHERE id = $1 AND admin_id = $2`
	tag, err := r.q.Exec(ctx, query, a.ID, scope.AdminID, a.Name, a.PasswordHash, a.Status, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update billing account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BillingAccountRepo) Delete(ctx context.Context, scope access.Scope, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM billing_accounts WHERE id = $1 AND admin_id = $2`, id, scope.AdminID)
	if err != nil {
		return fmt.Errorf("delete billing account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
