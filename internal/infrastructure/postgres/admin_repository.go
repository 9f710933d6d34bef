package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/domain/repository"
)

var _ repository.AdminRepository = (*AdminRepo)(nil)

const adminColumns = `id, name, email, password_hash, business_name, phone, address, upi_id, logo_url,
	email_verified, otp_hash, otp_expires_at, created_at, updated_at`

// AdminRepo implementación de AdminRepository sobre PostgreSQL (usable con pool o tx).
type AdminRepo struct {
	q Querier
}

// NewAdminRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdminRepository(q Querier) *AdminRepo {
	return &AdminRepo{q: q}
}

func scanAdmin(row interface{ Scan(...any) error }) (*entity.Admin, error) {
	var a entity.Admin
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.BusinessName, &a.Phone, &a.Address,
		&a.UPIID, &a.LogoURL, &a.EmailVerified, &a.OTPHash, &a.OTPExpiresAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserta el admin. Un email repetido devuelve domain.ErrEmailAlreadyExists.
func (r *AdminRepo) Create(ctx context.Context, a *entity.Admin) error {
	query := `INSERT INTO admins (` + adminColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query, a.ID, a.Name, a.Email, a.PasswordHash, a.BusinessName, a.Phone, a.Address,
		a.UPIID, a.LogoURL, a.EmailVerified, a.OTPHash, a.OTPExpiresAt, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// Get devuelve el admin del scope.
func (r *AdminRepo) Get(ctx context.Context, scope access.Scope) (*entity.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	a, err := scanAdmin(r.q.QueryRow(ctx, query, scope.AdminID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return a, nil
}

// GetByEmail busca por email sin distinguir mayúsculas.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE lower(email) = lower($1)`
	a, err := scanAdmin(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return a, nil
}

// Update actualiza los campos editables. El id sale del scope, no del entity.
func (r *AdminRepo) Update(ctx context.Context, scope access.Scope, a *entity.Admin) error {
	query := `
		UPDATE admins SET name = $2, business_name = $3, phone = $4, address = $5, upi_id = $6,
			logo_url = $7, email_verified = $8, otp_hash = $9, otp_expires_at = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, scope.AdminID, a.Name, a.BusinessName, a.Phone, a.Address, a.UPIID,
		a.LogoURL, a.EmailVerified, a.OTPHash, a.OTPExpiresAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
