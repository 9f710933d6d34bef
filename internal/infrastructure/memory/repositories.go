package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/domain/repository"
)

var (
	_ repository.AdminRepository          = adminRepo{}
	_ repository.BillingAccountRepository = accountRepo{}
	_ repository.ProductRepository        = productRepo{}
	_ repository.BillRepository           = billRepo{}
	_ repository.PlanRepository           = planRepo{}
	_ repository.SubscriptionRepository   = subscriptionRepo{}
	_ repository.PaymentRepository        = paymentRepo{}
)

// page aplica limit/offset sobre una lista ya ordenada.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ── admins ──────────────────────────────────────────────────────────────────

type adminRepo struct{ s *Store }

func (r adminRepo) Create(ctx context.Context, a *entity.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.admins {
		if strings.EqualFold(x.Email, a.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.admins[a.ID] = *a
	return nil
}

func (r adminRepo) Get(ctx context.Context, scope access.Scope) (*entity.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[scope.AdminID]
	if !ok || scope.AdminID == "" {
		return nil, nil
	}
	return &a, nil
}

func (r adminRepo) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.admins {
		if strings.EqualFold(a.Email, email) {
			return &a, nil
		}
	}
	return nil, nil
}

func (r adminRepo) Update(ctx context.Context, scope access.Scope, a *entity.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.admins[scope.AdminID]; !ok || a.ID != scope.AdminID {
		return domain.ErrNotFound
	}
	r.s.admins[a.ID] = *a
	return nil
}

// ── cajeros ─────────────────────────────────────────────────────────────────

type accountRepo struct{ s *Store }

func (r accountRepo) Create(ctx context.Context, acc *entity.BillingAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.accounts {
		if strings.EqualFold(x.Email, acc.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.accounts[acc.ID] = *acc
	return nil
}

func (r accountRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.BillingAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	acc, ok := r.s.accounts[id]
	if !ok || acc.AdminID != scope.AdminID {
		return nil, nil
	}
	return &acc, nil
}

func (r accountRepo) GetByEmail(ctx context.Context, email string) (*entity.BillingAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, acc := range r.s.accounts {
		if strings.EqualFold(acc.Email, email) {
			return &acc, nil
		}
	}
	return nil, nil
}

func (r accountRepo) scoped(scope access.Scope) []*entity.BillingAccount {
	var out []*entity.BillingAccount
	for _, acc := range r.s.accounts {
		if acc.AdminID == scope.AdminID {
			out = append(out, &acc)
		}
	}
	slices.SortFunc(out, func(a, b *entity.BillingAccount) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

func (r accountRepo) List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.BillingAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.scoped(scope), limit, offset), nil
}

func (r accountRepo) Count(ctx context.Context, scope access.Scope) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.scoped(scope)), nil
}

func (r accountRepo) Update(ctx context.Context, scope access.Scope, acc *entity.BillingAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.accounts[acc.ID]
	if !ok || cur.AdminID != scope.AdminID {
		return domain.ErrNotFound
	}
	acc.ID, acc.AdminID = cur.ID, cur.AdminID
	r.s.accounts[cur.ID] = *acc
	return nil
}

func (r accountRepo) Delete(ctx context.Context, scope access.Scope, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.accounts[id]
	if !ok || cur.AdminID != scope.AdminID {
		return domain.ErrNotFound
	}
	delete(r.s.accounts, id)
	return nil
}

// ── productos ───────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r productRepo) skuTaken(p *entity.Product) bool {
	if p.SKU == "" {
		return false
	}
	for _, x := range r.s.products {
		if x.ID != p.ID && x.AdminID == p.AdminID && strings.EqualFold(x.SKU, p.SKU) {
			return true
		}
	}
	return false
}

func (r productRepo) Create(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.skuTaken(p) {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.AdminID != scope.AdminID {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) scoped(scope access.Scope) []*entity.Product {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.AdminID == scope.AdminID {
			out = append(out, &p)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Product) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

func (r productRepo) List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.scoped(scope), limit, offset), nil
}

func (r productRepo) Count(ctx context.Context, scope access.Scope) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.scoped(scope)), nil
}

func (r productRepo) Update(ctx context.Context, scope access.Scope, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok || cur.AdminID != scope.AdminID {
		return domain.ErrNotFound
	}
	p.ID, p.AdminID = cur.ID, cur.AdminID
	if r.skuTaken(p) {
		return domain.ErrDuplicate
	}
	r.s.products[cur.ID] = *p
	return nil
}

func (r productRepo) Delete(ctx context.Context, scope access.Scope, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[id]
	if !ok || cur.AdminID != scope.AdminID {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

// ── facturas ────────────────────────────────────────────────────────────────

type billRepo struct{ s *Store }

func (r billRepo) Create(ctx context.Context, b *entity.Bill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.bills {
		if x.AdminID == b.AdminID && x.Number == b.Number {
			return domain.ErrDuplicate
		}
	}
	cp := *b
	cp.Items = slices.Clone(b.Items)
	r.s.bills[b.ID] = cp
	return nil
}

func (r billRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bills[id]
	if !ok || b.AdminID != scope.AdminID {
		return nil, nil
	}
	b.Items = slices.Clone(b.Items)
	return &b, nil
}

func (r billRepo) List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Bill
	for _, b := range r.s.bills {
		if b.AdminID == scope.AdminID {
			b.Items = nil
			out = append(out, &b)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Bill) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return page(out, limit, offset), nil
}

func (r billRepo) MarkPaid(ctx context.Context, scope access.Scope, id, mode string, paidAt time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bills[id]
	if !ok || b.AdminID != scope.AdminID || b.Status != entity.BillStatusUnpaid {
		return false, nil
	}
	b.Status = entity.BillStatusPaid
	b.PaymentMode = mode
	b.PaidAt = &paidAt
	b.UpdatedAt = paidAt
	r.s.bills[b.ID] = b
	return true, nil
}

func (r billRepo) Delete(ctx context.Context, scope access.Scope, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bills[id]
	if !ok || b.AdminID != scope.AdminID {
		return domain.ErrNotFound
	}
	delete(r.s.bills, id)
	return nil
}

func (r billRepo) Summary(ctx context.Context, scope access.Scope, since time.Time) (*repository.BillSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum repository.BillSummary
	for _, b := range r.s.bills {
		if b.AdminID != scope.AdminID || b.CreatedAt.Before(since) {
			continue
		}
		sum.BillCount++
		if b.Status == entity.BillStatusPaid {
			sum.PaidCount++
			sum.Collected = sum.Collected.Add(b.Total)
		} else {
			sum.Outstanding = sum.Outstanding.Add(b.Total)
		}
	}
	return &sum, nil
}

// ── planes ──────────────────────────────────────────────────────────────────

type planRepo struct{ s *Store }

func (r planRepo) List(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SubscriptionPlan
	for _, p := range r.s.plans {
		out = append(out, &p)
	}
	slices.SortFunc(out, func(a, b *entity.SubscriptionPlan) int { return a.Price.Cmp(b.Price) })
	return out, nil
}

func (r planRepo) GetByID(ctx context.Context, id string) (*entity.SubscriptionPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.plans[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r planRepo) GetByName(ctx context.Context, name string) (*entity.SubscriptionPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.plans {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, nil
}

// ── suscripciones ───────────────────────────────────────────────────────────

type subscriptionRepo struct{ s *Store }

func (r subscriptionRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.subs[sub.AdminID]; ok {
		return domain.ErrDuplicate
	}
	r.s.subs[sub.AdminID] = *sub
	return nil
}

func (r subscriptionRepo) GetByAdmin(ctx context.Context, adminID string) (*entity.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.subs[adminID]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (r subscriptionRepo) Update(ctx context.Context, sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.subs[sub.AdminID]
	if !ok {
		return domain.ErrNotFound
	}
	sub.ID = cur.ID
	sub.StartDate = cur.StartDate
	r.s.subs[sub.AdminID] = *sub
	return nil
}

// ── pagos ───────────────────────────────────────────────────────────────────

type paymentRepo struct{ s *Store }

func (r paymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.payments[p.OrderID]; ok {
		return domain.ErrDuplicate
	}
	r.s.payments[p.OrderID] = *p
	return nil
}

func (r paymentRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[orderID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r paymentRepo) Settle(ctx context.Context, p *entity.Payment) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.payments[p.OrderID]
	if !ok || cur.Status != entity.PaymentStatusPending {
		return false, nil
	}
	cur.Status = p.Status
	cur.PaymentID = p.PaymentID
	cur.SubscriptionID = p.SubscriptionID
	cur.FailureReason = p.FailureReason
	cur.UpdatedAt = p.UpdatedAt
	r.s.payments[p.OrderID] = cur
	return true, nil
}

func (r paymentRepo) List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.AdminID == scope.AdminID {
			out = append(out, &p)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Payment) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return page(out, limit, offset), nil
}
