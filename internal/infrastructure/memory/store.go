// Package memory implementa los puertos de repositorio en memoria. Aplica el mismo filtro de
// tenant que las consultas SQL (admin_id = scope.AdminID) y se usa en las pruebas de los casos
// de uso y de la capa HTTP.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/BillSync-api/internal/domain/entity"
	"github.com/jhoicas/BillSync-api/internal/domain/repository"
)

// IDs fijos de los planes sembrados.
const (
	PlanStandardID   = "plan-standard"
	PlanPremiumID    = "plan-premium"
	PlanEnterpriseID = "plan-enterprise"
)

// Store almacén en memoria seguro para uso concurrente.
type Store struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	admins   map[string]entity.Admin
	accounts map[string]entity.BillingAccount
	products map[string]entity.Product
	bills    map[string]entity.Bill
	plans    map[string]entity.SubscriptionPlan
	subs     map[string]entity.Subscription // clave: admin_id
	payments map[string]entity.Payment      // clave: order_id
}

// New crea un almacén vacío con el catálogo de planes sembrado.
func New() *Store {
	s := &Store{
		admins:   map[string]entity.Admin{},
		accounts: map[string]entity.BillingAccount{},
		products: map[string]entity.Product{},
		bills:    map[string]entity.Bill{},
		plans:    map[string]entity.SubscriptionPlan{},
		subs:     map[string]entity.Subscription{},
		payments: map[string]entity.Payment{},
	}
	for _, p := range []entity.SubscriptionPlan{
		{ID: PlanStandardID, Name: entity.PlanStandard, DisplayName: "Standard", Price: decimal.Zero},
		{ID: PlanPremiumID, Name: entity.PlanPremium, DisplayName: "Premium", Price: decimal.NewFromInt(499)},
		{ID: PlanEnterpriseID, Name: entity.PlanEnterprise, DisplayName: "Enterprise", Price: decimal.NewFromInt(1499)},
	} {
		s.plans[p.ID] = p
	}
	return s
}

func (s *Store) Admins() repository.AdminRepository               { return adminRepo{s} }
func (s *Store) Accounts() repository.BillingAccountRepository    { return accountRepo{s} }
func (s *Store) Products() repository.ProductRepository           { return productRepo{s} }
func (s *Store) Bills() repository.BillRepository                 { return billRepo{s} }
func (s *Store) Plans() repository.PlanRepository                 { return planRepo{s} }
func (s *Store) Subscriptions() repository.SubscriptionRepository { return subscriptionRepo{s} }
func (s *Store) Payments() repository.PaymentRepository           { return paymentRepo{s} }

type snapshot struct {
	admins   map[string]entity.Admin
	accounts map[string]entity.BillingAccount
	subs     map[string]entity.Subscription
	payments map[string]entity.Payment
}

// atomically ejecuta fn y revierte las tablas mutables si devuelve error.
func (s *Store) atomically(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := snapshot{
		admins:   maps.Clone(s.admins),
		accounts: maps.Clone(s.accounts),
		subs:     maps.Clone(s.subs),
		payments: maps.Clone(s.payments),
	}
	s.mu.Unlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.admins, s.accounts, s.subs, s.payments = snap.admins, snap.accounts, snap.subs, snap.payments
		s.mu.Unlock()
		return err
	}
	return nil
}

// RunSignup ejecuta fn con los repos de alta de admin de forma atómica.
func (s *Store) RunSignup(ctx context.Context, fn func(
	admins repository.AdminRepository,
	subs repository.SubscriptionRepository,
	plans repository.PlanRepository,
) error) error {
	return s.atomically(func() error { return fn(s.Admins(), s.Subscriptions(), s.Plans()) })
}

// RunSubscription ejecuta fn con los repos de suscripción y pagos de forma atómica.
func (s *Store) RunSubscription(ctx context.Context, fn func(
	subs repository.SubscriptionRepository,
	plans repository.PlanRepository,
	payments repository.PaymentRepository,
) error) error {
	return s.atomically(func() error { return fn(s.Subscriptions(), s.Plans(), s.Payments()) })
}
