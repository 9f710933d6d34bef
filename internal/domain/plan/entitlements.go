// Package plan traduce el nombre del plan de un admin a las funciones que desbloquea.
package plan

import (
	"strings"

	"github.com/jhoicas/BillSync-api/internal/domain/entity"
)

// Feature función que puede estar bloqueada por plan.
type Feature string

const (
	FeaturePDFExport  Feature = "PDF_EXPORT"
	FeatureQRPayments Feature = "QR_PAYMENTS"
)

// Unlimited marca un límite sin tope.
const Unlimited = -1

// Entitlements límites y funciones de un plan.
type Entitlements struct {
	Plan        string    `json:"plan"`
	MaxCashiers int       `json:"max_cashiers"`
	MaxProducts int       `json:"max_products"`
	Features    []Feature `json:"features"`
}

// For devuelve los derechos del plan. Un nombre desconocido recibe los del plan STANDARD.
func For(planName string) Entitlements {
	switch strings.ToUpper(planName) {
	case entity.PlanEnterprise:
		return Entitlements{
			Plan:        entity.PlanEnterprise,
			MaxCashiers: Unlimited,
			MaxProducts: Unlimited,
			Features:    []Feature{FeaturePDFExport, FeatureQRPayments},
		}
	case entity.PlanPremium:
		return Entitlements{
			Plan:        entity.PlanPremium,
			MaxCashiers: 5,
			MaxProducts: 1000,
			Features:    []Feature{FeaturePDFExport, FeatureQRPayments},
		}
	default:
		return Entitlements{
			Plan:        entity.PlanStandard,
			MaxCashiers: 1,
			MaxProducts: 50,
			Features:    []Feature{FeatureQRPayments},
		}
	}
}

// Has informa si el plan incluye la función.
func (e Entitlements) Has(f Feature) bool {
	for _, x := range e.Features {
		if x == f {
			return true
		}
	}
	return false
}

// AllowsCashiers informa si cabe un cajero más sobre los current existentes.
func (e Entitlements) AllowsCashiers(current int) bool {
	return e.MaxCashiers == Unlimited || current < e.MaxCashiers
}

// AllowsProducts informa si cabe un producto más sobre los current existentes.
func (e Entitlements) AllowsProducts(current int) bool {
	return e.MaxProducts == Unlimited || current < e.MaxProducts
}
