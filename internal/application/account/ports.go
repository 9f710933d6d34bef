package account

import (
	"context"
	"io"

	"github.com/jhoicas/BillSync-api/internal/domain/plan"
)

// ObjectStore almacenamiento de archivos subidos. Put devuelve la URL pública del objeto.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// EntitlementReader derechos del plan vigente de un admin.
type EntitlementReader interface {
	Entitlements(ctx context.Context, adminID string) (plan.Entitlements, error)
}
