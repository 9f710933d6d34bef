package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
)

const (
	adminA = "admin-a"
	adminB = "admin-b"
)

var (
	principalA  = access.Principal{ID: adminA, Role: access.RoleAdmin}
	principalB  = access.Principal{ID: adminB, Role: access.RoleAdmin}
	cashierOfA  = access.Principal{ID: "cashier-1", Role: access.RoleCashier, AdminID: adminA}
	cashierOfB  = access.Principal{ID: "cashier-2", Role: access.RoleCashier, AdminID: adminB}
	orphanCashr = access.Principal{ID: "cashier-3", Role: access.RoleCashier}
)

func TestAuthorize_TablaDeDecision(t *testing.T) {
	cases := []struct {
		name      string
		p         access.Principal
		target    string
		allowed   []access.Role
		wantErr   error
		wantAdmin string
	}{
		{"anónimo", access.Anonymous(), "", access.Staff, domain.ErrUnauthenticated, ""},
		{"cajero en ruta admin", cashierOfA, "", access.AdminOnly, domain.ErrForbidden, ""},
		{"admin en ruta admin", principalA, "", access.AdminOnly, nil, adminA},
		{"cajero en ruta staff", cashierOfA, "", access.Staff, nil, adminA},
		{"admin con recurso propio", principalA, adminA, access.Staff, nil, adminA},
		{"admin con recurso ajeno", principalA, adminB, access.Staff, domain.ErrNotFound, ""},
		{"cajero con recurso de su admin", cashierOfA, adminA, access.Staff, nil, adminA},
		{"cajero con recurso de otro admin", cashierOfA, adminB, access.Staff, domain.ErrNotFound, ""},
		{"cajero sin admin", orphanCashr, "", access.Staff, domain.ErrUnauthenticated, ""},
		{"rol desconocido", access.Principal{ID: "x", Role: "ROOT"}, "", access.Staff, domain.ErrForbidden, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scope, err := access.Authorize(tc.p, access.ActionRead, tc.target, tc.allowed...)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, access.Scope{}, scope, "una denegación no produce filtro")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantAdmin, scope.AdminID)
			assert.Equal(t, tc.p.ID, scope.PrincipalID)
			assert.Equal(t, access.ActionRead, scope.Action)
		})
	}
}

// Un cajero nunca usa su propio ID como dueño: queda acotado igual que su admin.
func TestAuthorize_CajeroAcotadoComoSuAdmin(t *testing.T) {
	sA, err := access.Authorize(principalA, access.ActionRead, "", access.Staff...)
	require.NoError(t, err)
	sC, err := access.Authorize(cashierOfA, access.ActionRead, "", access.Staff...)
	require.NoError(t, err)

	assert.Equal(t, sA.AdminID, sC.AdminID)
	assert.NotEqual(t, cashierOfA.ID, sC.AdminID)

	sOther, err := access.Authorize(cashierOfB, access.ActionRead, "", access.Staff...)
	require.NoError(t, err)
	assert.NotEqual(t, sA.AdminID, sOther.AdminID)
}

func TestAuthorize_AislamientoEntreTenants(t *testing.T) {
	for _, p := range []access.Principal{principalB, cashierOfB} {
		_, err := access.Authorize(p, access.ActionUpdate, adminA, access.Staff...)
		assert.ErrorIs(t, err, domain.ErrNotFound, "el recurso de A es invisible para %s", p.ID)
	}
}

func TestClassifyPath(t *testing.T) {
	assert.Equal(t, access.ClassAdmin, access.ClassifyPath("/api/admin/profile"))
	assert.Equal(t, access.ClassAdmin, access.ClassifyPath("/admin"))
	assert.Equal(t, access.ClassStaff, access.ClassifyPath("/api/pos/bills/1"))
	assert.Equal(t, access.ClassStaff, access.ClassifyPath("/cashier/dashboard"))
	assert.Equal(t, access.ClassPublic, access.ClassifyPath("/api/administrator"))
	assert.Equal(t, access.ClassPublic, access.ClassifyPath("/api/plans"))

	assert.Equal(t, "/admin/dashboard", access.Landing(access.RoleAdmin))
	assert.Equal(t, "/cashier/dashboard", access.Landing(access.RoleCashier))
	assert.Nil(t, access.AllowedRoles(access.ClassPublic))
}
