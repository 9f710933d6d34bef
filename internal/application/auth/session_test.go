package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BillSync-api/internal/application/auth"
	"github.com/jhoicas/BillSync-api/internal/domain/access"
	"github.com/jhoicas/BillSync-api/pkg/jwt"
)

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "billsync-api"}

func TestResolve_RoundTrip(t *testing.T) {
	r := auth.NewSessionResolver(jwtCfg)

	for _, p := range []access.Principal{
		{ID: "admin-1", Role: access.RoleAdmin},
		{ID: "cashier-1", Role: access.RoleCashier, AdminID: "admin-1"},
	} {
		token, err := r.Issue(p)
		require.NoError(t, err)
		assert.Equal(t, p, r.Resolve(token))
	}
}

func TestResolve_FallaCerrado(t *testing.T) {
	r := auth.NewSessionResolver(jwtCfg)
	mustToken := func(secret, role, adminID, issuer string, exp int) string {
		tok, err := jwt.Generate(secret, "actor-1", role, adminID, issuer, exp)
		require.NoError(t, err)
		return tok
	}

	cases := map[string]string{
		"vacío":              "",
		"malformado":         "no.es.un.jwt",
		"otro secreto":       mustToken("otro", "ADMIN", "", jwtCfg.Issuer, 60),
		"vencido":            mustToken(jwtCfg.Secret, "ADMIN", "", jwtCfg.Issuer, -1),
		"rol desconocido":    mustToken(jwtCfg.Secret, "ROOT", "", jwtCfg.Issuer, 60),
		"sin rol":            mustToken(jwtCfg.Secret, "", "", jwtCfg.Issuer, 60),
		"cajero sin admin":   mustToken(jwtCfg.Secret, "CASHIER", "", jwtCfg.Issuer, 60),
		"emisor desconocido": mustToken(jwtCfg.Secret, "ADMIN", "", "otro-emisor", 60),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			p := r.Resolve(token)
			assert.False(t, p.Authenticated())
			assert.Equal(t, access.Anonymous(), p)
		})
	}
}

// Un admin_id en un token de admin no cambia su tenant.
func TestResolve_AdminIgnoraAdminID(t *testing.T) {
	r := auth.NewSessionResolver(jwtCfg)
	tok, err := jwt.Generate(jwtCfg.Secret, "admin-1", "ADMIN", "admin-2", jwtCfg.Issuer, 60)
	require.NoError(t, err)

	p := r.Resolve(tok)
	assert.Equal(t, "admin-1", p.OwnerAdminID())
	assert.Empty(t, p.AdminID)
}

func TestIssue_AnonimoNoRecibeToken(t *testing.T) {
	r := auth.NewSessionResolver(jwtCfg)
	_, err := r.Issue(access.Anonymous())
	assert.Error(t, err)
}
