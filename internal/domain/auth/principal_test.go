package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ims-backend/internal/domain/auth"
)

func TestPrincipal_CapacidadesPorRol(t *testing.T) {
	cases := []struct {
		role string
		perm string
		want bool
	}{
		{"admin", auth.PermManageCatalog, true},
		{"admin", auth.PermUpdateStock, true},
		{"admin", auth.PermViewReports, true},
		{"admin", auth.PermExportReports, true},
		{"staff", auth.PermManageCatalog, true},
		{"staff", auth.PermExportReports, true},
		{"viewer", auth.PermViewReports, true},
		{"viewer", auth.PermManageCatalog, false},
		{"viewer", auth.PermUpdateStock, false},
		{"viewer", auth.PermExportReports, false},
		{"desconocido", auth.PermViewReports, false},
	}
	for _, tc := range cases {
		p := auth.NewPrincipal("u1", "user", tc.role)
		assert.Equal(t, tc.want, p.Can(tc.perm), "rol=%s perm=%s", tc.role, tc.perm)
	}
}

func TestPrincipal_ZeroNoTienePermisos(t *testing.T) {
	var p auth.Principal
	assert.False(t, p.IsAuthenticated())
	assert.False(t, p.Can(auth.PermViewReports),
		"un principal sin usuario no tiene ninguna capacidad")
}
