// Package auth define el principal explícito que viaja con cada operación.
// Sustituye el chequeo ambiental de permisos del framework por una capability
// que los casos de uso reciben y verifican ellos mismos.
package auth

// Permisos de la aplicación.
const (
	PermManageCatalog = "manage_catalog"
	PermUpdateStock   = "update_stock"
	PermViewReports   = "view_reports"
	PermExportReports = "export_reports"
)

// rolePermissions permisos otorgados por rol.
var rolePermissions = map[string][]string{
	"admin":  {PermManageCatalog, PermUpdateStock, PermViewReports, PermExportReports},
	"staff":  {PermManageCatalog, PermUpdateStock, PermViewReports, PermExportReports},
	"viewer": {PermViewReports},
}

// Principal identidad autenticada con sus capacidades resueltas.
type Principal struct {
	UserID   string
	Username string
	Role     string
	perms    map[string]bool
}

// NewPrincipal construye el principal resolviendo los permisos del rol.
func NewPrincipal(userID, username, role string) Principal {
	perms := make(map[string]bool)
	for _, p := range rolePermissions[role] {
		perms[p] = true
	}
	return Principal{UserID: userID, Username: username, Role: role, perms: perms}
}

// Can indica si el principal tiene el permiso dado.
func (p Principal) Can(perm string) bool {
	return p.perms[perm]
}

// IsAuthenticated indica si hay un usuario detrás del principal.
func (p Principal) IsAuthenticated() bool {
	return p.UserID != ""
}
