package constants

import "fmt"

// Token admin hanya punya satu role; role lain ditolak OnlyRoles.
const RoleAdmin = "admin"

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var AdminOnly = []string{
	RoleAdmin,
}
