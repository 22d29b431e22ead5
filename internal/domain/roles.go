package domain

type Role string

const (
	// User can read back-office data but not destroy it permanently.
	RoleUser Role = "user"
	// Admin can manage users and permanently delete leads.
	RoleAdmin Role = "admin"
)

// DefaultRole is assigned when user creation omits a role.
// Back-office accounts are admin accounts unless stated otherwise.
const DefaultRole = RoleAdmin

func IsValidRole(r string) bool {
	return r == string(RoleUser) || r == string(RoleAdmin)
}

// RoleRank: bigger => higher privilege
func RoleRank(r string) int {
	switch r {
	case string(RoleUser):
		return 1
	case string(RoleAdmin):
		return 2
	default:
		return 0
	}
}
