package authorization

type UserRole string

const (
	RoleTechTeam UserRole = "tech_team"
	RoleClient   UserRole = "client"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsTechTeam() bool {
	return r == RoleTechTeam
}

func (r UserRole) IsValid() bool {
	return r == RoleTechTeam || r == RoleClient
}

// ParseUserRole maps unknown roles to the least privileged one.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleClient
}
