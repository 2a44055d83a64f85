package membership

import "strings"

// Role is a hub-wide access level. Roles are ordered; a higher role
// implies every capability of the lower ones unless a rule says otherwise.
type Role string

const (
	RoleUser      Role = "user"
	RoleMember    Role = "member"
	RoleR4        Role = "r4"
	RoleR5        Role = "r5"
	RolePresident Role = "president"
	RoleAdmin     Role = "admin"
)

var roleRank = map[Role]int{
	RoleUser:      0,
	RoleMember:    1,
	RoleR4:        2,
	RoleR5:        3,
	RolePresident: 4,
	RoleAdmin:     5,
}

// AllRoles lists roles from lowest to highest
func AllRoles() []Role {
	return []Role{RoleUser, RoleMember, RoleR4, RoleR5, RolePresident, RoleAdmin}
}

// ParseRole parses a role name case-insensitively
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	_, ok := roleRank[r]
	return r, ok
}

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r ranks at or above other
func (r Role) AtLeast(other Role) bool {
	return roleRank[r] >= roleRank[other]
}

// IsAllianceRole reports whether the role only makes sense inside an alliance
func (r Role) IsAllianceRole() bool {
	return r == RoleMember || r == RoleR4 || r == RoleR5
}

// IsAllianceOfficer reports R4 or R5
func (r Role) IsAllianceOfficer() bool {
	return r == RoleR4 || r == RoleR5
}

// IsStateLeadership reports president or admin
func (r Role) IsStateLeadership() bool {
	return r == RolePresident || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
