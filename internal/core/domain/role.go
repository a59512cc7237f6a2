package domain

// PrincipalKind identifies which credential table a principal lives in
type PrincipalKind string

const (
	KindEmployee PrincipalKind = "EMPLOYEE"
	KindCustomer PrincipalKind = "CUSTOMER"
)

// Role is the derived authorization classification. It is computed from
// stored position/account data at login and re-derived by the role gates;
// it is never persisted.
type Role string

const (
	RoleTechnician Role = "technician"
	RoleManager    Role = "manager"
	RoleEmployee   Role = "employee"
	RoleCustomer   Role = "customer"
)

// Position names as seeded in the positions table
const (
	PositionTechnician      = "Technician"
	PositionBranchManager   = "Branch Manager"
	PositionGeneralEmployee = "General Employee"
)

// RoleFromPosition derives an employee's role from their position name.
// Any position other than Technician or Branch Manager counts as general staff.
func RoleFromPosition(positionName string) Role {
	switch positionName {
	case PositionTechnician:
		return RoleTechnician
	case PositionBranchManager:
		return RoleManager
	default:
		return RoleEmployee
	}
}

// ParseRole maps a stored role string (e.g. a token claim) back to a Role.
// Unknown values return false; callers must treat them as no role at all.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleTechnician, RoleManager, RoleEmployee, RoleCustomer:
		return Role(s), true
	}
	return "", false
}

// IsStaff reports whether the role belongs to an employee principal
func (r Role) IsStaff() bool {
	return r == RoleTechnician || r == RoleManager || r == RoleEmployee
}

func (r Role) String() string {
	return string(r)
}
