package identity

// Role is the single role a user holds in the distributor organisation
type Role string

const (
	RoleSalesperson Role = "salesperson"
	RoleSupervisor  Role = "supervisor"
	RoleCEO         Role = "ceo"
)

// AllRoles lists every role
var AllRoles = []Role{RoleSalesperson, RoleSupervisor, RoleCEO}

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	switch r {
	case RoleSalesperson, RoleSupervisor, RoleCEO:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// CanManageFinance reports whether the role may record payments, create debts
// and plans, and review invoices
func (r Role) CanManageFinance() bool {
	return r == RoleSupervisor || r == RoleCEO
}

// CanDeleteInvoices reports whether the role may delete invoices
func (r Role) CanDeleteInvoices() bool {
	return r == RoleCEO
}

// IsSalesperson reports whether records must be scoped to the user's own
func (r Role) IsSalesperson() bool {
	return r == RoleSalesperson
}
