package domain

// Role is the semantic category assigned to at most one physical column.
type Role string

const (
	RoleDate    Role = "date"
	RoleRevenue Role = "revenue"
	RoleCost    Role = "cost"
	RoleProduct Role = "product"
	RoleUnits   Role = "units"
)

// RolePrecedence fixes the order roles are resolved and reported in.
// An ambiguous column name (e.g. "Item Revenue") is therefore claimed by
// the earlier role in this list.
var RolePrecedence = []Role{RoleDate, RoleRevenue, RoleCost, RoleProduct, RoleUnits}

// RoleMapping maps each role to the physical column it claimed. Roles
// without a match are simply absent; computations degrade instead of
// failing when a role is missing.
type RoleMapping map[Role]string

func (m RoleMapping) Column(r Role) (string, bool) {
	name, ok := m[r]
	return name, ok
}

func (m RoleMapping) Has(r Role) bool {
	_, ok := m[r]
	return ok
}
