// Package role defines the closed set of user roles and the single
// capability table consulted by every role-gated operation. Adding or
// changing a role's permissions happens here and nowhere else.
package role

// Role is a closed enumeration. Parse rejects anything outside the set, so a
// Role value in the rest of the codebase is always one of these constants.
type Role string

const (
	Admin    Role = "admin"
	Manager  Role = "manager"
	Cashier  Role = "cashier"
	Waiter   Role = "waiter"
	Chef     Role = "chef"
	Customer Role = "customer"
)

// All lists every valid role, in no particular order of privilege.
var All = []Role{Admin, Manager, Cashier, Waiter, Chef, Customer}

// Parse converts a stored or transmitted string into a Role.
func Parse(s string) (Role, bool) {
	switch r := Role(s); r {
	case Admin, Manager, Cashier, Waiter, Chef, Customer:
		return r, true
	default:
		return "", false
	}
}

// Staff reports whether the role belongs to restaurant personnel.
func (r Role) Staff() bool { return r != Customer && r != "" }

// Capability names a role-gated action.
type Capability string

const (
	CapOrderCreate     Capability = "order:create"
	CapOrderListAll    Capability = "order:list_all"
	CapOrderTransition Capability = "order:transition"
	CapMenuWrite       Capability = "menu:write"
	CapCouponManage    Capability = "coupon:manage"
	CapReportView      Capability = "report:view"
	CapReservationList Capability = "reservation:list_all"
	CapUserManage      Capability = "user:manage"
)

// grants is the single source of truth for role permissions.
var grants = map[Capability][]Role{
	CapOrderCreate:     {Customer, Waiter, Cashier, Manager, Admin},
	CapOrderListAll:    {Cashier, Chef, Manager, Admin},
	CapOrderTransition: {Waiter, Chef, Manager, Admin},
	CapMenuWrite:       {Manager, Admin},
	CapCouponManage:    {Manager, Admin},
	CapReportView:      {Manager, Admin},
	CapReservationList: {Cashier, Waiter, Manager, Admin},
	CapUserManage:      {Admin},
}

// Can reports whether the role holds the capability.
func (r Role) Can(c Capability) bool {
	for _, allowed := range grants[c] {
		if r == allowed {
			return true
		}
	}
	return false
}

// Allowed returns the roles granted a capability, for middleware wiring.
func Allowed(c Capability) []Role {
	out := make([]Role, len(grants[c]))
	copy(out, grants[c])
	return out
}
