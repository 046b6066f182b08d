package domain

// Role represents the access level of an API client
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleSupplier Role = "SUPPLIER"
	RoleAdmin    Role = "ADMIN"
)

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSupplier, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanCheckout reports whether the role may create checkout sessions.
// Suppliers manage catalog listings and never buy through the API.
func (r Role) CanCheckout() bool {
	return r == RoleCustomer || r == RoleAdmin
}
