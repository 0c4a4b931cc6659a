package model

// Identity is the authenticated user attached to a single request.  It is
// built from the session cookie and passed explicitly to services.
type Identity struct {
	UserID uint64
	Name   string
	Role   string
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool { return i != nil && i.Role == RoleAdmin }
