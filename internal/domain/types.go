package domain

// ID is used across domain entities.
type ID = int64

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID       `json:"userId"`
	Role   UserRole `json:"role"`
}

// IsAdmin reports whether the caller holds the admin role.
func (rc RequestContext) IsAdmin() bool { return rc.Role == RoleAdmin }

// CanActOn reports whether the caller may read records owned by userID:
// admins see everything, everyone else only their own.
func (rc RequestContext) CanActOn(userID ID) bool {
	return rc.IsAdmin() || (rc.UserID != 0 && rc.UserID == userID)
}
