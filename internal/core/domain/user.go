package domain

const (
	RoleAdministrator = "Administrator"
	RoleBoss          = "Boss"
	RoleRegularUser   = "Regular User"
)

// User models an authenticated principal in the organizational hierarchy.
// BossID is nil for Administrators and non-nil for everyone else;
// Subordinates is the denormalized back-reference of every user whose
// BossID points here.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Role         string   `json:"role"`
	BossID       *string  `json:"bossId"`
	Subordinates []string `json:"subordinates"`
}

// IsKnownRole reports whether role is one of the three role constants.
func IsKnownRole(role string) bool {
	switch role {
	case RoleAdministrator, RoleBoss, RoleRegularUser:
		return true
	}
	return false
}

// HasSubordinate reports whether id is already a direct subordinate.
func (u *User) HasSubordinate(id string) bool {
	for _, s := range u.Subordinates {
		if s == id {
			return true
		}
	}
	return false
}

// ApplyDerivedRole recomputes the Boss/Regular User role from the subordinate
// list. Administrator is pinned at registration and never derived. Call after
// every subordinate-list mutation so the role can never drift from the list.
func (u *User) ApplyDerivedRole() {
	if u.Role == RoleAdministrator {
		return
	}
	if len(u.Subordinates) > 0 {
		u.Role = RoleBoss
	} else {
		u.Role = RoleRegularUser
	}
}

// RemoveSubordinate drops id from the subordinate list, preserving order.
func (u *User) RemoveSubordinate(id string) {
	out := u.Subordinates[:0]
	for _, s := range u.Subordinates {
		if s != id {
			out = append(out, s)
		}
	}
	u.Subordinates = out
}
