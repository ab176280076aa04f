package domain

import "time"

// Role is an authorization capability tag attached to a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleVIP   Role = "vip"
	RoleAdmin Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleVIP, RoleAdmin:
		return true
	}
	return false
}

// Status is the account standing of a user.
type Status string

const (
	StatusActive Status = "Active"
	StatusBanned Status = "Banned"
)

// User models a community member. Roles is a set: every user carries
// RoleUser as a baseline, admins and VIPs carry additional tags.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        []Role    `json:"roles"`
	Status       Status    `json:"status"`
	JoinDate     time.Time `json:"join_date"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool { return u.HasRole(RoleAdmin) }

// IsBanned reports whether the account is banned.
func (u *User) IsBanned() bool { return u.Status == StatusBanned }

// WithRole returns the role set with r added, without duplicates.
func WithRole(roles []Role, r Role) []Role {
	for _, have := range roles {
		if have == r {
			return roles
		}
	}
	return append(append([]Role{}, roles...), r)
}

// WithoutRole returns the role set with r removed. RoleUser is the
// baseline and is always retained.
func WithoutRole(roles []Role, r Role) []Role {
	out := make([]Role, 0, len(roles))
	for _, have := range roles {
		if have != r {
			out = append(out, have)
		}
	}
	return WithRole(out, RoleUser)
}
