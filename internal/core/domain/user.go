package domain

import (
	"strings"
	"time"
)

// Role is the closed set of account roles known to the system.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// ParseRole converts a raw string into a Role, reporting whether the
// literal is one of the known roles.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleManager:
		return RoleManager, true
	case RoleUser:
		return RoleUser, true
	}
	return "", false
}

// Valid reports whether the role is a member of the closed enumeration.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// User is the core record managed by the API.
// Email is unique across live users, compared case-insensitively.
// ID and CreatedAt are immutable once assigned.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns an independent copy so callers never share a record with the store.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// CredentialKind distinguishes how a principal authenticated.
type CredentialKind string

const (
	CredentialSignedToken CredentialKind = "signed-token"
	CredentialSharedKey   CredentialKind = "shared-key"
)

// Principal is the authenticated identity attached to a request.
// Derived per request from the presented credential; never persisted.
type Principal struct {
	UserID    string         `json:"userId"`
	Email     string         `json:"email"`
	Role      Role           `json:"role"`
	Kind      CredentialKind `json:"kind"`
	IssuedAt  time.Time      `json:"issuedAt,omitzero"`
	ExpiresAt time.Time      `json:"expiresAt,omitzero"`
}
