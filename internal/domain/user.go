package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleGuest Role = "GUEST"
	RoleHost  Role = "HOST"
	RoleAdmin Role = "ADMIN"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleGuest:
		return RoleGuest, nil
	case RoleHost:
		return RoleHost, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
	}
}

// IDPrefix is the identifier prefix for users of this role.
func (r Role) IDPrefix() string {
	switch r {
	case RoleGuest:
		return "G"
	case RoleHost:
		return "H"
	case RoleAdmin:
		return "A"
	default:
		return ""
	}
}

type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         Role
	Status       UserStatus
	CreatedAt    time.Time
}

// HasRole is nil-safe so that an anonymous caller never matches.
func (u *User) HasRole(role Role) bool {
	return u != nil && u.Role == role
}

// RequireRole checks that actor is signed in and holds one of roles.
func RequireRole(actor *User, roles ...Role) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: %s may not do this", ErrUnauthorized, actor.Role)
}
