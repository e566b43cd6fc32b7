package models

import (
	"time"

	"github.com/google/uuid"
)

// Role restricts the authorization level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the recognized values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered resident or administrator. UID is the external
// auth identity (e.g. the identity provider's subject) and is unique.
type User struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	UID              string     `json:"uid" db:"uid"`
	Name             string     `json:"name" db:"name"`
	Email            string     `json:"email" db:"email"`
	Role             Role       `json:"role" db:"role"`
	BookingApartment *uuid.UUID `json:"booking_apartment,omitempty" db:"booking_apartment"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// Claims is the decoded payload of a session token. It carries the identity
// and role at issuance time; role staleness is bounded by the token TTL.
type Claims struct {
	UserID uuid.UUID `json:"id"`
	UID    string    `json:"uid"`
	Role   Role      `json:"role"`
}
