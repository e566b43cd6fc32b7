// Package models defines the persisted record types for the building API.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Apartment represents a rentable unit in the building.
//
// Invariant: IsBooked is true iff UserID references the user holding the
// agreement; the pair only changes together inside the booking transaction.
type Apartment struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Block         string     `json:"block" db:"block"`
	Floor         int        `json:"floor" db:"floor"`
	ApartmentNo   string     `json:"apartment_no" db:"apartment_no"`
	RentCents     int64      `json:"rent_cents" db:"rent_cents"`
	ImageURL      *string    `json:"image_url,omitempty" db:"image_url"`
	IsBooked      bool       `json:"is_booked" db:"is_booked"`
	UserID        *uuid.UUID `json:"user_id,omitempty" db:"user_id"`
	AgreementDate *time.Time `json:"agreement_date,omitempty" db:"agreement_date"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
