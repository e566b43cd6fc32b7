package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus tracks the lifecycle of a recorded payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRejected PaymentStatus = "rejected"
)

// Valid reports whether the status is one of the recognized values.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRejected:
		return true
	}
	return false
}

// PaymentHistory is an append-only record of a rent payment. IDs are ULIDs so
// the table stays naturally ordered by creation time.
type PaymentHistory struct {
	ID          string        `json:"id" db:"id"`
	UserID      uuid.UUID     `json:"user_id" db:"user_id"`
	ApartmentID uuid.UUID     `json:"apartment_id" db:"apartment_id"`
	AmountCents int64         `json:"amount_cents" db:"amount_cents"`
	Month       string        `json:"month,omitempty" db:"month"`
	Status      PaymentStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}
