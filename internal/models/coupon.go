package models

import (
	"time"

	"github.com/google/uuid"
)

// Coupon is a discount code shown to residents.
type Coupon struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Discount    int       `json:"discount" db:"discount"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
