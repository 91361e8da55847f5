package models

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel contains common fields for all locally stored records.
type BaseModel struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewID generates a fresh record identifier.
func NewID() string {
	return uuid.New().String()
}

// DateFormat is the wire format for calendar dates ("2006-01-02").
// Ledger dates are plain date strings compared by equality, never time.Time.
const DateFormat = "2006-01-02"

// TimeFormat is the wire format for appointment times ("15:04").
const TimeFormat = "15:04"
