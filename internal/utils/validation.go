package utils

import (
	"time"

	"clinic-admin-server/internal/models"
)

// IsValidDate reports whether s is a well-formed date string.
func IsValidDate(s string) bool {
	_, err := time.Parse(models.DateFormat, s)
	return err == nil
}

// IsValidTime reports whether s is a well-formed appointment time.
func IsValidTime(s string) bool {
	_, err := time.Parse(models.TimeFormat, s)
	return err == nil
}

// IsValidDateRange reports whether from..until is a well-formed inclusive
// date range.
func IsValidDateRange(from, until string) bool {
	return IsValidDate(from) && IsValidDate(until) && from <= until
}
