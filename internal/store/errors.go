package store

import "errors"

// Domain errors for the ledger store.
var (
	ErrPatientNotFound     = errors.New("patient not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrRateNotFound        = errors.New("discount rate not found")
	ErrAlreadyFinal        = errors.New("appointment is already completed or cancelled")
	ErrCouponInvalid       = errors.New("coupon is not valid for this amount")
)
