package store

import (
	"context"

	"clinic-admin-server/internal/models"
)

// Mirror receives best-effort copies of local mutations. Implementations
// upsert against the remote store's own key scheme: patients by phone,
// appointments by (phone, date, time), revenues by date, coupons by code.
// Patient deletes are deliberately local-only and have no mirror call.
type Mirror interface {
	UpsertPatient(ctx context.Context, p models.Patient) error
	UpsertAppointment(ctx context.Context, a models.Appointment) error
	UpsertRevenue(ctx context.Context, r models.Revenue) error
	UpsertCoupon(ctx context.Context, c models.Coupon) error
}

// NoopMirror is used when no remote store is configured.
type NoopMirror struct{}

func (NoopMirror) UpsertPatient(context.Context, models.Patient) error         { return nil }
func (NoopMirror) UpsertAppointment(context.Context, models.Appointment) error { return nil }
func (NoopMirror) UpsertRevenue(context.Context, models.Revenue) error         { return nil }
func (NoopMirror) UpsertCoupon(context.Context, models.Coupon) error           { return nil }
