package store

import (
	"context"
	"fmt"

	"clinic-admin-server/internal/models"
)

// AppointmentUpdate carries the fields of a partial appointment edit.
type AppointmentUpdate struct {
	Date          *string
	Time          *string
	Status        *models.AppointmentStatus
	PaymentStatus *models.PaymentStatus
	Price         *int
	Notes         *string
}

// AddAppointment books an appointment, assigning an id and defaulting the
// payment status to pending. PatientName, Phone and ServiceName are
// snapshotted from the current patient and catalog entries when not set by
// the caller. Package-credit bookings are priced at booking time: the
// caller passes price 0 and payment status paid for those.
func (s *Store) AddAppointment(a models.Appointment) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = models.NewID()
	a.CreatedAt = s.now()
	a.UpdatedAt = a.CreatedAt
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	if a.PaymentStatus == "" {
		a.PaymentStatus = models.PaymentPending
	}
	if a.PackageType == "" {
		a.PackageType = models.PackageSingle
	}
	if p := s.findPatient(a.PatientID); p != nil {
		if a.PatientName == "" {
			a.PatientName = p.Name
		}
		if a.Phone == "" {
			a.Phone = p.Phone
		}
	}
	if svc, ok := s.catalog.Get(a.ServiceID); ok {
		if a.ServiceName == "" {
			a.ServiceName = svc.Name
		}
		if a.DurationMinutes == 0 {
			a.DurationMinutes = svc.DurationMinutes
		}
	}

	s.data.Appointments = append(s.data.Appointments, a)
	s.persist()

	s.mirrorAsync("appointment.upsert", func(ctx context.Context) error {
		return s.mirror.UpsertAppointment(ctx, a)
	})
	return a
}

// UpdateAppointment merges partial fields. Terminal appointments accept
// notes edits only; the remote mirror is keyed by (phone, date, time).
func (s *Store) UpdateAppointment(id string, upd AppointmentUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findAppointment(id)
	if a == nil {
		return ErrAppointmentNotFound
	}

	if a.Status.IsTerminal() {
		if upd.Date != nil || upd.Time != nil || upd.Status != nil ||
			upd.PaymentStatus != nil || upd.Price != nil {
			return ErrAlreadyFinal
		}
	}

	if upd.Status != nil {
		// Only the pending -> confirmed transition goes through here;
		// completion and cancellation have dedicated operations.
		if *upd.Status != models.StatusConfirmed || a.Status != models.StatusPending {
			return fmt.Errorf("cannot transition %s to %s via update", a.Status, *upd.Status)
		}
		a.Status = models.StatusConfirmed
	}
	if upd.Date != nil {
		a.Date = *upd.Date
	}
	if upd.Time != nil {
		a.Time = *upd.Time
	}
	if upd.PaymentStatus != nil {
		a.PaymentStatus = *upd.PaymentStatus
	}
	if upd.Price != nil {
		a.Price = *upd.Price
	}
	if upd.Notes != nil {
		a.Notes = *upd.Notes
	}
	a.UpdatedAt = s.now()
	s.persist()

	snapshot := *a
	s.mirrorAsync("appointment.upsert", func(ctx context.Context) error {
		return s.mirror.UpsertAppointment(ctx, snapshot)
	})
	return nil
}

// CompleteAppointment settles an appointment: it marks it completed and
// paid, appends its price to today's revenue, bumps the owning patient's
// visit and spend counters, and consumes one package credit when the
// booking was made under a package tier.
//
// Completion of an already completed or cancelled appointment is rejected
// so the revenue and patient counters can never be double-applied.
//
// The three remote writes this triggers (appointment, revenue, patient) are
// independent best-effort calls; partial mirror failure leaves the remote
// side inconsistent while local state stays internally consistent.
func (s *Store) CompleteAppointment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findAppointment(id)
	if a == nil {
		return ErrAppointmentNotFound
	}
	if a.Status.IsTerminal() {
		return ErrAlreadyFinal
	}

	a.Status = models.StatusCompleted
	a.PaymentStatus = models.PaymentPaid
	a.UpdatedAt = s.now()

	today := s.today()
	rec := models.Revenue{
		Date:         today,
		TotalRevenue: a.Price,
		ServiceDetails: []models.ServiceDetail{
			{ServiceID: a.ServiceID, Count: 1, Revenue: a.Price},
		},
	}
	if svc, ok := s.catalog.Get(a.ServiceID); ok && svc.Category == models.CategoryEndoscopy {
		rec.EndoscopyRevenue = a.Price
	} else {
		rec.IVRevenue = a.Price
	}
	merged := s.appendRevenueLocked(rec)
	s.tallyDailyServiceLocked(today, a.ServiceID, a.ServiceName)

	var patientCopy models.Patient
	if p := s.findPatient(a.PatientID); p != nil {
		p.LastVisitDate = today
		p.TotalVisits++
		p.TotalSpent += a.Price
		if a.PackageType != models.PackageSingle {
			for i := range p.Packages {
				cr := &p.Packages[i]
				if cr.ServiceID == a.ServiceID && cr.RemainingCount > 0 {
					cr.RemainingCount--
					break
				}
			}
		}
		p.UpdatedAt = s.now()
		patientCopy = *p
	}
	s.persist()

	apptCopy := *a
	s.mirrorAsync("appointment.upsert", func(ctx context.Context) error {
		return s.mirror.UpsertAppointment(ctx, apptCopy)
	})
	s.mirrorAsync("revenue.upsert", func(ctx context.Context) error {
		return s.mirror.UpsertRevenue(ctx, merged)
	})
	if patientCopy.ID != "" {
		s.mirrorAsync("patient.upsert", func(ctx context.Context) error {
			return s.mirror.UpsertPatient(ctx, patientCopy)
		})
	}
	return nil
}

// CancelAppointment transitions to cancelled with no side effects on
// revenue or patient counters: a cancelled visit never happened.
func (s *Store) CancelAppointment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findAppointment(id)
	if a == nil {
		return ErrAppointmentNotFound
	}
	if a.Status.IsTerminal() {
		return ErrAlreadyFinal
	}

	a.Status = models.StatusCancelled
	a.UpdatedAt = s.now()
	s.persist()

	snapshot := *a
	s.mirrorAsync("appointment.upsert", func(ctx context.Context) error {
		return s.mirror.UpsertAppointment(ctx, snapshot)
	})
	return nil
}

// GetAppointment returns a copy of the appointment record.
func (s *Store) GetAppointment(id string) (models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findAppointment(id)
	if a == nil {
		return models.Appointment{}, ErrAppointmentNotFound
	}
	return *a, nil
}

// GetAppointmentsByDate returns all appointments on a date, cancelled rows
// included. Use ActiveOnly to drop them.
func (s *Store) GetAppointmentsByDate(date string) []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Appointment
	for _, a := range s.data.Appointments {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}

// GetTodayAppointments returns all of today's appointments.
func (s *Store) GetTodayAppointments() []models.Appointment {
	return s.GetAppointmentsByDate(s.today())
}

// ListAppointments returns the full appointment ledger.
func (s *Store) ListAppointments() []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Appointment(nil), s.data.Appointments...)
}

// ActiveOnly filters cancelled rows out of an appointment list.
func ActiveOnly(appointments []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a.Status != models.StatusCancelled {
			out = append(out, a)
		}
	}
	return out
}

// HasPackageCredit reports whether the patient holds an unconsumed package
// credit for the service. The booking flow uses this to price package
// visits at zero.
func (s *Store) HasPackageCredit(patientID, serviceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPatient(patientID)
	if p == nil {
		return false
	}
	for _, cr := range p.Packages {
		if cr.ServiceID == serviceID && cr.RemainingCount > 0 {
			return true
		}
	}
	return false
}

// findAppointment returns a pointer into the backing slice. Callers hold s.mu.
func (s *Store) findAppointment(id string) *models.Appointment {
	for i := range s.data.Appointments {
		if s.data.Appointments[i].ID == id {
			return &s.data.Appointments[i]
		}
	}
	return nil
}
