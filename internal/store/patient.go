package store

import (
	"context"
	"sort"

	"clinic-admin-server/internal/models"
)

// PatientUpdate carries the fields of a partial patient edit. Nil pointers
// leave the current value untouched.
type PatientUpdate struct {
	Name            *string
	Phone           *string
	Email           *string
	BirthDate       *string
	Status          *models.PatientStatus
	DiscountRateID  *string
	AssignedStaffID *string
	Packages        *[]models.PackageCredit
}

// AddPatient registers a patient, assigning an id and defaulting the
// registration date to today. The remote mirror upserts by phone number.
func (s *Store) AddPatient(p models.Patient) models.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = models.NewID()
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	if p.RegistrationDate == "" {
		p.RegistrationDate = s.today()
	}
	if p.Status == "" {
		p.Status = models.PatientActive
	}
	if p.Packages == nil {
		p.Packages = []models.PackageCredit{}
	}
	p.TotalVisits = 0
	p.TotalSpent = 0

	s.data.Patients = append(s.data.Patients, p)
	s.persist()

	s.mirrorAsync("patient.upsert", func(ctx context.Context) error {
		return s.mirror.UpsertPatient(ctx, p)
	})
	return p
}

// UpdatePatient merges partial fields into an existing patient.
func (s *Store) UpdatePatient(id string, upd PatientUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPatient(id)
	if p == nil {
		return ErrPatientNotFound
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Phone != nil {
		p.Phone = *upd.Phone
	}
	if upd.Email != nil {
		p.Email = *upd.Email
	}
	if upd.BirthDate != nil {
		p.BirthDate = *upd.BirthDate
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.DiscountRateID != nil {
		p.DiscountRateID = *upd.DiscountRateID
	}
	if upd.AssignedStaffID != nil {
		p.AssignedStaffID = *upd.AssignedStaffID
	}
	if upd.Packages != nil {
		p.Packages = *upd.Packages
	}
	p.UpdatedAt = s.now()
	s.persist()

	snapshot := *p
	s.mirrorAsync("patient.upsert", func(ctx context.Context) error {
		return s.mirror.UpsertPatient(ctx, snapshot)
	})
	return nil
}

// DeletePatient removes a patient locally. Deletes are local-only by
// design: the remote mirror keeps its row.
func (s *Store) DeletePatient(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Patients {
		if s.data.Patients[i].ID == id {
			s.data.Patients = append(s.data.Patients[:i], s.data.Patients[i+1:]...)
			s.persist()
			return nil
		}
	}
	return ErrPatientNotFound
}

// GetPatient returns a copy of the patient record.
func (s *Store) GetPatient(id string) (models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPatient(id)
	if p == nil {
		return models.Patient{}, ErrPatientNotFound
	}
	return *p, nil
}

// ListPatients returns all patients.
func (s *Store) ListPatients() []models.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Patient(nil), s.data.Patients...)
}

// GetPatientAppointments returns all of a patient's appointments, newest
// date first.
func (s *Store) GetPatientAppointments(patientID string) []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Appointment
	for _, a := range s.data.Appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// GetPatientStats derives appointment statistics for a patient. TotalSpent
// here only counts completed appointments' prices; it may diverge from
// Patient.TotalSpent, which also accrues from reception-flow purchases.
func (s *Store) GetPatientStats(patientID string) models.PatientStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats models.PatientStats
	for _, a := range s.data.Appointments {
		if a.PatientID != patientID {
			continue
		}
		stats.TotalAppointments++
		if a.Status == models.StatusCompleted {
			stats.CompletedAppointments++
			stats.TotalSpent += a.Price
		}
	}
	if stats.CompletedAppointments > 0 {
		stats.AverageSpent = stats.TotalSpent / stats.CompletedAppointments
	}
	return stats
}

// findPatient returns a pointer into the backing slice. Callers hold s.mu.
func (s *Store) findPatient(id string) *models.Patient {
	for i := range s.data.Patients {
		if s.data.Patients[i].ID == id {
			return &s.data.Patients[i]
		}
	}
	return nil
}
