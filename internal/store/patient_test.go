package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-admin-server/internal/models"
)

func TestAddPatientDefaults(t *testing.T) {
	s := newTestStore(t, nil)

	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, testDate, p.RegistrationDate)
	assert.Equal(t, models.PatientActive, p.Status)
	assert.Zero(t, p.TotalVisits)
	assert.Zero(t, p.TotalSpent)
	assert.NotNil(t, p.Packages)
	assert.Empty(t, p.Packages)
}

func TestAddPatientKeepsExplicitRegistrationDate(t *testing.T) {
	s := newTestStore(t, nil)

	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678", RegistrationDate: "2023-01-02"})
	assert.Equal(t, "2023-01-02", p.RegistrationDate)
}

func TestAddPatientMirrorsByPhone(t *testing.T) {
	m := &mockMirror{}
	s := newTestStore(t, m)

	s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})

	assert.Eventually(t, func() bool { return m.patientCalls() == 1 }, time.Second, 10*time.Millisecond)
}

func TestUpdatePatientMergesPartialFields(t *testing.T) {
	s := newTestStore(t, nil)
	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678", Email: "jy@example.com"})

	name := "Kim Jiyeon"
	status := models.PatientInactive
	require.NoError(t, s.UpdatePatient(p.ID, PatientUpdate{Name: &name, Status: &status}))

	got, err := s.GetPatient(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kim Jiyeon", got.Name)
	assert.Equal(t, models.PatientInactive, got.Status)
	assert.Equal(t, "jy@example.com", got.Email, "untouched fields keep their value")
	assert.Equal(t, "010-1234-5678", got.Phone)
}

func TestUpdatePatientNotFound(t *testing.T) {
	s := newTestStore(t, nil)
	name := "x"
	assert.ErrorIs(t, s.UpdatePatient("missing", PatientUpdate{Name: &name}), ErrPatientNotFound)
}

func TestDeletePatientIsLocalOnly(t *testing.T) {
	m := &mockMirror{}
	s := newTestStore(t, m)
	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})

	assert.Eventually(t, func() bool { return m.patientCalls() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, s.DeletePatient(p.ID))
	_, err := s.GetPatient(p.ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	// The delete triggers no mirror call: the remote row survives.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, m.patientCalls())
}

func TestGetPatientAppointmentsSortedNewestFirst(t *testing.T) {
	s := newTestStore(t, nil)
	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})

	s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: "2024-06-01", Time: "10:00", Price: 56000})
	s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: "2024-06-10", Time: "10:00", Price: 56000})
	s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: "2024-06-05", Time: "10:00", Price: 56000})

	got := s.GetPatientAppointments(p.ID)
	require.Len(t, got, 3)
	assert.Equal(t, "2024-06-10", got[0].Date)
	assert.Equal(t, "2024-06-05", got[1].Date)
	assert.Equal(t, "2024-06-01", got[2].Date)
}

func TestGetPatientStatsCountsCompletedOnly(t *testing.T) {
	s := newTestStore(t, nil)
	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})

	a1 := s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: testDate, Time: "10:00", Price: 56000})
	a2 := s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-detox", Date: testDate, Time: "11:00", Price: 120000})
	s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: testDate, Time: "12:00", Price: 56000})

	require.NoError(t, s.CompleteAppointment(a1.ID))
	require.NoError(t, s.CompleteAppointment(a2.ID))

	stats := s.GetPatientStats(p.ID)
	assert.Equal(t, 3, stats.TotalAppointments)
	assert.Equal(t, 2, stats.CompletedAppointments)
	assert.Equal(t, 176000, stats.TotalSpent)
	assert.Equal(t, 88000, stats.AverageSpent)
}
