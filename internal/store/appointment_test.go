package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-admin-server/internal/models"
)

func TestAddAppointmentDefaultsAndSnapshots(t *testing.T) {
	s := newTestStore(t, nil)
	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})

	a := s.AddAppointment(models.Appointment{
		PatientID: p.ID,
		ServiceID: "iv-basic",
		Date:      testDate,
		Time:      "10:00",
		Price:     56000,
	})

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, models.StatusPending, a.Status)
	assert.Equal(t, models.PaymentPending, a.PaymentStatus)
	assert.Equal(t, models.PackageSingle, a.PackageType)
	assert.Equal(t, "Kim Jiyoung", a.PatientName)
	assert.Equal(t, "010-1234-5678", a.Phone)
	assert.Equal(t, "Basic Nutrient IV", a.ServiceName)
	assert.Equal(t, 60, a.DurationMinutes)
}

func TestAppointmentSnapshotSurvivesPatientRename(t *testing.T) {
	s := newTestStore(t, nil)
	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})
	a := s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: testDate, Time: "10:00", Price: 56000})

	name := "Kim Jiyeon"
	require.NoError(t, s.UpdatePatient(p.ID, PatientUpdate{Name: &name}))

	got, err := s.GetAppointment(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kim Jiyoung", got.PatientName, "display snapshot keeps its historical value")
}

func TestConfirmTransition(t *testing.T) {
	s := newTestStore(t, nil)
	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})
	a := s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: testDate, Time: "10:00", Price: 56000})

	confirmed := models.StatusConfirmed
	require.NoError(t, s.UpdateAppointment(a.ID, AppointmentUpdate{Status: &confirmed}))

	got, err := s.GetAppointment(a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got.Status)

	// confirmed -> confirmed is not a defined transition
	assert.Error(t, s.UpdateAppointment(a.ID, AppointmentUpdate{Status: &confirmed}))
}

func TestCompleteAppointmentSettlesEverything(t *testing.T) {
	s := newTestStore(t, nil)
	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})
	a := s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: testDate, Time: "10:00", Price: 56000})

	require.NoError(t, s.CompleteAppointment(a.ID))

	got, err := s.GetAppointment(a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, models.PaymentPaid, got.PaymentStatus)

	patient, err := s.GetPatient(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, patient.TotalVisits)
	assert.Equal(t, 56000, patient.TotalSpent)
	assert.Equal(t, testDate, patient.LastVisitDate)

	rec, ok := s.GetRevenueByDate(testDate)
	require.True(t, ok)
	assert.Equal(t, 56000, rec.IVRevenue)
	assert.Equal(t, 56000, rec.TotalRevenue)
	require.Len(t, rec.ServiceDetails, 1)
	assert.Equal(t, "iv-basic", rec.ServiceDetails[0].ServiceID)

	daily := s.GetDailyServices(testDate)
	require.Len(t, daily, 1)
	assert.Equal(t, 1, daily[0].Count)
}

func TestCompleteAppointmentEndoscopyBucket(t *testing.T) {
	s := newTestStore(t, nil)
	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})
	a := s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "endo-gastro", Date: testDate, Time: "09:00", Price: 150000})

	require.NoError(t, s.CompleteAppointment(a.ID))

	rec, ok := s.GetRevenueByDate(testDate)
	require.True(t, ok)
	assert.Equal(t, 150000, rec.EndoscopyRevenue)
	assert.Zero(t, rec.IVRevenue)
	assert.Equal(t, 150000, rec.TotalRevenue)
}

func TestCompleteAppointmentRejectsDoubleCompletion(t *testing.T) {
	s := newTestStore(t, nil)
	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})
	a := s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: testDate, Time: "10:00", Price: 56000})

	require.NoError(t, s.CompleteAppointment(a.ID))
	assert.ErrorIs(t, s.CompleteAppointment(a.ID), ErrAlreadyFinal)

	// Nothing was double-counted by the rejected second call.
	patient, err := s.GetPatient(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, patient.TotalVisits)
	assert.Equal(t, 56000, patient.TotalSpent)

	rec, _ := s.GetRevenueByDate(testDate)
	assert.Equal(t, 56000, rec.TotalRevenue)
}

func TestCancelAppointmentHasNoSideEffects(t *testing.T) {
	s := newTestStore(t, nil)
	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})
	a := s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: testDate, Time: "10:00", Price: 56000})

	require.NoError(t, s.CancelAppointment(a.ID))

	got, err := s.GetAppointment(a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)

	patient, err := s.GetPatient(p.ID)
	require.NoError(t, err)
	assert.Zero(t, patient.TotalVisits)
	assert.Zero(t, patient.TotalSpent)

	_, ok := s.GetRevenueByDate(testDate)
	assert.False(t, ok, "a cancelled visit never happened")

	assert.ErrorIs(t, s.CompleteAppointment(a.ID), ErrAlreadyFinal, "no transition out of cancelled")
}

func TestTerminalAppointmentOnlyAcceptsNotes(t *testing.T) {
	s := newTestStore(t, nil)
	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})
	a := s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: testDate, Time: "10:00", Price: 56000})
	require.NoError(t, s.CompleteAppointment(a.ID))

	newDate := "2024-06-20"
	assert.ErrorIs(t, s.UpdateAppointment(a.ID, AppointmentUpdate{Date: &newDate}), ErrAlreadyFinal)

	notes := "patient asked for a receipt"
	require.NoError(t, s.UpdateAppointment(a.ID, AppointmentUpdate{Notes: &notes}))

	got, _ := s.GetAppointment(a.ID)
	assert.Equal(t, notes, got.Notes)
	assert.Equal(t, testDate, got.Date)
}

func TestPackageVisitCompletion(t *testing.T) {
	s := newTestStore(t, nil)
	p := s.AddPatient(models.Patient{
		Name:  "Kim Jiyoung",
		Phone: "010-1234-5678",
		Packages: []models.PackageCredit{
			{ServiceID: "iv-basic", TotalCount: 4, RemainingCount: 4, PurchaseDate: "2024-06-01"},
		},
	})

	// Booked against the package: price 0, already paid.
	a := s.AddAppointment(models.Appointment{
		PatientID:     p.ID,
		ServiceID:     "iv-basic",
		Date:          testDate,
		Time:          "10:00",
		Price:         0,
		PackageType:   models.Package4Times,
		PaymentStatus: models.PaymentPaid,
	})

	require.NoError(t, s.CompleteAppointment(a.ID))

	patient, err := s.GetPatient(p.ID)
	require.NoError(t, err)
	require.Len(t, patient.Packages, 1)
	assert.Equal(t, 3, patient.Packages[0].RemainingCount)
	assert.Equal(t, 1, patient.TotalVisits)
	assert.Zero(t, patient.TotalSpent, "package visits add visit count, not spend")

	rec, ok := s.GetRevenueByDate(testDate)
	require.True(t, ok)
	assert.Zero(t, rec.TotalRevenue, "package-funded visits contribute zero revenue")
}

func TestPackageCreditInvariantUnderRepeatedCompletions(t *testing.T) {
	s := newTestStore(t, nil)
	p := s.AddPatient(models.Patient{
		Name:  "Kim Jiyoung",
		Phone: "010-1234-5678",
		Packages: []models.PackageCredit{
			{ServiceID: "iv-basic", TotalCount: 2, RemainingCount: 2, PurchaseDate: "2024-06-01"},
		},
	})

	// Three package completions against a 2-credit bundle: the credit
	// bottoms out at zero and never goes negative.
	for i := 0; i < 3; i++ {
		a := s.AddAppointment(models.Appointment{
			PatientID:     p.ID,
			ServiceID:     "iv-basic",
			Date:          testDate,
			Time:          "10:00",
			Price:         0,
			PackageType:   models.Package4Times,
			PaymentStatus: models.PaymentPaid,
		})
		require.NoError(t, s.CompleteAppointment(a.ID))
	}

	patient, err := s.GetPatient(p.ID)
	require.NoError(t, err)
	cr := patient.Packages[0]
	assert.GreaterOrEqual(t, cr.RemainingCount, 0)
	assert.LessOrEqual(t, cr.RemainingCount, cr.TotalCount)
	assert.Zero(t, cr.RemainingCount)
	assert.Equal(t, 3, patient.TotalVisits)
}

func TestCompleteAppointmentFiresThreeMirrorWrites(t *testing.T) {
	m := &mockMirror{}
	s := newTestStore(t, m)
	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})
	a := s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: testDate, Time: "10:00", Price: 56000})

	require.NoError(t, s.CompleteAppointment(a.ID))

	// add patient + completion update = 2 patient writes, booking +
	// completion = 2 appointment writes, 1 revenue write.
	assert.Eventually(t, func() bool {
		return m.patientCalls() == 2 && m.appointmentCalls() == 2 && m.revenueCalls() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestMirrorFailureNeverSurfaces(t *testing.T) {
	m := &mockMirror{
		UpsertAppointmentFunc: func(ctx context.Context, a models.Appointment) error {
			return errors.New("remote down")
		},
		UpsertPatientFunc: func(ctx context.Context, p models.Patient) error {
			return errors.New("remote down")
		},
		UpsertRevenueFunc: func(ctx context.Context, r models.Revenue) error {
			return errors.New("remote down")
		},
	}
	s := newTestStore(t, m)
	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})
	a := s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: testDate, Time: "10:00", Price: 56000})

	// Every mirror write fails; the local operations still succeed and
	// local state stays internally consistent.
	require.NoError(t, s.CompleteAppointment(a.ID))

	patient, err := s.GetPatient(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, patient.TotalVisits)
	assert.Eventually(t, func() bool { return m.revenueCalls() == 1 }, time.Second, 10*time.Millisecond)
}

func TestGetAppointmentsByDateIncludesCancelled(t *testing.T) {
	s := newTestStore(t, nil)
	p := s.AddPatient(models.Patient{Name: "Kim Jiyoung", Phone: "010-1234-5678"})
	a1 := s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: testDate, Time: "10:00", Price: 56000})
	s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: testDate, Time: "11:00", Price: 56000})
	s.AddAppointment(models.Appointment{PatientID: p.ID, ServiceID: "iv-basic", Date: "2024-06-16", Time: "10:00", Price: 56000})

	require.NoError(t, s.CancelAppointment(a1.ID))

	byDate := s.GetAppointmentsByDate(testDate)
	assert.Len(t, byDate, 2, "the date query itself keeps cancelled rows")
	assert.Len(t, ActiveOnly(byDate), 1)

	assert.Len(t, s.GetTodayAppointments(), 2)
}
