package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"clinic-admin-server/internal/models"
	"clinic-admin-server/internal/pricing"
)

// Compile-time checks that the mocks satisfy the store interfaces.
var (
	_ Cache  = (*memCache)(nil)
	_ Mirror = (*mockMirror)(nil)
)

// memCache is an in-memory Cache for tests.
type memCache struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{blobs: make(map[string][]byte)}
}

func (m *memCache) Load(namespace string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blobs[namespace], nil
}

func (m *memCache) Save(namespace string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[namespace] = append([]byte(nil), blob...)
	return nil
}

// mockMirror records mirror calls. Mirror writes run on background
// goroutines, so counters are read through the mutex-guarded getters
// together with assert.Eventually.
type mockMirror struct {
	mu sync.Mutex

	UpsertPatientFunc     func(ctx context.Context, p models.Patient) error
	UpsertAppointmentFunc func(ctx context.Context, a models.Appointment) error
	UpsertRevenueFunc     func(ctx context.Context, r models.Revenue) error
	UpsertCouponFunc      func(ctx context.Context, c models.Coupon) error

	patients     []models.Patient
	appointments []models.Appointment
	revenues     []models.Revenue
	coupons      []models.Coupon
}

func (m *mockMirror) UpsertPatient(ctx context.Context, p models.Patient) error {
	m.mu.Lock()
	m.patients = append(m.patients, p)
	m.mu.Unlock()
	if m.UpsertPatientFunc != nil {
		return m.UpsertPatientFunc(ctx, p)
	}
	return nil
}

func (m *mockMirror) UpsertAppointment(ctx context.Context, a models.Appointment) error {
	m.mu.Lock()
	m.appointments = append(m.appointments, a)
	m.mu.Unlock()
	if m.UpsertAppointmentFunc != nil {
		return m.UpsertAppointmentFunc(ctx, a)
	}
	return nil
}

func (m *mockMirror) UpsertRevenue(ctx context.Context, r models.Revenue) error {
	m.mu.Lock()
	m.revenues = append(m.revenues, r)
	m.mu.Unlock()
	if m.UpsertRevenueFunc != nil {
		return m.UpsertRevenueFunc(ctx, r)
	}
	return nil
}

func (m *mockMirror) UpsertCoupon(ctx context.Context, c models.Coupon) error {
	m.mu.Lock()
	m.coupons = append(m.coupons, c)
	m.mu.Unlock()
	if m.UpsertCouponFunc != nil {
		return m.UpsertCouponFunc(ctx, c)
	}
	return nil
}

func (m *mockMirror) patientCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.patients)
}

func (m *mockMirror) appointmentCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.appointments)
}

func (m *mockMirror) revenueCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.revenues)
}

func (m *mockMirror) couponCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.coupons)
}

// testDate is the fixed "today" all store tests run under.
const testDate = "2024-06-15"

func testCatalog() *pricing.Catalog {
	return pricing.NewCatalog([]models.Service{
		{ID: "iv-basic", Name: "Basic Nutrient IV", Category: models.CategoryIV, DurationMinutes: 60, BasePrice: 56000, Package4Price: 201600, Package8Price: 380800, IsActive: true},
		{ID: "iv-detox", Name: "Detox Chelation IV", Category: models.CategoryIV, DurationMinutes: 90, BasePrice: 120000, IsActive: true},
		{ID: "endo-gastro", Name: "Gastroscopy", Category: models.CategoryEndoscopy, DurationMinutes: 30, BasePrice: 150000, IsActive: true},
	})
}

func newTestStore(t *testing.T, mirror Mirror) *Store {
	t.Helper()
	s := New(newMemCache(), mirror, testCatalog(), "test", zerolog.Nop())
	s.now = func() time.Time {
		return time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	}
	return s
}
