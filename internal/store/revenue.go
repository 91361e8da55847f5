package store

import (
	"context"
	"fmt"
	"strings"

	"clinic-admin-server/internal/models"
)

// AddRevenue records a daily revenue entry. When a record for the same
// date already exists the two are merged: numeric fields are summed and
// detail lines concatenated without dedup. The remote mirror upserts by
// date, so repeated mirror writes do not re-sum on the remote side.
func (s *Store) AddRevenue(rec models.Revenue) models.Revenue {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.appendRevenueLocked(rec)
	s.persist()

	s.mirrorAsync("revenue.upsert", func(ctx context.Context) error {
		return s.mirror.UpsertRevenue(ctx, merged)
	})
	return merged
}

// appendRevenueLocked inserts or merges a revenue record and returns the
// resulting row. Callers hold s.mu and persist afterwards.
func (s *Store) appendRevenueLocked(rec models.Revenue) models.Revenue {
	for i := range s.data.Revenues {
		r := &s.data.Revenues[i]
		if r.Date == rec.Date {
			r.IVRevenue += rec.IVRevenue
			r.EndoscopyRevenue += rec.EndoscopyRevenue
			r.TotalRevenue += rec.TotalRevenue
			r.ServiceDetails = append(r.ServiceDetails, rec.ServiceDetails...)
			r.UpdatedAt = s.now()
			return *r
		}
	}

	rec.ID = models.NewID()
	rec.CreatedAt = s.now()
	rec.UpdatedAt = rec.CreatedAt
	if rec.ServiceDetails == nil {
		rec.ServiceDetails = []models.ServiceDetail{}
	}
	s.data.Revenues = append(s.data.Revenues, rec)
	return rec
}

// tallyDailyServiceLocked bumps the per-day usage count for a service.
// Callers hold s.mu.
func (s *Store) tallyDailyServiceLocked(date, serviceID, serviceName string) {
	for i := range s.data.DailyServices {
		d := &s.data.DailyServices[i]
		if d.Date == date && d.ServiceID == serviceID {
			d.Count++
			d.UpdatedAt = s.now()
			return
		}
	}
	s.data.DailyServices = append(s.data.DailyServices, models.DailyService{
		BaseModel:   models.BaseModel{ID: models.NewID(), CreatedAt: s.now(), UpdatedAt: s.now()},
		Date:        date,
		ServiceID:   serviceID,
		ServiceName: serviceName,
		Count:       1,
	})
}

// GetRevenueByDate returns the recorded revenue row for a date.
func (s *Store) GetRevenueByDate(date string) (models.Revenue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.data.Revenues {
		if r.Date == date {
			return r, true
		}
	}
	return models.Revenue{}, false
}

// GetMonthlyRevenue returns all revenue rows within a calendar month.
func (s *Store) GetMonthlyRevenue(year, month int) []models.Revenue {
	prefix := fmt.Sprintf("%04d-%02d-", year, month)

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Revenue
	for _, r := range s.data.Revenues {
		if strings.HasPrefix(r.Date, prefix) {
			out = append(out, r)
		}
	}
	return out
}

// GetTotalRevenueByMonth sums the recorded totals for a calendar month.
func (s *Store) GetTotalRevenueByMonth(year, month int) int {
	total := 0
	for _, r := range s.GetMonthlyRevenue(year, month) {
		total += r.TotalRevenue
	}
	return total
}

// GetDailyServices returns the usage tallies for a date.
func (s *Store) GetDailyServices(date string) []models.DailyService {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.DailyService
	for _, d := range s.data.DailyServices {
		if d.Date == date {
			out = append(out, d)
		}
	}
	return out
}

// ReconciledTotal returns the displayed revenue total for a date. The
// recorded ledger and the completed paid appointments are two independent
// estimates of the same money; the larger of the two wins so overlapping
// entries are never summed twice.
func (s *Store) ReconciledTotal(date string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	recorded := 0
	for _, r := range s.data.Revenues {
		if r.Date == date {
			recorded = r.TotalRevenue
			break
		}
	}

	fromAppointments := 0
	for _, a := range s.data.Appointments {
		if a.Date == date && a.Status == models.StatusCompleted && a.PaymentStatus == models.PaymentPaid {
			fromAppointments += a.Price
		}
	}

	if fromAppointments > recorded {
		return fromAppointments
	}
	return recorded
}
