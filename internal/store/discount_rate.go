package store

import "clinic-admin-server/internal/models"

// AddDiscountRate creates a named reception discount percentage.
func (s *Store) AddDiscountRate(r models.DiscountRate) models.DiscountRate {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = models.NewID()
	r.CreatedAt = s.now()
	r.UpdatedAt = r.CreatedAt
	s.data.DiscountRates = append(s.data.DiscountRates, r)
	s.persist()
	return r
}

// UpdateDiscountRate replaces the mutable fields of a rate.
func (s *Store) UpdateDiscountRate(id string, name string, rate int, isActive bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.DiscountRates {
		if s.data.DiscountRates[i].ID == id {
			s.data.DiscountRates[i].Name = name
			s.data.DiscountRates[i].Rate = rate
			s.data.DiscountRates[i].IsActive = isActive
			s.data.DiscountRates[i].UpdatedAt = s.now()
			s.persist()
			return nil
		}
	}
	return ErrRateNotFound
}

// DeleteDiscountRate removes a rate locally.
func (s *Store) DeleteDiscountRate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.DiscountRates {
		if s.data.DiscountRates[i].ID == id {
			s.data.DiscountRates = append(s.data.DiscountRates[:i], s.data.DiscountRates[i+1:]...)
			s.persist()
			return nil
		}
	}
	return ErrRateNotFound
}

// GetDiscountRate looks up a rate by id.
func (s *Store) GetDiscountRate(id string) (models.DiscountRate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.data.DiscountRates {
		if r.ID == id {
			return r, true
		}
	}
	return models.DiscountRate{}, false
}

// ListDiscountRates returns all rates.
func (s *Store) ListDiscountRates() []models.DiscountRate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.DiscountRate(nil), s.data.DiscountRates...)
}
