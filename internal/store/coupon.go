package store

import (
	"context"
	"math"
	"strings"

	"clinic-admin-server/internal/models"
)

// CouponUpdate carries the fields of a partial coupon edit.
type CouponUpdate struct {
	Discount     *int
	DiscountType *models.DiscountType
	MinAmount    *int
	ValidFrom    *string
	ValidUntil   *string
	MaxUsage     *int
	IsActive     *bool
}

// AddCoupon creates a coupon. Codes are normalized to upper case.
func (s *Store) AddCoupon(c models.Coupon) models.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = models.NewID()
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	c.Code = strings.ToUpper(c.Code)
	c.UsageCount = 0

	s.data.Coupons = append(s.data.Coupons, c)
	s.persist()

	s.mirrorAsync("coupon.upsert", func(ctx context.Context) error {
		return s.mirror.UpsertCoupon(ctx, c)
	})
	return c
}

// UpdateCoupon merges partial fields into an existing coupon.
func (s *Store) UpdateCoupon(id string, upd CouponUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findCoupon(id)
	if c == nil {
		return ErrCouponNotFound
	}

	if upd.Discount != nil {
		c.Discount = *upd.Discount
	}
	if upd.DiscountType != nil {
		c.DiscountType = *upd.DiscountType
	}
	if upd.MinAmount != nil {
		c.MinAmount = *upd.MinAmount
	}
	if upd.ValidFrom != nil {
		c.ValidFrom = *upd.ValidFrom
	}
	if upd.ValidUntil != nil {
		c.ValidUntil = *upd.ValidUntil
	}
	if upd.MaxUsage != nil {
		c.MaxUsage = *upd.MaxUsage
	}
	if upd.IsActive != nil {
		c.IsActive = *upd.IsActive
	}
	c.UpdatedAt = s.now()
	s.persist()

	snapshot := *c
	s.mirrorAsync("coupon.upsert", func(ctx context.Context) error {
		return s.mirror.UpsertCoupon(ctx, snapshot)
	})
	return nil
}

// DeleteCoupon removes a coupon locally.
func (s *Store) DeleteCoupon(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Coupons {
		if s.data.Coupons[i].ID == id {
			s.data.Coupons = append(s.data.Coupons[:i], s.data.Coupons[i+1:]...)
			s.persist()
			return nil
		}
	}
	return ErrCouponNotFound
}

// ListCoupons returns all coupons.
func (s *Store) ListCoupons() []models.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Coupon(nil), s.data.Coupons...)
}

// ValidateCoupon checks a code against an amount. Validity is a
// conjunction: the coupon must be active, today must fall inside the
// inclusive validity window, usage must be under the cap (0 = unlimited)
// and the amount must reach the minimum. Validation never consumes a use;
// RedeemCoupon does.
//
// Fixed-type discounts are returned as-is, even above the amount; the
// caller clamps if that matters.
func (s *Store) ValidateCoupon(code string, amount int) models.CouponResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateCouponLocked(code, amount)
}

func (s *Store) validateCouponLocked(code string, amount int) models.CouponResult {
	code = strings.ToUpper(code)

	var c *models.Coupon
	for i := range s.data.Coupons {
		if s.data.Coupons[i].Code == code && s.data.Coupons[i].IsActive {
			c = &s.data.Coupons[i]
			break
		}
	}
	if c == nil {
		return models.CouponResult{}
	}

	today := s.today()
	if today < c.ValidFrom || today > c.ValidUntil {
		return models.CouponResult{}
	}
	if c.MaxUsage != 0 && c.UsageCount >= c.MaxUsage {
		return models.CouponResult{}
	}
	if amount < c.MinAmount {
		return models.CouponResult{}
	}

	discount := c.Discount
	if c.DiscountType == models.DiscountPercentage {
		discount = int(math.Round(float64(amount) * float64(c.Discount) / 100))
	}
	return models.CouponResult{Valid: true, Discount: discount}
}

// RedeemCoupon validates and, on success, consumes one use of the coupon.
func (s *Store) RedeemCoupon(code string, amount int) (models.CouponResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.validateCouponLocked(code, amount)
	if !res.Valid {
		return res, ErrCouponInvalid
	}

	code = strings.ToUpper(code)
	for i := range s.data.Coupons {
		if s.data.Coupons[i].Code == code {
			s.data.Coupons[i].UsageCount++
			s.data.Coupons[i].UpdatedAt = s.now()
			snapshot := s.data.Coupons[i]
			s.persist()
			s.mirrorAsync("coupon.upsert", func(ctx context.Context) error {
				return s.mirror.UpsertCoupon(ctx, snapshot)
			})
			break
		}
	}
	return res, nil
}

// findCoupon returns a pointer into the backing slice. Callers hold s.mu.
func (s *Store) findCoupon(id string) *models.Coupon {
	for i := range s.data.Coupons {
		if s.data.Coupons[i].ID == id {
			return &s.data.Coupons[i]
		}
	}
	return nil
}
