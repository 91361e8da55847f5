package models

// DiscountType selects how a coupon's discount value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon is a redeemable discount code. Codes are stored upper-cased and
// matched exactly. MaxUsage of 0 means unlimited redemptions. The validity
// window is inclusive on both ends.
type Coupon struct {
	BaseModel
	Code         string       `json:"code"`
	Discount     int          `json:"discount"`
	DiscountType DiscountType `json:"discountType"`
	MinAmount    int          `json:"minAmount,omitempty"`
	ValidFrom    string       `json:"validFrom"`
	ValidUntil   string       `json:"validUntil"`
	UsageCount   int          `json:"usageCount"`
	MaxUsage     int          `json:"maxUsage"`
	IsActive     bool         `json:"isActive"`
}

// CouponResult is the outcome of validating a coupon against an amount.
// For fixed-type coupons the discount is NOT clamped to the amount; the
// caller clamps if that matters.
type CouponResult struct {
	Valid    bool `json:"valid"`
	Discount int  `json:"discount"`
}
