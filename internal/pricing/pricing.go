package pricing

import (
	"math"

	"clinic-admin-server/internal/models"
)

// Flat surcharge per enabled add-on.
var addOnSurcharges = map[models.AddOn]int{
	models.AddOnGlutathione: 20000,
	models.AddOnVitaminD:    30000,
	models.AddOnZinc:        15000,
	models.AddOnCarnitine:   25000,
}

// AddOnSurcharge returns the flat surcharge for one add-on, 0 if unknown.
func AddOnSurcharge(a models.AddOn) int {
	return addOnSurcharges[a]
}

// Price computes the booking price for a service under a package tier with
// the given add-ons enabled.
//
// Package tiers are flat bundle prices, not per-visit multiples: a 4-session
// bundle price is typically less than 4x the base price. When a service has
// no price for the requested tier, the per-session base price is used.
// An unknown service id yields 0; callers are expected to have validated
// the id upstream.
func (c *Catalog) Price(serviceID string, packageType models.PackageType, addOns ...models.AddOn) int {
	svc, ok := c.Get(serviceID)
	if !ok {
		return 0
	}

	base := svc.BasePrice
	switch packageType {
	case models.Package4Times:
		if svc.Package4Price > 0 {
			base = svc.Package4Price
		}
	case models.Package8Times:
		if svc.Package8Price > 0 {
			base = svc.Package8Price
		}
	}

	surcharge := 0
	for _, a := range addOns {
		surcharge += addOnSurcharges[a]
	}
	return base + surcharge
}

// ApplyDiscountRate layers a named reception discount on top of a computed
// base price. It is a separate step from Price by design: the rate applies
// to whatever amount the calculator produced.
func ApplyDiscountRate(basePrice int, ratePercent int) (finalPrice, discount int) {
	finalPrice = int(math.Round(float64(basePrice) * (1 - float64(ratePercent)/100)))
	return finalPrice, basePrice - finalPrice
}
