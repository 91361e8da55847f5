package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clinic-admin-server/internal/models"
)

func testCatalog() *Catalog {
	return NewCatalog([]models.Service{
		{ID: "iv-basic", Name: "Basic Nutrient IV", Category: models.CategoryIV, BasePrice: 56000, Package4Price: 201600, Package8Price: 380800, IsActive: true},
		{ID: "iv-detox", Name: "Detox Chelation IV", Category: models.CategoryIV, BasePrice: 120000, IsActive: true},
	})
}

func TestPriceSingleEqualsBasePrice(t *testing.T) {
	c := testCatalog()
	for _, svc := range c.List() {
		assert.Equal(t, svc.BasePrice, c.Price(svc.ID, models.PackageSingle))
	}
}

func TestPriceBundleIsFlatNotMultiple(t *testing.T) {
	c := testCatalog()
	assert.Equal(t, 201600, c.Price("iv-basic", models.Package4Times), "4-session bundle is a flat price, not 4x base")
	assert.NotEqual(t, 4*56000, c.Price("iv-basic", models.Package4Times))
	assert.Equal(t, 380800, c.Price("iv-basic", models.Package8Times))
}

func TestPriceBundleFallsBackToBase(t *testing.T) {
	c := testCatalog()
	assert.Equal(t, 120000, c.Price("iv-detox", models.Package4Times))
	assert.Equal(t, 120000, c.Price("iv-detox", models.Package8Times))
}

func TestPriceUnknownServiceIsZero(t *testing.T) {
	c := testCatalog()
	assert.Equal(t, 0, c.Price("no-such-service", models.PackageSingle))
}

func TestAddOnSurchargesAreAdditiveAndOrderIndependent(t *testing.T) {
	c := testCatalog()
	base := c.Price("iv-basic", models.PackageSingle)

	all := []models.AddOn{models.AddOnGlutathione, models.AddOnVitaminD, models.AddOnZinc, models.AddOnCarnitine}
	sum := 0
	for _, a := range all {
		sum += AddOnSurcharge(a)
		assert.Equal(t, base+AddOnSurcharge(a), c.Price("iv-basic", models.PackageSingle, a))
	}

	assert.Equal(t, base+sum, c.Price("iv-basic", models.PackageSingle, all...))

	reversed := []models.AddOn{models.AddOnCarnitine, models.AddOnZinc, models.AddOnVitaminD, models.AddOnGlutathione}
	assert.Equal(t,
		c.Price("iv-basic", models.PackageSingle, all...),
		c.Price("iv-basic", models.PackageSingle, reversed...))
}

func TestApplyDiscountRate(t *testing.T) {
	final, discount := ApplyDiscountRate(100000, 10)
	assert.Equal(t, 90000, final)
	assert.Equal(t, 10000, discount)

	final, discount = ApplyDiscountRate(56000, 15)
	assert.Equal(t, 47600, final)
	assert.Equal(t, 8400, discount)

	final, discount = ApplyDiscountRate(56000, 0)
	assert.Equal(t, 56000, final)
	assert.Equal(t, 0, discount)
}
