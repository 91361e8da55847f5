package pricing

import (
	"encoding/json"
	"fmt"
	"os"

	"clinic-admin-server/internal/models"
)

// Catalog holds the clinic's offerable services. It is reference data:
// loaded once at startup, never mutated afterwards.
type Catalog struct {
	services map[string]models.Service
	order    []string
}

// NewCatalog builds a catalog from a service list. Later entries with a
// duplicate id overwrite earlier ones.
func NewCatalog(services []models.Service) *Catalog {
	c := &Catalog{services: make(map[string]models.Service, len(services))}
	for _, s := range services {
		if _, seen := c.services[s.ID]; !seen {
			c.order = append(c.order, s.ID)
		}
		c.services[s.ID] = s
	}
	return c
}

// LoadCatalog reads a JSON service list from path, falling back to the
// built-in default catalog when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return NewCatalog(DefaultServices()), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var services []models.Service
	if err := json.Unmarshal(raw, &services); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	return NewCatalog(services), nil
}

// Get looks up a service by id.
func (c *Catalog) Get(id string) (models.Service, bool) {
	s, ok := c.services[id]
	return s, ok
}

// List returns all services in catalog order.
func (c *Catalog) List() []models.Service {
	out := make([]models.Service, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.services[id])
	}
	return out
}

// DefaultServices is the built-in service catalog. Amounts are in the
// smallest conventionally displayed currency unit.
func DefaultServices() []models.Service {
	return []models.Service{
		{ID: "iv-basic", Name: "Basic Nutrient IV", Category: models.CategoryIV, DurationMinutes: 60, BasePrice: 56000, Package4Price: 201600, Package8Price: 380800, Package10Price: 448000, IsActive: true},
		{ID: "iv-vitamin", Name: "High-Dose Vitamin C IV", Category: models.CategoryIV, DurationMinutes: 60, BasePrice: 70000, Package4Price: 252000, Package8Price: 476000, IsActive: true},
		{ID: "iv-immune", Name: "Immune Booster IV", Category: models.CategoryIV, DurationMinutes: 90, BasePrice: 90000, Package4Price: 324000, Package8Price: 612000, IsActive: true},
		{ID: "iv-recovery", Name: "Fatigue Recovery IV", Category: models.CategoryIV, DurationMinutes: 60, BasePrice: 80000, Package4Price: 288000, IsActive: true},
		{ID: "iv-detox", Name: "Detox Chelation IV", Category: models.CategoryIV, DurationMinutes: 90, BasePrice: 120000, IsActive: true},
		{ID: "endo-gastro", Name: "Gastroscopy", Category: models.CategoryEndoscopy, DurationMinutes: 30, BasePrice: 150000, IsActive: true},
		{ID: "endo-colono", Name: "Colonoscopy", Category: models.CategoryEndoscopy, DurationMinutes: 60, BasePrice: 250000, IsActive: true},
	}
}
