package models

// ServiceCategory groups catalog entries by clinic service line.
type ServiceCategory string

const (
	CategoryIV        ServiceCategory = "iv"
	CategoryEndoscopy ServiceCategory = "endoscopy"
)

// Service is an immutable catalog entry. The catalog is loaded once at
// startup and is not editable at runtime.
type Service struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        ServiceCategory `json:"category"`
	DurationMinutes int             `json:"durationMinutes"`
	BasePrice       int             `json:"basePrice"`
	Package4Price   int             `json:"package4Price,omitempty"`
	Package8Price   int             `json:"package8Price,omitempty"`
	Package10Price  int             `json:"package10Price,omitempty"`
	IsActive        bool            `json:"isActive"`
}

// PackageType selects which price tier an appointment is booked under.
type PackageType string

const (
	PackageSingle PackageType = "single"
	Package4Times PackageType = "4times"
	Package8Times PackageType = "8times"
)

// AddOn is one of the fixed injection add-ons a booking may enable.
// Each carries a flat surcharge on top of the service price.
type AddOn string

const (
	AddOnGlutathione AddOn = "glutathione"
	AddOnVitaminD    AddOn = "vitaminD"
	AddOnZinc        AddOn = "zinc"
	AddOnCarnitine   AddOn = "carnitine"
)
