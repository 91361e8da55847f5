package models

// PatientStatus marks whether a patient is still seen at the clinic.
type PatientStatus string

const (
	PatientActive   PatientStatus = "active"
	PatientInactive PatientStatus = "inactive"
)

// PackageCredit is a prepaid session bundle held by a patient.
// Invariant: 0 <= RemainingCount <= TotalCount.
type PackageCredit struct {
	ServiceID      string `json:"serviceId"`
	TotalCount     int    `json:"totalCount"`
	RemainingCount int    `json:"remainingCount"`
	PurchaseDate   string `json:"purchaseDate"`
}

// Patient is a clinic patient record. The phone number doubles as the
// natural de-duplication key against the remote mirror, whose primary key
// scheme differs from the locally generated ids.
type Patient struct {
	BaseModel
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	Email            string          `json:"email,omitempty"`
	BirthDate        string          `json:"birthDate,omitempty"`
	RegistrationDate string          `json:"registrationDate"`
	LastVisitDate    string          `json:"lastVisitDate,omitempty"`
	TotalVisits      int             `json:"totalVisits"`
	TotalSpent       int             `json:"totalSpent"`
	Status           PatientStatus   `json:"status"`
	DiscountRateID   string          `json:"discountRateId,omitempty"`
	AssignedStaffID  string          `json:"assignedStaffId,omitempty"`
	Packages         []PackageCredit `json:"packages"`
}

// PatientStats summarizes a patient's history derived purely from the
// appointment ledger. TotalSpent here only counts completed appointments'
// prices and may diverge from Patient.TotalSpent, which also accrues from
// reception-flow purchases.
type PatientStats struct {
	TotalAppointments     int `json:"totalAppointments"`
	CompletedAppointments int `json:"completedAppointments"`
	TotalSpent            int `json:"totalSpent"`
	AverageSpent          int `json:"averageSpent"`
}

// DiscountRate is a named percentage applied at reception time. It is not
// structurally linked to coupons.
type DiscountRate struct {
	BaseModel
	Name     string `json:"name"`
	Rate     int    `json:"rate"`
	IsActive bool   `json:"isActive"`
}
