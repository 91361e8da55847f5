package models

// AppointmentStatus represents the status of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsTerminal reports whether no further status transition is allowed.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// PaymentStatus represents whether an appointment has been paid for.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Appointment is a scheduled clinic visit. PatientName, Phone and
// ServiceName are snapshotted at creation so the row keeps its historical
// display values even if the patient or service is later renamed. Price is
// likewise a snapshot and is never recomputed after booking.
type Appointment struct {
	BaseModel
	PatientID       string            `json:"patientId"`
	ServiceID       string            `json:"serviceId"`
	PatientName     string            `json:"patientName"`
	Phone           string            `json:"phone"`
	ServiceName     string            `json:"serviceName"`
	Date            string            `json:"date"`
	Time            string            `json:"time"`
	DurationMinutes int               `json:"durationMinutes"`
	Price           int               `json:"price"`
	Status          AppointmentStatus `json:"status"`
	AddOns          []AddOn           `json:"addOns,omitempty"`
	PackageType     PackageType       `json:"packageType"`
	PaymentStatus   PaymentStatus     `json:"paymentStatus"`
	Notes           string            `json:"notes,omitempty"`
}
