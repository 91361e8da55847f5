package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"clinic-admin-server/internal/models"
	"clinic-admin-server/internal/pricing"
	"clinic-admin-server/internal/store"
	"clinic-admin-server/internal/utils"
)

// AppointmentHandler handles appointment ledger requests.
type AppointmentHandler struct {
	Store *store.Store
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(s *store.Store) *AppointmentHandler {
	return &AppointmentHandler{Store: s}
}

// CreateAppointmentRequest represents the request body for booking.
type CreateAppointmentRequest struct {
	PatientID      string             `json:"patientId" binding:"required,uuid"`
	ServiceID      string             `json:"serviceId" binding:"required"`
	Date           string             `json:"date" binding:"required"`
	Time           string             `json:"time" binding:"required"`
	PackageType    models.PackageType `json:"packageType"`
	AddOns         []models.AddOn     `json:"addOns"`
	DiscountRateID string             `json:"discountRateId"`
	Notes          string             `json:"notes"`
}

// CreateAppointment books a new appointment. The price is computed and
// snapshotted at booking time. When the booking runs against a prepaid
// package credit the visit is priced at zero and marked paid up front;
// the credit itself is consumed later, on completion.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if !utils.IsValidDate(req.Date) {
		utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	if !utils.IsValidTime(req.Time) {
		utils.BadRequest(c, "Invalid time format, expected HH:MM")
		return
	}
	if req.PackageType == "" {
		req.PackageType = models.PackageSingle
	}

	patient, err := h.Store.GetPatient(req.PatientID)
	if err != nil {
		utils.NotFound(c, "Patient not found")
		return
	}
	if _, ok := h.Store.Catalog().Get(req.ServiceID); !ok {
		utils.NotFound(c, "Service not found")
		return
	}

	price := h.Store.Catalog().Price(req.ServiceID, req.PackageType, req.AddOns...)
	paymentStatus := models.PaymentPending

	if req.DiscountRateID != "" {
		if rate, ok := h.Store.GetDiscountRate(req.DiscountRateID); ok && rate.IsActive {
			price, _ = pricing.ApplyDiscountRate(price, rate.Rate)
		}
	}

	// Package bookings against an existing credit are settled at booking
	// time: the sessions were already paid for with the bundle purchase.
	if req.PackageType != models.PackageSingle && h.Store.HasPackageCredit(req.PatientID, req.ServiceID) {
		price = 0
		paymentStatus = models.PaymentPaid
	}

	appointment := h.Store.AddAppointment(models.Appointment{
		PatientID:     req.PatientID,
		ServiceID:     req.ServiceID,
		PatientName:   patient.Name,
		Phone:         patient.Phone,
		Date:          req.Date,
		Time:          req.Time,
		Price:         price,
		PackageType:   req.PackageType,
		AddOns:        req.AddOns,
		PaymentStatus: paymentStatus,
		Notes:         req.Notes,
	})
	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointments lists appointments, optionally filtered by ?date= and
// ?active=true (which drops cancelled rows).
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	var appointments []models.Appointment
	if date := c.Query("date"); date != "" {
		appointments = h.Store.GetAppointmentsByDate(date)
	} else {
		appointments = h.Store.ListAppointments()
	}
	if c.Query("active") == "true" {
		appointments = store.ActiveOnly(appointments)
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetTodayAppointments lists today's appointments.
func (h *AppointmentHandler) GetTodayAppointments(c *gin.Context) {
	appointments := h.Store.GetTodayAppointments()
	if c.Query("active") == "true" {
		appointments = store.ActiveOnly(appointments)
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID fetches a single appointment.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, err := h.Store.GetAppointment(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Appointment not found")
		return
	}
	utils.Success(c, "Appointment fetched successfully", appointment)
}

// UpdateAppointmentRequest represents a partial appointment edit.
type UpdateAppointmentRequest struct {
	Date          *string                   `json:"date"`
	Time          *string                   `json:"time"`
	Status        *models.AppointmentStatus `json:"status"`
	PaymentStatus *models.PaymentStatus     `json:"paymentStatus"`
	Price         *int                      `json:"price"`
	Notes         *string                   `json:"notes"`
}

// UpdateAppointment merges partial fields. Only the pending -> confirmed
// transition is allowed through here; completion and cancellation have
// their own endpoints.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req UpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.Date != nil && !utils.IsValidDate(*req.Date) {
		utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	if req.Time != nil && !utils.IsValidTime(*req.Time) {
		utils.BadRequest(c, "Invalid time format, expected HH:MM")
		return
	}

	err := h.Store.UpdateAppointment(c.Param("id"), store.AppointmentUpdate{
		Date:          req.Date,
		Time:          req.Time,
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		Price:         req.Price,
		Notes:         req.Notes,
	})
	switch {
	case errors.Is(err, store.ErrAppointmentNotFound):
		utils.NotFound(c, "Appointment not found")
	case errors.Is(err, store.ErrAlreadyFinal):
		utils.Conflict(c, "Completed or cancelled appointments only accept notes edits")
	case err != nil:
		utils.BadRequest(c, err.Error())
	default:
		utils.Success(c, "Appointment updated successfully", nil)
	}
}

// CompleteAppointment settles an appointment: revenue, patient counters
// and package credits are all updated in one step.
func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	err := h.Store.CompleteAppointment(c.Param("id"))
	switch {
	case errors.Is(err, store.ErrAppointmentNotFound):
		utils.NotFound(c, "Appointment not found")
	case errors.Is(err, store.ErrAlreadyFinal):
		utils.Conflict(c, "Appointment is already completed or cancelled")
	case err != nil:
		utils.InternalServerError(c, "Failed to complete appointment: "+err.Error())
	default:
		utils.Success(c, "Appointment completed successfully", nil)
	}
}

// CancelAppointment cancels an appointment with no revenue or patient
// counter side effects.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	err := h.Store.CancelAppointment(c.Param("id"))
	switch {
	case errors.Is(err, store.ErrAppointmentNotFound):
		utils.NotFound(c, "Appointment not found")
	case errors.Is(err, store.ErrAlreadyFinal):
		utils.Conflict(c, "Appointment is already completed or cancelled")
	case err != nil:
		utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
	default:
		utils.Success(c, "Appointment cancelled successfully", nil)
	}
}
