package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"clinic-admin-server/internal/models"
	"clinic-admin-server/internal/store"
	"clinic-admin-server/internal/utils"
)

// PatientHandler handles patient ledger requests.
type PatientHandler struct {
	Store *store.Store
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(s *store.Store) *PatientHandler {
	return &PatientHandler{Store: s}
}

// CreatePatientRequest represents the request body for registering a patient.
type CreatePatientRequest struct {
	Name             string                 `json:"name" binding:"required"`
	Phone            string                 `json:"phone" binding:"required"`
	Email            string                 `json:"email" binding:"omitempty,email"`
	BirthDate        string                 `json:"birthDate"`
	RegistrationDate string                 `json:"registrationDate"`
	DiscountRateID   string                 `json:"discountRateId"`
	AssignedStaffID  string                 `json:"assignedStaffId"`
	Packages         []models.PackageCredit `json:"packages"`
}

// CreatePatient registers a new patient.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.BirthDate != "" && !utils.IsValidDate(req.BirthDate) {
		utils.BadRequest(c, "Invalid birth date format, expected YYYY-MM-DD")
		return
	}
	for _, cr := range req.Packages {
		if cr.RemainingCount < 0 || cr.RemainingCount > cr.TotalCount {
			utils.BadRequest(c, "Package remaining count must be between 0 and total count")
			return
		}
	}

	patient := h.Store.AddPatient(models.Patient{
		Name:             req.Name,
		Phone:            req.Phone,
		Email:            req.Email,
		BirthDate:        req.BirthDate,
		RegistrationDate: req.RegistrationDate,
		DiscountRateID:   req.DiscountRateID,
		AssignedStaffID:  req.AssignedStaffID,
		Packages:         req.Packages,
	})
	utils.Created(c, "Patient registered successfully", patient)
}

// GetPatients lists all patients.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	utils.Success(c, "Patients fetched successfully", h.Store.ListPatients())
}

// GetPatientByID fetches a single patient.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patient, err := h.Store.GetPatient(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Patient not found")
		return
	}
	utils.Success(c, "Patient fetched successfully", patient)
}

// UpdatePatientRequest represents a partial patient edit.
type UpdatePatientRequest struct {
	Name            *string                 `json:"name"`
	Phone           *string                 `json:"phone"`
	Email           *string                 `json:"email"`
	BirthDate       *string                 `json:"birthDate"`
	Status          *models.PatientStatus   `json:"status"`
	DiscountRateID  *string                 `json:"discountRateId"`
	AssignedStaffID *string                 `json:"assignedStaffId"`
	Packages        *[]models.PackageCredit `json:"packages"`
}

// UpdatePatient merges partial fields into a patient record.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var req UpdatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.Status != nil && *req.Status != models.PatientActive && *req.Status != models.PatientInactive {
		utils.BadRequest(c, "Status must be active or inactive")
		return
	}
	if req.Packages != nil {
		for _, cr := range *req.Packages {
			if cr.RemainingCount < 0 || cr.RemainingCount > cr.TotalCount {
				utils.BadRequest(c, "Package remaining count must be between 0 and total count")
				return
			}
		}
	}

	err := h.Store.UpdatePatient(c.Param("id"), store.PatientUpdate{
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		BirthDate:       req.BirthDate,
		Status:          req.Status,
		DiscountRateID:  req.DiscountRateID,
		AssignedStaffID: req.AssignedStaffID,
		Packages:        req.Packages,
	})
	if errors.Is(err, store.ErrPatientNotFound) {
		utils.NotFound(c, "Patient not found")
		return
	}
	utils.Success(c, "Patient updated successfully", nil)
}

// DeletePatient removes a patient locally. The remote mirror keeps its row.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	if err := h.Store.DeletePatient(c.Param("id")); err != nil {
		utils.NotFound(c, "Patient not found")
		return
	}
	utils.Success(c, "Patient deleted successfully", nil)
}

// GetPatientAppointments lists a patient's appointments, newest first.
func (h *PatientHandler) GetPatientAppointments(c *gin.Context) {
	if _, err := h.Store.GetPatient(c.Param("id")); err != nil {
		utils.NotFound(c, "Patient not found")
		return
	}
	utils.Success(c, "Appointments fetched successfully", h.Store.GetPatientAppointments(c.Param("id")))
}

// GetPatientStats returns appointment-derived statistics for a patient.
func (h *PatientHandler) GetPatientStats(c *gin.Context) {
	if _, err := h.Store.GetPatient(c.Param("id")); err != nil {
		utils.NotFound(c, "Patient not found")
		return
	}
	utils.Success(c, "Stats fetched successfully", h.Store.GetPatientStats(c.Param("id")))
}
