package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-admin-server/internal/models"
	"clinic-admin-server/internal/store"
	"clinic-admin-server/internal/utils"
)

// DiscountRateHandler manages the named reception discount percentages.
type DiscountRateHandler struct {
	Store *store.Store
}

// NewDiscountRateHandler creates a new DiscountRateHandler.
func NewDiscountRateHandler(s *store.Store) *DiscountRateHandler {
	return &DiscountRateHandler{Store: s}
}

// DiscountRateRequest represents the request body for a discount rate.
type DiscountRateRequest struct {
	Name     string `json:"name" binding:"required"`
	Rate     int    `json:"rate" binding:"required,gt=0,lte=100"`
	IsActive *bool  `json:"isActive"`
}

// CreateDiscountRate creates a named percentage.
func (h *DiscountRateHandler) CreateDiscountRate(c *gin.Context) {
	var req DiscountRateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	rate := h.Store.AddDiscountRate(models.DiscountRate{
		Name:     req.Name,
		Rate:     req.Rate,
		IsActive: isActive,
	})
	utils.Created(c, "Discount rate created successfully", rate)
}

// GetDiscountRates lists all rates.
func (h *DiscountRateHandler) GetDiscountRates(c *gin.Context) {
	utils.Success(c, "Discount rates fetched successfully", h.Store.ListDiscountRates())
}

// UpdateDiscountRate replaces a rate's fields.
func (h *DiscountRateHandler) UpdateDiscountRate(c *gin.Context) {
	var req DiscountRateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	if err := h.Store.UpdateDiscountRate(c.Param("id"), req.Name, req.Rate, isActive); err != nil {
		utils.NotFound(c, "Discount rate not found")
		return
	}
	utils.Success(c, "Discount rate updated successfully", nil)
}

// DeleteDiscountRate removes a rate.
func (h *DiscountRateHandler) DeleteDiscountRate(c *gin.Context) {
	if err := h.Store.DeleteDiscountRate(c.Param("id")); err != nil {
		utils.NotFound(c, "Discount rate not found")
		return
	}
	utils.Success(c, "Discount rate deleted successfully", nil)
}
