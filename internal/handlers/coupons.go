package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"clinic-admin-server/internal/models"
	"clinic-admin-server/internal/store"
	"clinic-admin-server/internal/utils"
)

// CouponHandler handles coupon store requests.
type CouponHandler struct {
	Store *store.Store
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(s *store.Store) *CouponHandler {
	return &CouponHandler{Store: s}
}

// CreateCouponRequest represents the request body for creating a coupon.
type CreateCouponRequest struct {
	Code         string              `json:"code" binding:"required"`
	Discount     int                 `json:"discount" binding:"required,gt=0"`
	DiscountType models.DiscountType `json:"discountType" binding:"required,oneof=percentage fixed"`
	MinAmount    int                 `json:"minAmount" binding:"min=0"`
	ValidFrom    string              `json:"validFrom" binding:"required"`
	ValidUntil   string              `json:"validUntil" binding:"required"`
	MaxUsage     int                 `json:"maxUsage" binding:"min=0"`
	IsActive     *bool               `json:"isActive"`
}

// CreateCoupon creates a discount code.
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req CreateCouponRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if !utils.IsValidDateRange(req.ValidFrom, req.ValidUntil) {
		utils.BadRequest(c, "Invalid validity window, expected YYYY-MM-DD with validFrom <= validUntil")
		return
	}
	if req.DiscountType == models.DiscountPercentage && req.Discount > 100 {
		utils.BadRequest(c, "Percentage discount cannot exceed 100")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	coupon := h.Store.AddCoupon(models.Coupon{
		Code:         req.Code,
		Discount:     req.Discount,
		DiscountType: req.DiscountType,
		MinAmount:    req.MinAmount,
		ValidFrom:    req.ValidFrom,
		ValidUntil:   req.ValidUntil,
		MaxUsage:     req.MaxUsage,
		IsActive:     isActive,
	})
	utils.Created(c, "Coupon created successfully", coupon)
}

// GetCoupons lists all coupons.
func (h *CouponHandler) GetCoupons(c *gin.Context) {
	utils.Success(c, "Coupons fetched successfully", h.Store.ListCoupons())
}

// UpdateCouponRequest represents a partial coupon edit.
type UpdateCouponRequest struct {
	Discount     *int                 `json:"discount"`
	DiscountType *models.DiscountType `json:"discountType"`
	MinAmount    *int                 `json:"minAmount"`
	ValidFrom    *string              `json:"validFrom"`
	ValidUntil   *string              `json:"validUntil"`
	MaxUsage     *int                 `json:"maxUsage"`
	IsActive     *bool                `json:"isActive"`
}

// UpdateCoupon merges partial fields into a coupon.
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	var req UpdateCouponRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.ValidFrom != nil && !utils.IsValidDate(*req.ValidFrom) {
		utils.BadRequest(c, "Invalid validFrom date format, expected YYYY-MM-DD")
		return
	}
	if req.ValidUntil != nil && !utils.IsValidDate(*req.ValidUntil) {
		utils.BadRequest(c, "Invalid validUntil date format, expected YYYY-MM-DD")
		return
	}

	err := h.Store.UpdateCoupon(c.Param("id"), store.CouponUpdate{
		Discount:     req.Discount,
		DiscountType: req.DiscountType,
		MinAmount:    req.MinAmount,
		ValidFrom:    req.ValidFrom,
		ValidUntil:   req.ValidUntil,
		MaxUsage:     req.MaxUsage,
		IsActive:     req.IsActive,
	})
	if errors.Is(err, store.ErrCouponNotFound) {
		utils.NotFound(c, "Coupon not found")
		return
	}
	utils.Success(c, "Coupon updated successfully", nil)
}

// DeleteCoupon removes a coupon.
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	if err := h.Store.DeleteCoupon(c.Param("id")); err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}
	utils.Success(c, "Coupon deleted successfully", nil)
}

// CouponAmountRequest carries a code and purchase amount.
type CouponAmountRequest struct {
	Code   string `json:"code" binding:"required"`
	Amount int    `json:"amount" binding:"required,gt=0"`
}

// ValidateCoupon checks a code against an amount without consuming a use.
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req CouponAmountRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	utils.Success(c, "Coupon validated", h.Store.ValidateCoupon(req.Code, req.Amount))
}

// RedeemCoupon validates a code and consumes one use on success.
func (h *CouponHandler) RedeemCoupon(c *gin.Context) {
	var req CouponAmountRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	res, err := h.Store.RedeemCoupon(req.Code, req.Amount)
	if err != nil {
		utils.BadRequest(c, "Coupon is not valid for this amount")
		return
	}
	utils.Success(c, "Coupon redeemed successfully", res)
}
