package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-admin-server/internal/models"
	"clinic-admin-server/internal/pricing"
	"clinic-admin-server/internal/store"
	"clinic-admin-server/internal/utils"
)

// ServiceHandler serves the static catalog and the reception quote flow.
type ServiceHandler struct {
	Store *store.Store
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(s *store.Store) *ServiceHandler {
	return &ServiceHandler{Store: s}
}

// GetServices lists the service catalog.
func (h *ServiceHandler) GetServices(c *gin.Context) {
	utils.Success(c, "Services fetched successfully", h.Store.Catalog().List())
}

// QuoteRequest represents a reception-desk price quote.
type QuoteRequest struct {
	ServiceID      string             `json:"serviceId" binding:"required"`
	PackageType    models.PackageType `json:"packageType"`
	AddOns         []models.AddOn     `json:"addOns"`
	DiscountRateID string             `json:"discountRateId"`
	CouponCode     string             `json:"couponCode"`
}

// QuoteResponse is the layered price breakdown for a quote.
type QuoteResponse struct {
	BasePrice      int `json:"basePrice"`
	RateDiscount   int `json:"rateDiscount"`
	CouponDiscount int `json:"couponDiscount"`
	FinalPrice     int `json:"finalPrice"`
}

// Quote computes a price in the reception flow: catalog price first, then
// the named discount rate, then an optional coupon on the discounted
// amount. Fixed coupon discounts are not clamped; a final price below zero
// is the caller's signal to clamp.
func (h *ServiceHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.PackageType == "" {
		req.PackageType = models.PackageSingle
	}
	if _, ok := h.Store.Catalog().Get(req.ServiceID); !ok {
		utils.NotFound(c, "Service not found")
		return
	}

	resp := QuoteResponse{
		BasePrice: h.Store.Catalog().Price(req.ServiceID, req.PackageType, req.AddOns...),
	}
	resp.FinalPrice = resp.BasePrice

	if req.DiscountRateID != "" {
		rate, ok := h.Store.GetDiscountRate(req.DiscountRateID)
		if !ok {
			utils.NotFound(c, "Discount rate not found")
			return
		}
		if rate.IsActive {
			resp.FinalPrice, resp.RateDiscount = pricing.ApplyDiscountRate(resp.FinalPrice, rate.Rate)
		}
	}

	if req.CouponCode != "" {
		res := h.Store.ValidateCoupon(req.CouponCode, resp.FinalPrice)
		if res.Valid {
			resp.CouponDiscount = res.Discount
			resp.FinalPrice -= res.Discount
		}
	}

	utils.Success(c, "Quote computed successfully", resp)
}
