package routes

import (
	"github.com/gin-gonic/gin"

	"clinic-admin-server/internal/config"
	"clinic-admin-server/internal/handlers"
	"clinic-admin-server/internal/middleware"
	"clinic-admin-server/internal/models"
	"clinic-admin-server/internal/store"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, s *store.Store, cfg *config.Config) error {
	authHandler, err := handlers.NewAuthHandler(cfg)
	if err != nil {
		return err
	}
	patientHandler := handlers.NewPatientHandler(s)
	appointmentHandler := handlers.NewAppointmentHandler(s)
	revenueHandler := handlers.NewRevenueHandler(s)
	couponHandler := handlers.NewCouponHandler(s)
	serviceHandler := handlers.NewServiceHandler(s)
	rateHandler := handlers.NewDiscountRateHandler(s)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/refresh-token", authHandler.RefreshToken)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		private.GET("/auth/profile", authHandler.GetProfile)

		patientRoutes := private.Group("/patients")
		{
			patientRoutes.POST("", patientHandler.CreatePatient)
			patientRoutes.GET("", patientHandler.GetPatients)
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
			patientRoutes.PUT("/:id", patientHandler.UpdatePatient)
			patientRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), patientHandler.DeletePatient)
			patientRoutes.GET("/:id/appointments", patientHandler.GetPatientAppointments)
			patientRoutes.GET("/:id/stats", patientHandler.GetPatientStats)
		}

		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/today", appointmentHandler.GetTodayAppointments)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.POST("/:id/complete", appointmentHandler.CompleteAppointment)
			appointmentRoutes.POST("/:id/cancel", appointmentHandler.CancelAppointment)
		}

		revenueRoutes := private.Group("/revenues")
		{
			revenueRoutes.POST("", revenueHandler.CreateRevenue)
			revenueRoutes.GET("", revenueHandler.GetRevenueByDate)
			revenueRoutes.GET("/monthly", revenueHandler.GetMonthlyRevenue)
			revenueRoutes.GET("/reconciled", revenueHandler.GetReconciledRevenue)
			revenueRoutes.GET("/daily-services", revenueHandler.GetDailyServices)
		}

		private.GET("/reports/monthly", revenueHandler.GetMonthlyReport)

		couponRoutes := private.Group("/coupons")
		{
			// Coupon management is admin-only; validation and redemption
			// stay open to reception staff.
			couponRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), couponHandler.CreateCoupon)
			couponRoutes.GET("", couponHandler.GetCoupons)
			couponRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), couponHandler.UpdateCoupon)
			couponRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), couponHandler.DeleteCoupon)
			couponRoutes.POST("/validate", couponHandler.ValidateCoupon)
			couponRoutes.POST("/redeem", couponHandler.RedeemCoupon)
		}

		private.GET("/services", serviceHandler.GetServices)
		private.POST("/services/quote", serviceHandler.Quote)

		rateRoutes := private.Group("/discount-rates")
		{
			rateRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), rateHandler.CreateDiscountRate)
			rateRoutes.GET("", rateHandler.GetDiscountRates)
			rateRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), rateHandler.UpdateDiscountRate)
			rateRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), rateHandler.DeleteDiscountRate)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	return nil
}
