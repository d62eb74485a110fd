package main

import (
	"github.com/gin-gonic/gin"

	"github.com/Dannesh12/urban-slot-finder/internal/di"
	"github.com/Dannesh12/urban-slot-finder/internal/middleware"
	"github.com/Dannesh12/urban-slot-finder/pkg/telemetry"
)

// newRouter registers the routes of the configured variant
func newRouter(c *di.Container) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		telemetry.TracingMiddleware(c.Config.OTel.ServiceName),
		middleware.AccessLog(c.Log),
		middleware.CORS(middleware.DefaultCORSConfig()),
	)

	// Health check endpoints
	router.GET("/health", c.HealthHandler.Health)
	router.GET("/ready", c.HealthHandler.Ready)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		limited := auth.Group("")
		if c.AuthLimiter != nil {
			limited.Use(c.AuthLimiter.Middleware())
		}
		limited.POST("/login", c.AuthHandler.Login)
		limited.POST("/register", c.AuthHandler.Register)

		auth.POST("/logout", c.AuthHandler.Logout)
		auth.GET("/session", c.AuthHandler.Session)
	}

	protected := v1.Group("")
	protected.Use(middleware.Auth(c.TokenService, c.Session))
	protected.GET("/dashboard", c.DashboardHandler.Get)

	if c.Config.IsEarning() {
		registerEarningRoutes(protected, c)
	} else {
		registerParkingRoutes(protected, c)
	}

	return router
}

func registerParkingRoutes(rg *gin.RouterGroup, c *di.Container) {
	admin := middleware.RequireAdmin()

	slots := rg.Group("/slots")
	{
		slots.GET("", c.SlotHandler.List)
		slots.GET("/:id", c.SlotHandler.Get)
		slots.POST("", admin, c.SlotHandler.Create)
		slots.PATCH("/:id/occupancy", admin, c.SlotHandler.UpdateOccupancy)
		slots.PATCH("/:id/active", admin, c.SlotHandler.SetActive)
		slots.DELETE("/:id", admin, c.SlotHandler.Delete)
	}

	bookings := rg.Group("/bookings")
	{
		bookings.GET("", c.BookingHandler.List)
		bookings.POST("", c.BookingHandler.Create)
		bookings.POST("/:id/status", c.BookingHandler.UpdateStatus)
		bookings.POST("/:id/payment", c.BookingHandler.UpdatePayment)
		bookings.DELETE("/:id", c.BookingHandler.Delete)
	}
}

func registerEarningRoutes(rg *gin.RouterGroup, c *di.Container) {
	rg.GET("/ads", c.EarningHandler.ListAds)
	rg.POST("/ads/:id/watch", c.EarningHandler.WatchAd)
	rg.POST("/activation", c.EarningHandler.Activate)

	rg.GET("/withdrawals", c.EarningHandler.ListWithdrawals)
	rg.POST("/withdrawals", c.EarningHandler.RequestWithdrawal)
	rg.POST("/withdrawals/:id/process", middleware.RequireAdmin(), c.EarningHandler.ProcessWithdrawal)

	rg.GET("/referrals", c.EarningHandler.Referrals)
	rg.GET("/referrals/qr", c.EarningHandler.ReferralQRCode)
}
