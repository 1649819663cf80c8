package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-pms/controllers"
	"hotel-pms/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	rc *controllers.RoomController,
	gc *controllers.GuestController,
	bc *controllers.BookingController,
	wc *controllers.WizardController,
	tc *controllers.TimelineController,
	lc *controllers.LedgerController,
	nc *controllers.NightAuditController,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/api/auth/login", controllers.Login(jwtSecret))

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(jwtSecret))
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetAll)
			rooms.POST("", rc.Create)
			rooms.GET("/:id", rc.GetByID)
			rooms.PUT("/:id", rc.Update)
			rooms.DELETE("/:id", rc.Delete)
			rooms.PATCH("/:id/status", rc.UpdateStatus)
			rooms.GET("/:id/history", rc.History)
		}

		guests := api.Group("/guests")
		{
			guests.GET("", gc.GetAll)
			guests.POST("", gc.Create)
			guests.GET("/:id", gc.GetByID)
			guests.PUT("/:id", gc.Update)
			guests.DELETE("/:id", gc.Delete)
			guests.POST("/:id/credits", gc.AddCredits)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetAll)
			bookings.POST("", bc.Create)
			bookings.POST("/credits", bc.CreateWithCredits)
			bookings.GET("/:id", bc.GetByID)
			bookings.POST("/:id/check-in", bc.CheckIn)
			bookings.POST("/:id/check-out", bc.CheckOut)
			bookings.POST("/:id/cancel", bc.Cancel)
		}

		wizard := api.Group("/wizard")
		{
			wizard.POST("", wc.Start)
			wizard.GET("/:id", wc.Get)
			wizard.PATCH("/:id", wc.Update)
			wizard.POST("/:id/next", wc.Next)
			wizard.POST("/:id/back", wc.Back)
			wizard.POST("/:id/submit", wc.Submit)
		}

		api.GET("/timeline", tc.Grid)

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/arrivals", bc.Arrivals)
			dashboard.GET("/departures", bc.Departures)
			dashboard.GET("/occupancy", rc.OccupancySummary)
		}

		audit := api.Group("/night-audit")
		{
			audit.GET("", nc.List)
			audit.GET("/preview", nc.Preview)
			audit.POST("/run", nc.Run)
			audit.GET("/:id", nc.GetByID)
		}

		ledger := api.Group("/ledger")
		{
			ledger.GET("", lc.GetByCompany)
			ledger.POST("", lc.Post)
		}

		api.GET("/room-types", controllers.GetRoomTypes)
		api.POST("/room-types", controllers.CreateRoomType)
		api.PUT("/room-types/:id", controllers.UpdateRoomType)

		api.GET("/rate-codes", controllers.GetRateCodes)
		api.GET("/market-codes", controllers.GetMarketCodes)
		api.GET("/booking-channels", controllers.GetBookingChannels)
		api.GET("/payment-methods", controllers.GetPaymentMethods)

		api.GET("/settings", controllers.GetHotelSettings)
		api.PUT("/settings", controllers.UpdateHotelSettings)
	}

	return r
}
