package routes

import (
	"net/http"

	"podbooker/handlers"
	"podbooker/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the host calendar connect flow.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := r.Group("/auth")
	{
		auth.GET("/google", hb.Auth.GoogleAuthHandler)
		auth.GET("/google/callback", hb.Auth.GoogleCallbackHandler)
	}
}

// RegisterAPIRoutes registers the guest-facing booking endpoints.
func RegisterAPIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/hosts", hb.Booking.GetHostsHandler)
		api.GET("/slots", hb.Booking.GetSlotsHandler)
		api.POST("/book", hb.Booking.BookSlotHandler)
		api.GET("/bookings", hb.Booking.GetBookingsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes wires up all endpoints. CORS is open to all origins;
// origin restriction belongs to whoever deploys the display layer.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.Default())
	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterAPIRoutes(r, hb)
}
