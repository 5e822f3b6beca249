package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmvet-backend/internal/notify/delivery"
)

func SetupRoutes(r *gin.Engine, notifyHandler *delivery.NotifyHandler, authMiddleware gin.HandlerFunc) {
	// Broadcast endpoints stay at the root to match the hosted-function URLs
	// the web client already calls.
	r.POST("/notify-farmers-new-alert", notifyHandler.NotifyFarmersNewAlert)
	r.POST("/notify-vets-new-request", notifyHandler.NotifyVetsNewRequest)
	r.POST("/notify-farmer-treatment", notifyHandler.NotifyFarmerTreatment)
	r.POST("/validate-admin-code", notifyHandler.ValidateAdminCode)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// FCM routes (protected)
		fcm := api.Group("/fcm")
		fcm.Use(authMiddleware)
		{
			fcm.POST("/register", notifyHandler.RegisterToken)
		}

		// Delivery audit log (protected)
		deliveries := api.Group("/deliveries")
		deliveries.Use(authMiddleware)
		{
			deliveries.GET("", notifyHandler.RecentDeliveries)
		}
	}
}
