package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmvet-backend/internal/notify/delivery"
	"farmvet-backend/internal/notify/repository"
	"farmvet-backend/internal/notify/usecase"
)

// Handler wires the notification endpoints into a gin engine.
type Handler struct {
	notifyHandler  *delivery.NotifyHandler
	authMiddleware gin.HandlerFunc
}

// NewHandler creates a new HTTP handler. authMiddleware guards the callable
// routes; injecting it keeps the identity provider swappable in tests.
func NewHandler(notifier *usecase.Notifier, logs repository.DeliveryLogRepository, authMiddleware gin.HandlerFunc) *Handler {
	return &Handler{
		notifyHandler:  delivery.NewNotifyHandler(notifier, logs),
		authMiddleware: authMiddleware,
	}
}

// Router builds the gin engine with CORS and all routes.
func (h *Handler) Router() *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())
	SetupRoutes(r, h.notifyHandler, h.authMiddleware)
	return r
}

// Start runs the HTTP server on addr.
func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	return h.Router().Run(addr)
}

// corsMiddleware mirrors the permissive cross-origin policy of the hosted
// functions: any origin, explicit pre-flight answer with no body.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
