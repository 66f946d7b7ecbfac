package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-boxoffice/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	auth := middleware.Auth(authCfg)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Event endpoints (public read access)
		v1.GET("/events", handler.ListEvents)
		v1.GET("/events/:id", handler.GetEvent)
		v1.GET("/events/:id/tiers/:tier", handler.GetTier)

		// Event lifecycle (requires authentication; the service checks the
		// caller against the organizer)
		v1.POST("/events", auth, handler.CreateEvent)
		v1.POST("/events/:id/publish", auth, handler.PublishEvent)
		v1.POST("/events/:id/cancel", auth, handler.CancelEvent)
		v1.POST("/events/:id/complete", auth, handler.CompleteEvent)
		v1.POST("/events/:id/reactivate", auth, handler.ReactivateEvent)
		v1.PATCH("/events/:id/tiers/:tier/price", auth, handler.UpdateTierPrice)

		// Settlement endpoints (open; authorization is enforced by the engine,
		// ingress rate limiting by the handler)
		v1.POST("/tickets", handler.IssueTicket)
		v1.POST("/payments", handler.SettlePayment)
		v1.POST("/withdrawals", handler.Withdraw)
		v1.POST("/refunds", handler.ClaimRefund)

		// Query endpoints (public read access)
		v1.GET("/balances/:owner", handler.GetBalances)
		v1.GET("/tickets/:owner", handler.GetTicketHoldings)
		v1.GET("/receipts", handler.ListReceipts)

		// Admin endpoints (requires authentication with the admin capability)
		admin := v1.Group("/admin", auth, middleware.RequireAdmin())
		{
			admin.PUT("/limits/:currency", handler.UpdatePaymentLimits)
			admin.PUT("/events/:id/fee", handler.UpdateEventFee)
			admin.POST("/verified/:address", handler.SetVerified)
			admin.DELETE("/verified/:address", handler.RemoveVerified)
			admin.POST("/nonces/:address/invalidate", handler.InvalidateNonce)
			admin.POST("/pause", handler.Pause)
			admin.POST("/unpause", handler.Unpause)
		}
	}
}
