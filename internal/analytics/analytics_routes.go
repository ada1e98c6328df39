package analytics

import (
	"github.com/gin-gonic/gin"

	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	analytics := r.Group("/analytics")
	analytics.Use(middleware.AuthMiddleware())
	{
		analytics.GET("/dashboard",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "analytics", "read"),
			handler.Dashboard,
		)

		analytics.GET("/forecast",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "analytics", "forecast"),
			handler.Forecast,
		)

		analytics.GET("/anomalies",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "analytics", "forecast"),
			handler.Anomalies,
		)
	}
}
