package audit

import (
	"github.com/gin-gonic/gin"

	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	auditGroup := r.Group("/audit")
	auditGroup.Use(middleware.AuthMiddleware())
	{
		auditGroup.GET("", middleware.RBACAuthorize(rbacService, "audit", "read"), h.GetRecent)
	}
}
