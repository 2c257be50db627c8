package assistant

import (
	"leavesync/internal/middleware"
	"leavesync/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer rbac.Enforcer,
	jwtSecret string,
) {
	ai := r.Group("/assistant")
	ai.Use(middleware.AuthMiddleware(jwtSecret))
	// Upstream model calls are slow and metered, so drafts get a tight
	// per-user budget.
	ai.Use(middleware.RateLimitByUser(rate.Limit(0.5), 3))
	{
		ai.POST("/draft-email", middleware.RBACAuthorize(enforcer, "assistant", "draft"), handler.DraftEmail)
	}
}
