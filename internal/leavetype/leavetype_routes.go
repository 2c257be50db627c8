package leavetype

import (
	"leavesync/internal/middleware"
	"leavesync/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer rbac.Enforcer,
	jwtSecret string,
) {
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware(jwtSecret))
	{
		types.GET("", middleware.RBACAuthorize(enforcer, "leavetype", "read"), handler.List)
		types.POST("", middleware.RBACAuthorize(enforcer, "leavetype", "manage"), handler.Create)
		types.PUT("/:id/policy", middleware.RBACAuthorize(enforcer, "leavetype", "manage"), handler.SetPolicy)
	}
}
