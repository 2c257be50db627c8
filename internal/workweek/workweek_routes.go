package workweek

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
	weeks := r.Group("/workweek")
	weeks.Use(middleware.AuthMiddleware(jwtSecret))
	{
		weeks.GET("", middleware.RBACAuthorize(enforcer, "workweek", "read"), handler.Get)
		weeks.PUT("", middleware.RBACAuthorize(enforcer, "workweek", "manage"), handler.Put)
	}
}
