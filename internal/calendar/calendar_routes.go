package calendar

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
	cal := r.Group("/calendar")
	cal.Use(middleware.AuthMiddleware(jwtSecret))
	{
		cal.GET("", middleware.RBACAuthorize(enforcer, "calendar", "read"), handler.Month)
		cal.GET("/suggestions", middleware.RBACAuthorize(enforcer, "calendar", "read"), handler.Suggestions)
	}
}
