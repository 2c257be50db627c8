package holiday

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
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware(jwtSecret))
	{
		holidays.GET("", middleware.RBACAuthorize(enforcer, "holiday", "read"), handler.GetAll)
		holidays.POST("", middleware.RBACAuthorize(enforcer, "holiday", "manage"), handler.Create)
		holidays.POST("/import", middleware.RBACAuthorize(enforcer, "holiday", "manage"), handler.Import)
		holidays.DELETE("/:id", middleware.RBACAuthorize(enforcer, "holiday", "manage"), handler.Delete)
	}
}
