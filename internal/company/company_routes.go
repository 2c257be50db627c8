package company

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
	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware(jwtSecret))
	{
		companies.POST("", middleware.RBACAuthorize(enforcer, "company", "register"), handler.Register)
		companies.GET("/me", middleware.RBACAuthorize(enforcer, "company", "read"), handler.GetOwn)
	}
}
