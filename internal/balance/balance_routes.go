package balance

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
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware(jwtSecret))
	{
		balances.GET("/me", middleware.RBACAuthorize(enforcer, "balance", "read"), handler.Mine)
		balances.GET("", middleware.RBACAuthorize(enforcer, "balance", "read_all"), handler.All)
		balances.PUT("/:employeeId/:leaveTypeId", middleware.RBACAuthorize(enforcer, "balance", "manage"), handler.Adjust)
	}
}
