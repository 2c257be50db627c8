package leave

import (
	"leavesync/internal/middleware"
	"leavesync/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer rbac.Enforcer,
	jwtSecret string,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(jwtSecret))
	{
		leaves.POST("",
			middleware.RBACAuthorize(enforcer, "leave", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.GET("/me", middleware.RBACAuthorize(enforcer, "leave", "read"), handler.GetMine)
		leaves.GET("", middleware.RBACAuthorize(enforcer, "leave", "approve"), handler.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(enforcer, "leave", "read"), handler.GetById)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(enforcer, "leave", "approve"), handler.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(enforcer, "leave", "approve"), handler.Reject)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(enforcer, "leave", "cancel"), handler.Cancel)
		leaves.POST("/:id/request-proof", middleware.RBACAuthorize(enforcer, "leave", "approve"), handler.RequestProof)
		leaves.POST("/:id/proof", middleware.RBACAuthorize(enforcer, "leave", "read"), handler.ProvideProof)
	}
}
