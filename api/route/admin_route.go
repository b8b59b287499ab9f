package route

import (
	"github.com/amitshekhariitbhu/go-auth-admin/api/controller/controller_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/api/controller/controller_admin"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewAdminRouter(
	uc domain_auth.AdminUsecase,
	adminAuth gin.HandlerFunc,
	logger *zap.Logger,
	group *gin.RouterGroup,
) {
	ctrl := controller_admin.NewAdminController(uc, logger)

	group.Use(adminAuth)
	{
		group.GET("/users", ctrl.ListUsers)
		group.GET("/user/:id", ctrl.GetUser)
		group.PUT("/user/edit/:id", ctrl.EditUser)
		group.PUT("/user/delete/:id", ctrl.DeleteUser)
		group.POST("/user/create", ctrl.CreateUser)
	}
}

func NewActivityRouter(
	uc domain_activity.ActivityUsecase,
	adminAuth gin.HandlerFunc,
	logger *zap.Logger,
	group *gin.RouterGroup,
) {
	ctrl := controller_activity.NewActivityController(uc, logger)

	group.GET("/:id", adminAuth, ctrl.ListForUser)
}
