package route

import (
	"github.com/amitshekhariitbhu/go-auth-admin/api/controller/controller_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewAuthRouter(
	uc domain_auth.AuthUsecase,
	secureCookie bool,
	verify gin.HandlerFunc,
	rateLimit gin.HandlerFunc,
	logger *zap.Logger,
	group *gin.RouterGroup,
) {
	ctrl := controller_auth.NewAuthController(uc, secureCookie, logger)

	group.POST("/check-email", ctrl.CheckEmail)
	group.POST("/register", ctrl.Register)
	group.POST("/login", rateLimit, ctrl.Login)
	group.POST("/forgot-password", rateLimit, ctrl.ForgotPassword)
	group.GET("/auth/verify", ctrl.Verify)

	authed := group.Group("", verify)
	{
		authed.POST("/reset-password", ctrl.ResetPassword)
		authed.POST("/update-profile", ctrl.UpdateProfile)
		authed.PUT("/delete", ctrl.DeleteAccount)
		authed.GET("/me", ctrl.Me)
		authed.POST("/logout", ctrl.Logout)
		authed.GET("/users-messages", ctrl.UsersMessages)
	}
}
