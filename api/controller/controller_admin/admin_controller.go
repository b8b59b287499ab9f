package controller_admin

import (
	"errors"
	"net/http"

	"github.com/amitshekhariitbhu/go-auth-admin/api/controller"
	"github.com/amitshekhariitbhu/go-auth-admin/api/controller/controller_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/api/middleware"
	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminController struct {
	AdminUsecase domain_auth.AdminUsecase
	logger       *zap.Logger
}

func NewAdminController(uc domain_auth.AdminUsecase, logger *zap.Logger) *AdminController {
	return &AdminController{AdminUsecase: uc, logger: logger.Named("AdminController")}
}

// ListUsers 分页查询用户, 支持搜索、角色与状态过滤
func (c *AdminController) ListUsers(ctx *gin.Context) {
	req := domain_query.FromValues(ctx.Request.URL.Query(), domain_auth.UserRegistry)

	result, err := c.AdminUsecase.ListUsers(ctx.Request.Context(), req)
	if err != nil {
		c.serverError(ctx, err, "Error Find Data")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"users":       result.Items,
		"totalCount":  result.TotalCount,
		"totalUsers":  result.TotalCount,
		"totalPages":  result.TotalPages(),
		"currentPage": result.Page,
		"page":        result.Page,
		"limit":       result.Limit,
		"curUser":     middleware.UserID(ctx).Hex(),
	})
}

func (c *AdminController) GetUser(ctx *gin.Context) {
	user, err := c.AdminUsecase.GetUser(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.notFoundOr(ctx, err, "User not found")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"user": user, "message": "User Find successfully"})
}

func (c *AdminController) EditUser(ctx *gin.Context) {
	var req domain_auth.AdminUpdateUserRequest
	if err := ctx.ShouldBind(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", err.Error())
		return
	}
	image, err := controller.ProfileImage(ctx)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_IMAGE", err.Error())
		return
	}

	err = c.AdminUsecase.EditUser(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), req, image, controller.ClientInfo(ctx))
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
	case errors.Is(err, domain.ErrUnsupportedMedia):
		controller.ErrorResponse(ctx, http.StatusBadRequest, "UNSUPPORTED_MEDIA", "Profile image must be an image file")
	default:
		c.notFoundOr(ctx, err, "User not found")
	}
}

func (c *AdminController) DeleteUser(ctx *gin.Context) {
	err := c.AdminUsecase.DeleteUser(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), controller.ClientInfo(ctx))
	if err != nil {
		c.notFoundOr(ctx, err, "User not found or already deleted")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (c *AdminController) CreateUser(ctx *gin.Context) {
	var req domain_auth.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", err.Error())
		return
	}
	image, err := controller.ProfileImage(ctx)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_IMAGE", err.Error())
		return
	}

	user, err := c.AdminUsecase.CreateUser(ctx.Request.Context(), middleware.UserID(ctx), req, image, controller.ClientInfo(ctx))
	if err != nil {
		controller_auth.RegistrationError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"status": "success", "user": user})
}

func (c *AdminController) notFoundOr(ctx *gin.Context, err error, message string) {
	if errors.Is(err, domain.ErrNotFound) {
		controller.ErrorResponse(ctx, http.StatusNotFound, "NOT_FOUND", message)
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", err.Error())
		return
	}
	c.serverError(ctx, err, "Server error")
}

func (c *AdminController) serverError(ctx *gin.Context, err error, message string) {
	c.logger.Error(message, zap.String("path", ctx.FullPath()), zap.Error(err))
	_ = ctx.Error(err)
	controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", message)
}
