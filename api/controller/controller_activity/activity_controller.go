package controller_activity

import (
	"errors"
	"net/http"

	"github.com/amitshekhariitbhu/go-auth-admin/api/controller"
	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ActivityController struct {
	ActivityUsecase domain_activity.ActivityUsecase
	logger          *zap.Logger
}

func NewActivityController(uc domain_activity.ActivityUsecase, logger *zap.Logger) *ActivityController {
	return &ActivityController{ActivityUsecase: uc, logger: logger.Named("ActivityController")}
}

// ListForUser 查询某个用户相关的操作日志
func (c *ActivityController) ListForUser(ctx *gin.Context) {
	req := domain_query.FromValues(ctx.Request.URL.Query(), domain_activity.LogRegistry)

	page, err := c.ActivityUsecase.ListForUser(ctx.Request.Context(), ctx.Param("id"), req)
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, page)
	case errors.Is(err, domain.ErrNotFound):
		controller.ErrorResponse(ctx, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, domain.ErrInvalidInput):
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", err.Error())
	default:
		c.logger.Error("Error fetching activity log", zap.String("target", ctx.Param("id")), zap.Error(err))
		_ = ctx.Error(err)
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", "Error fetching activity log")
	}
}
