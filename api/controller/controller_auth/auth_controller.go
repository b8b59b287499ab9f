package controller_auth

import (
	"errors"
	"net/http"

	"github.com/amitshekhariitbhu/go-auth-admin/api/controller"
	"github.com/amitshekhariitbhu/go-auth-admin/api/middleware"
	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	AuthUsecase domain_auth.AuthUsecase
	// SecureCookie marks the session cookie Secure; set in production.
	SecureCookie bool
	logger       *zap.Logger
}

func NewAuthController(uc domain_auth.AuthUsecase, secureCookie bool, logger *zap.Logger) *AuthController {
	return &AuthController{AuthUsecase: uc, SecureCookie: secureCookie, logger: logger.Named("AuthController")}
}

// ============== 注册与登录 ==============

func (c *AuthController) CheckEmail(ctx *gin.Context) {
	var req domain_auth.CheckEmailRequest
	if err := ctx.ShouldBind(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", err.Error())
		return
	}

	exists, err := c.AuthUsecase.EmailExists(ctx.Request.Context(), req.Email)
	if err != nil {
		c.serverError(ctx, err, "Error checking email.")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"exists": exists})
}

func (c *AuthController) Register(ctx *gin.Context) {
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

	user, err := c.AuthUsecase.Register(ctx.Request.Context(), req, image, controller.ClientInfo(ctx))
	if err != nil {
		RegistrationError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"status": "success", "user": user})
}

// RegistrationError maps account creation failures, shared with admin creation.
func RegistrationError(ctx *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrConflict):
		controller.ErrorResponse(ctx, http.StatusConflict, "CONFLICT", "Email already exists")
	case errors.Is(err, domain.ErrUnsupportedMedia):
		controller.ErrorResponse(ctx, http.StatusBadRequest, "UNSUPPORTED_MEDIA", "Profile image must be an image file")
	default:
		logger.Error("Registration failed", zap.Error(err))
		_ = ctx.Error(err)
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
	}
}

func (c *AuthController) Login(ctx *gin.Context) {
	var req domain_auth.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", err.Error())
		return
	}

	user, token, err := c.AuthUsecase.Login(ctx.Request.Context(), req, controller.ClientInfo(ctx))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		controller.ErrorResponse(ctx, http.StatusUnauthorized, "NOT_FOUND", "User not found")
		return
	case errors.Is(err, domain.ErrInvalidCredentials):
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid credentials")
		return
	case err != nil:
		c.serverError(ctx, err, "Server error")
		return
	}

	middleware.SetSessionCookie(ctx, token, c.SecureCookie)
	ctx.JSON(http.StatusOK, user.Profile())
}

type verifyResponse struct {
	Valid bool `json:"valid"`
	domain_auth.Profile
}

// Verify reports whether the session cookie belongs to an active user. It runs
// without the auth middleware so it can answer valid:false.
func (c *AuthController) Verify(ctx *gin.Context) {
	token, _ := ctx.Cookie(middleware.SessionCookie)
	if token == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"valid": false, "message": "Unauthorized"})
		return
	}

	user, err := c.AuthUsecase.Authenticate(ctx.Request.Context(), token)
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		ctx.JSON(http.StatusUnauthorized, gin.H{"valid": false, "message": "Invalid token"})
		return
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"valid": false, "message": "User not found"})
		return
	case err != nil:
		c.logger.Error("Session verification failed", zap.Error(err))
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"valid": false, "message": "Server error"})
		return
	}

	profile := user.Profile()
	profile.Status = ""
	ctx.JSON(http.StatusOK, verifyResponse{Valid: true, Profile: profile})
}

func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.AuthUsecase.Me(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		c.notFoundOr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

// ============== 找回密码 ==============

func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req domain_auth.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", err.Error())
		return
	}

	var (
		err     error
		message string
	)
	switch req.Step {
	case domain_auth.ForgotStepSendCode:
		message = "OTP sent successfully"
		err = c.AuthUsecase.SendResetCode(ctx.Request.Context(), req.Email)
	case domain_auth.ForgotStepVerify:
		message = "OTP verified"
		err = c.AuthUsecase.VerifyResetCode(ctx.Request.Context(), req.Email, req.OTP)
	case domain_auth.ForgotStepReset:
		message = "Password reset successful"
		err = c.AuthUsecase.CompleteReset(ctx.Request.Context(), req, controller.ClientInfo(ctx))
	default:
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_STEP", "Invalid step")
		return
	}

	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, gin.H{"message": message})
	case errors.Is(err, domain.ErrNotFound):
		controller.ErrorResponse(ctx, http.StatusUnauthorized, "NOT_FOUND", "User not found")
	case errors.Is(err, domain.ErrInvalidOTP):
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_OTP", "Invalid OTP")
	case errors.Is(err, domain.ErrPasswordMismatch):
		controller.ErrorResponse(ctx, http.StatusBadRequest, "PASSWORD_MISMATCH", "Passwords do not match")
	case errors.Is(err, domain.ErrPasswordReused):
		controller.ErrorResponse(ctx, http.StatusBadRequest, "PASSWORD_REUSED", "New password must be different from the current password")
	case errors.Is(err, domain.ErrInvalidInput):
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", err.Error())
	default:
		c.serverError(ctx, err, err.Error())
	}
}

// ============== 账户管理 ==============

func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req domain_auth.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", err.Error())
		return
	}

	err := c.AuthUsecase.ResetPassword(ctx.Request.Context(), middleware.UserID(ctx), req, controller.ClientInfo(ctx))
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
	case errors.Is(err, domain.ErrPasswordMismatch):
		controller.ErrorResponse(ctx, http.StatusBadRequest, "PASSWORD_MISMATCH", "New passwords do not match")
	case errors.Is(err, domain.ErrInvalidCredentials):
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_CREDENTIALS", "Old password is incorrect")
	default:
		c.notFoundOr(ctx, err)
	}
}

func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	var req domain_auth.UpdateProfileRequest
	if err := ctx.ShouldBind(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", err.Error())
		return
	}
	image, err := controller.ProfileImage(ctx)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_IMAGE", err.Error())
		return
	}

	err = c.AuthUsecase.UpdateProfile(ctx.Request.Context(), middleware.UserID(ctx), req, image, controller.ClientInfo(ctx))
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
	case errors.Is(err, domain.ErrUnsupportedMedia):
		controller.ErrorResponse(ctx, http.StatusBadRequest, "UNSUPPORTED_MEDIA", "Profile image must be an image file")
	default:
		c.notFoundOr(ctx, err)
	}
}

func (c *AuthController) DeleteAccount(ctx *gin.Context) {
	if err := c.AuthUsecase.DeleteAccount(ctx.Request.Context(), middleware.UserID(ctx), controller.ClientInfo(ctx)); err != nil {
		c.notFoundOr(ctx, err)
		return
	}
	middleware.ClearSessionCookie(ctx, c.SecureCookie)
	ctx.JSON(http.StatusOK, gin.H{"message": "Account soft-deleted successfully"})
}

func (c *AuthController) Logout(ctx *gin.Context) {
	c.AuthUsecase.Logout(ctx.Request.Context(), middleware.UserID(ctx), controller.ClientInfo(ctx))
	middleware.ClearSessionCookie(ctx, c.SecureCookie)
	controller.MessageResponse(ctx, http.StatusOK, "Logged out")
}

func (c *AuthController) UsersMessages(ctx *gin.Context) {
	users, current, err := c.AuthUsecase.UsersWithPresence(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		c.serverError(ctx, err, "Error Find Data")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"users": users, "curUser": current})
}

// ============== 辅助方法 ==============

func (c *AuthController) notFoundOr(ctx *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		controller.ErrorResponse(ctx, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}
	c.serverError(ctx, err, "Server error")
}

func (c *AuthController) serverError(ctx *gin.Context, err error, message string) {
	c.logger.Error(message, zap.String("path", ctx.FullPath()), zap.Error(err))
	_ = ctx.Error(err)
	controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", message)
}
