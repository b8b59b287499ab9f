package middleware

import (
	"errors"
	"net/http"

	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID = "userID"
	ContextUser   = "user"
)

// VerifyAuth admits active users holding a valid session cookie.
func VerifyAuth(auth domain_auth.AuthUsecase, log *zap.Logger) gin.HandlerFunc {
	log = log.Named("VerifyAuth")
	return func(c *gin.Context) {
		user, ok := authenticate(c, auth, log, "Access denied (user inactive or deleted)")
		if !ok {
			return
		}
		admit(c, auth, user)
	}
}

// AdminAuth admits active admins holding a valid session cookie.
func AdminAuth(auth domain_auth.AuthUsecase, log *zap.Logger) gin.HandlerFunc {
	log = log.Named("AdminAuth")
	return func(c *gin.Context) {
		user, ok := authenticate(c, auth, log, "Admin access only")
		if !ok {
			return
		}
		if !user.IsAdmin() {
			log.Warn("Non-admin tried to access admin area", zap.String("userID", user.ID.Hex()))
			abort(c, http.StatusForbidden, "Admin access only")
			return
		}
		admit(c, auth, user)
	}
}

// UserID returns the authenticated user id, zero when the request is anonymous.
func UserID(c *gin.Context) primitive.ObjectID {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(primitive.ObjectID); ok {
			return id
		}
	}
	return primitive.NilObjectID
}

func authenticate(c *gin.Context, auth domain_auth.AuthUsecase, log *zap.Logger, forbidden string) (*domain_auth.User, bool) {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		abort(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	user, err := auth.Authenticate(c.Request.Context(), token)
	switch {
	case err == nil:
		return user, true
	case errors.Is(err, domain.ErrForbidden):
		abort(c, http.StatusForbidden, forbidden)
	case errors.Is(err, domain.ErrUnauthorized):
		abort(c, http.StatusUnauthorized, "Invalid token")
	default:
		log.Error("Authentication failed", zap.Error(err))
		_ = c.Error(err)
		abort(c, http.StatusInternalServerError, "Server error")
	}
	return nil, false
}

func admit(c *gin.Context, auth domain_auth.AuthUsecase, user *domain_auth.User) {
	c.Set(ContextUserID, user.ID)
	c.Set(ContextUser, user)
	auth.TouchPresence(c.Request.Context(), user.ID)
	c.Next()
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
