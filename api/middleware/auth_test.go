package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/protected", handler, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": UserID(c).Hex()})
	})
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func TestVerifyAuth(t *testing.T) {
	active := &domain_auth.User{ID: primitive.NewObjectID(), Role: domain_auth.RoleUser, Status: domain_auth.StatusActive}

	tests := []struct {
		name       string
		token      string
		authErr    error
		wantStatus int
		wantMsg    string
	}{
		{"missing cookie", "", nil, http.StatusUnauthorized, "Unauthorized"},
		{"bad token", "bad", fmt.Errorf("%w: signature", domain.ErrUnauthorized), http.StatusUnauthorized, "Invalid token"},
		{"inactive user", "stale", domain.ErrForbidden, http.StatusForbidden, "Access denied (user inactive or deleted)"},
		{"store down", "any", errors.New("timeout"), http.StatusInternalServerError, "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(mocks.AuthUsecase)
			if tt.token != "" {
				auth.On("Authenticate", mock.Anything, tt.token).Return(nil, tt.authErr).Once()
			}

			w := get(protectedRouter(VerifyAuth(auth, zap.NewNop())), tt.token)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, message(t, w))
			auth.AssertNotCalled(t, "TouchPresence", mock.Anything, mock.Anything)
		})
	}

	t.Run("active user", func(t *testing.T) {
		auth := new(mocks.AuthUsecase)
		auth.On("Authenticate", mock.Anything, "good").Return(active, nil).Once()
		auth.On("TouchPresence", mock.Anything, active.ID).Once()

		w := get(protectedRouter(VerifyAuth(auth, zap.NewNop())), "good")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), active.ID.Hex())
		auth.AssertExpectations(t)
	})
}

func TestAdminAuth(t *testing.T) {
	user := &domain_auth.User{ID: primitive.NewObjectID(), Role: domain_auth.RoleUser, Status: domain_auth.StatusActive}
	admin := &domain_auth.User{ID: primitive.NewObjectID(), Role: domain_auth.RoleAdmin, Status: domain_auth.StatusActive}

	auth := new(mocks.AuthUsecase)
	auth.On("Authenticate", mock.Anything, "user-token").Return(user, nil)
	auth.On("Authenticate", mock.Anything, "admin-token").Return(admin, nil)
	auth.On("Authenticate", mock.Anything, "gone-token").Return(nil, domain.ErrForbidden)
	auth.On("TouchPresence", mock.Anything, admin.ID)

	r := protectedRouter(AdminAuth(auth, zap.NewNop()))

	w := get(r, "user-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin access only", message(t, w))

	w = get(r, "gone-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin access only", message(t, w))

	w = get(r, "admin-token")
	assert.Equal(t, http.StatusOK, w.Code)
	auth.AssertNotCalled(t, "TouchPresence", mock.Anything, user.ID)
}

func TestSessionCookieAttributes(t *testing.T) {
	r := gin.New()
	r.GET("/set", func(c *gin.Context) { SetSessionCookie(c, "abc", true) })
	r.GET("/clear", func(c *gin.Context) { ClearSessionCookie(c, false) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, SessionCookie, c.Name)
	assert.Equal(t, "abc", c.Value)
	assert.Equal(t, 86400, c.MaxAge)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clear", nil))
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
	assert.False(t, cookies[0].Secure)
}

func TestZapLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(ZapLogger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, w.Header().Get(RequestIDHeader))
}
