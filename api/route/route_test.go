package route

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amitshekhariitbhu/go-auth-admin/api/middleware"
	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type RouteSuite struct {
	suite.Suite
	auth     *mocks.AuthUsecase
	admin    *mocks.AdminUsecase
	activity *mocks.ActivityUsecase
	router   *gin.Engine
	limited  int

	adminUser *domain_auth.User
	plainUser *domain_auth.User
}

func TestRouteSuite(t *testing.T) {
	suite.Run(t, new(RouteSuite))
}

func (s *RouteSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.auth = new(mocks.AuthUsecase)
	s.admin = new(mocks.AdminUsecase)
	s.activity = new(mocks.ActivityUsecase)
	s.limited = 0

	s.adminUser = &domain_auth.User{ID: primitive.NewObjectID(), Email: "root@example.com", Role: domain_auth.RoleAdmin, Status: domain_auth.StatusActive}
	s.plainUser = &domain_auth.User{ID: primitive.NewObjectID(), Email: "alice@example.com", FirstName: "Alice", Role: domain_auth.RoleUser, Status: domain_auth.StatusActive}
	s.auth.On("Authenticate", mock.Anything, "admin-token").Return(s.adminUser, nil).Maybe()
	s.auth.On("Authenticate", mock.Anything, "user-token").Return(s.plainUser, nil).Maybe()
	s.auth.On("TouchPresence", mock.Anything, mock.Anything).Maybe()

	s.router = gin.New()
	Register(s.router, Usecases{Auth: s.auth, Admin: s.admin, Activity: s.activity}, Options{
		RateLimit: func(c *gin.Context) {
			s.limited++
			c.Next()
		},
		Logger: zap.NewNop(),
	})
}

func (s *RouteSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// ============== 用户路由 ==============

func (s *RouteSuite) TestLoginSetsSessionCookie() {
	s.auth.On("Login", mock.Anything, domain_auth.LoginRequest{Email: "alice@example.com", Password: "pw"}, mock.Anything).
		Return(s.plainUser, "jwt-value", nil).Once()

	w := s.do(http.MethodPost, "/login", "", gin.H{"email": "alice@example.com", "password": "pw"})

	s.Equal(http.StatusOK, w.Code)
	body := decode(s.T(), w)
	s.Equal(s.plainUser.ID.Hex(), body["userId"])
	s.Equal("Alice", body["firstName"])
	s.NotContains(body, "password")

	cookies := w.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Equal("jwt-value", cookies[0].Value)
	s.True(cookies[0].HttpOnly)
	s.Equal(1, s.limited)
}

func (s *RouteSuite) TestLoginErrors() {
	s.auth.On("Login", mock.Anything, domain_auth.LoginRequest{Email: "ghost@example.com", Password: "pw"}, mock.Anything).
		Return(nil, "", fmt.Errorf("login: %w", domain.ErrNotFound)).Once()
	s.auth.On("Login", mock.Anything, domain_auth.LoginRequest{Email: "alice@example.com", Password: "bad"}, mock.Anything).
		Return(nil, "", domain.ErrInvalidCredentials).Once()

	w := s.do(http.MethodPost, "/login", "", gin.H{"email": "ghost@example.com", "password": "pw"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("User not found", decode(s.T(), w)["message"])

	w = s.do(http.MethodPost, "/login", "", gin.H{"email": "alice@example.com", "password": "bad"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid credentials", decode(s.T(), w)["message"])

	w = s.do(http.MethodPost, "/login", "", gin.H{"email": "alice@example.com"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouteSuite) TestRegisterDuplicateEmail() {
	s.auth.On("Register", mock.Anything, mock.Anything, (*domain_auth.ProfileImage)(nil), mock.Anything).
		Return(nil, fmt.Errorf("email: %w", domain.ErrConflict)).Once()

	w := s.do(http.MethodPost, "/register", "", gin.H{
		"firstName": "Bob", "lastName": "Builder", "email": "bob@example.com",
		"phone": "1", "location": "Earth", "password": "secret123",
	})

	s.Equal(http.StatusConflict, w.Code)
	body := decode(s.T(), w)
	s.Equal("error", body["status"])
	s.Equal("Email already exists", body["message"])
}

func (s *RouteSuite) TestRegisterMultipartWithImage() {
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"firstName": "Bob", "lastName": "Builder", "email": "bob@example.com",
		"phone": "1", "location": "Earth", "password": "secret123",
	} {
		s.Require().NoError(mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("profileImage", "me.png")
	s.Require().NoError(err)
	_, _ = part.Write(png)
	s.Require().NoError(mw.Close())

	created := &domain_auth.User{ID: primitive.NewObjectID(), Email: "bob@example.com"}
	s.auth.On("Register", mock.Anything,
		mock.MatchedBy(func(r domain_auth.RegisterRequest) bool { return r.Email == "bob@example.com" && r.Phone == "1" }),
		mock.MatchedBy(func(img *domain_auth.ProfileImage) bool {
			return img != nil && img.Filename == "me.png" && bytes.Equal(img.Data, png)
		}),
		mock.Anything,
	).Return(created, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusCreated, w.Code)
	s.Equal("success", decode(s.T(), w)["status"])
	s.auth.AssertExpectations(s.T())
}

func (s *RouteSuite) TestVerify() {
	w := s.do(http.MethodGet, "/auth/verify", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(false, decode(s.T(), w)["valid"])

	s.auth.On("Authenticate", mock.Anything, "expired").Return(nil, domain.ErrUnauthorized).Once()
	w = s.do(http.MethodGet, "/auth/verify", "expired", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid token", decode(s.T(), w)["message"])

	w = s.do(http.MethodGet, "/auth/verify", "user-token", nil)
	s.Equal(http.StatusOK, w.Code)
	body := decode(s.T(), w)
	s.Equal(true, body["valid"])
	s.Equal(s.plainUser.ID.Hex(), body["userId"])
	s.NotContains(body, "status")
}

func (s *RouteSuite) TestForgotPasswordSteps() {
	s.auth.On("SendResetCode", mock.Anything, "alice@example.com").Return(nil).Once()
	s.auth.On("VerifyResetCode", mock.Anything, "alice@example.com", "9999").Return(domain.ErrInvalidOTP).Once()
	s.auth.On("CompleteReset", mock.Anything, mock.MatchedBy(func(r domain_auth.ForgotPasswordRequest) bool {
		return r.Step == 3 && r.OTP == "1234"
	}), mock.Anything).Return(domain.ErrPasswordReused).Once()

	w := s.do(http.MethodPost, "/forgot-password", "", gin.H{"email": "alice@example.com", "step": 1})
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OTP sent successfully", decode(s.T(), w)["message"])

	w = s.do(http.MethodPost, "/forgot-password", "", gin.H{"email": "alice@example.com", "step": 2, "otp": "9999"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid OTP", decode(s.T(), w)["message"])

	w = s.do(http.MethodPost, "/forgot-password", "", gin.H{
		"email": "alice@example.com", "step": 3, "otp": "1234", "password": "samepass1", "confirmPassword": "samepass1",
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("New password must be different from the current password", decode(s.T(), w)["message"])

	w = s.do(http.MethodPost, "/forgot-password", "", gin.H{"email": "alice@example.com", "step": 7})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid step", decode(s.T(), w)["message"])
	s.Equal(4, s.limited)
}

func (s *RouteSuite) TestProtectedRoutesRequireSession() {
	for _, path := range []string{"/me", "/users-messages"} {
		w := s.do(http.MethodGet, path, "", nil)
		s.Equal(http.StatusUnauthorized, w.Code, path)
	}
	w := s.do(http.MethodPost, "/logout", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouteSuite) TestLogoutClearsCookie() {
	s.auth.On("Logout", mock.Anything, s.plainUser.ID, mock.Anything).Once()

	w := s.do(http.MethodPost, "/logout", "user-token", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("Logged out", decode(s.T(), w)["message"])
	cookies := w.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Equal("", cookies[0].Value)
	s.auth.AssertExpectations(s.T())
}

func (s *RouteSuite) TestResetPasswordMismatch() {
	s.auth.On("ResetPassword", mock.Anything, s.plainUser.ID, mock.Anything, mock.Anything).
		Return(domain.ErrPasswordMismatch).Once()

	w := s.do(http.MethodPost, "/reset-password", "user-token", gin.H{
		"oldPassword": "old", "newPassword": "newpass99", "confirmPassword": "other",
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("New passwords do not match", decode(s.T(), w)["message"])
}

func (s *RouteSuite) TestUsersMessages() {
	seen := s.plainUser
	s.auth.On("UsersWithPresence", mock.Anything, s.plainUser.ID).Return([]domain_auth.UserPresence{
		{User: *seen, IsOnline: true},
	}, s.plainUser, nil).Once()

	w := s.do(http.MethodGet, "/users-messages", "user-token", nil)

	s.Equal(http.StatusOK, w.Code)
	body := decode(s.T(), w)
	users := body["users"].([]interface{})
	s.Require().Len(users, 1)
	s.Equal(true, users[0].(map[string]interface{})["isOnline"])
	s.Contains(body, "curUser")
}

// ============== 管理员路由 ==============

func (s *RouteSuite) TestAdminRoutesRejectPlainUsers() {
	w := s.do(http.MethodGet, "/admin/users", "user-token", nil)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("Admin access only", decode(s.T(), w)["message"])

	w = s.do(http.MethodGet, "/admin/activity/"+s.plainUser.ID.Hex(), "user-token", nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *RouteSuite) TestAdminListUsers() {
	s.admin.On("ListUsers", mock.Anything, mock.MatchedBy(func(r domain_query.QueryRequest) bool {
		return r.Page == 2 && r.Limit == 5 && r.SearchTerm == "bob" &&
			r.SortField == domain_query.DefaultSortField && r.SortOrder == domain_query.Ascending &&
			len(r.Filters) == 1 && r.Filters[0] == domain_query.Filter{Field: "role", Value: "admin"}
	})).Return(&domain_query.QueryResult[domain_auth.User]{
		Items:      []domain_auth.User{*s.adminUser},
		TotalCount: 11,
		Page:       2,
		Limit:      5,
	}, nil).Once()

	w := s.do(http.MethodGet, "/admin/users?page=2&limit=5&searchTerm=bob&filterRole=admin&filterStatus=", "admin-token", nil)

	s.Equal(http.StatusOK, w.Code)
	body := decode(s.T(), w)
	s.EqualValues(11, body["totalCount"])
	s.EqualValues(11, body["totalUsers"])
	s.EqualValues(3, body["totalPages"])
	s.EqualValues(2, body["currentPage"])
	s.EqualValues(5, body["limit"])
	s.Equal(s.adminUser.ID.Hex(), body["curUser"])
	s.Len(body["users"], 1)
	s.admin.AssertExpectations(s.T())
}

func (s *RouteSuite) TestAdminListUsersStoreFailure() {
	s.admin.On("ListUsers", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("query pipeline: boom")).Once()

	w := s.do(http.MethodGet, "/admin/users", "admin-token", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Error Find Data", decode(s.T(), w)["message"])
}

func (s *RouteSuite) TestAdminDeleteMissingUser() {
	id := primitive.NewObjectID().Hex()
	s.admin.On("DeleteUser", mock.Anything, s.adminUser.ID, id, mock.Anything).
		Return(fmt.Errorf("user: %w", domain.ErrNotFound)).Once()

	w := s.do(http.MethodPut, "/admin/user/delete/"+id, "admin-token", nil)

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("User not found or already deleted", decode(s.T(), w)["message"])
}

func (s *RouteSuite) TestAdminEditValidatesBody() {
	w := s.do(http.MethodPut, "/admin/user/edit/"+s.plainUser.ID.Hex(), "admin-token", gin.H{
		"firstName": "Al", "lastName": "Smith", "email": "alice@example.com",
		"role": "owner", "status": "active", "location": "x", "phoneNo": "1",
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.admin.AssertNotCalled(s.T(), "EditUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RouteSuite) TestAdminGetUser() {
	s.admin.On("GetUser", mock.Anything, s.plainUser.ID.Hex()).Return(s.plainUser, nil).Once()

	w := s.do(http.MethodGet, "/admin/user/"+s.plainUser.ID.Hex(), "admin-token", nil)

	s.Equal(http.StatusOK, w.Code)
	body := decode(s.T(), w)
	s.Equal("User Find successfully", body["message"])
	s.NotContains(body["user"], "password")
}

func (s *RouteSuite) TestActivityLog() {
	target := s.plainUser.ID.Hex()
	s.activity.On("ListForUser", mock.Anything, "missing", mock.Anything).Return(nil, domain.ErrNotFound).Once()
	s.activity.On("ListForUser", mock.Anything, target, mock.MatchedBy(func(r domain_query.QueryRequest) bool {
		return r.SortField == "createdAt" && r.SortOrder == domain_query.Descending
	})).Return(&domain_activity.ActivityPage{
		User:       &domain_activity.Actor{ID: s.plainUser.ID, Email: s.plainUser.Email},
		Logs:       []domain_activity.LogEntry{},
		TotalCount: 0,
		Page:       1,
		Limit:      10,
	}, nil).Once()

	w := s.do(http.MethodGet, "/admin/activity/missing", "admin-token", nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/admin/activity/"+target+"?sortOrder=desc", "admin-token", nil)
	s.Equal(http.StatusOK, w.Code)
	body := decode(s.T(), w)
	s.Equal([]interface{}{}, body["logs"])
	s.EqualValues(0, body["totalCount"])
	s.True(strings.Contains(w.Body.String(), s.plainUser.Email))
}
