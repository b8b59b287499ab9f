package mocks

import (
	"context"

	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthUsecase is a mock type for the domain_auth.AuthUsecase type
type AuthUsecase struct {
	mock.Mock
}

func (_m *AuthUsecase) EmailExists(ctx context.Context, email string) (bool, error) {
	ret := _m.Called(ctx, email)
	return ret.Bool(0), ret.Error(1)
}

func (_m *AuthUsecase) Register(ctx context.Context, req domain_auth.RegisterRequest, image *domain_auth.ProfileImage, client domain_activity.ClientInfo) (*domain_auth.User, error) {
	ret := _m.Called(ctx, req, image, client)
	return userOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *AuthUsecase) Login(ctx context.Context, req domain_auth.LoginRequest, client domain_activity.ClientInfo) (*domain_auth.User, string, error) {
	ret := _m.Called(ctx, req, client)
	return userOrNil(ret.Get(0)), ret.String(1), ret.Error(2)
}

func (_m *AuthUsecase) Authenticate(ctx context.Context, token string) (*domain_auth.User, error) {
	ret := _m.Called(ctx, token)
	return userOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *AuthUsecase) Me(ctx context.Context, userID primitive.ObjectID) (*domain_auth.User, error) {
	ret := _m.Called(ctx, userID)
	return userOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *AuthUsecase) SendResetCode(ctx context.Context, email string) error {
	return _m.Called(ctx, email).Error(0)
}

func (_m *AuthUsecase) VerifyResetCode(ctx context.Context, email, code string) error {
	return _m.Called(ctx, email, code).Error(0)
}

func (_m *AuthUsecase) CompleteReset(ctx context.Context, req domain_auth.ForgotPasswordRequest, client domain_activity.ClientInfo) error {
	return _m.Called(ctx, req, client).Error(0)
}

func (_m *AuthUsecase) ResetPassword(ctx context.Context, userID primitive.ObjectID, req domain_auth.ResetPasswordRequest, client domain_activity.ClientInfo) error {
	return _m.Called(ctx, userID, req, client).Error(0)
}

func (_m *AuthUsecase) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req domain_auth.UpdateProfileRequest, image *domain_auth.ProfileImage, client domain_activity.ClientInfo) error {
	return _m.Called(ctx, userID, req, image, client).Error(0)
}

func (_m *AuthUsecase) DeleteAccount(ctx context.Context, userID primitive.ObjectID, client domain_activity.ClientInfo) error {
	return _m.Called(ctx, userID, client).Error(0)
}

func (_m *AuthUsecase) Logout(ctx context.Context, userID primitive.ObjectID, client domain_activity.ClientInfo) {
	_m.Called(ctx, userID, client)
}

func (_m *AuthUsecase) TouchPresence(ctx context.Context, userID primitive.ObjectID) {
	_m.Called(ctx, userID)
}

func (_m *AuthUsecase) UsersWithPresence(ctx context.Context, userID primitive.ObjectID) ([]domain_auth.UserPresence, *domain_auth.User, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain_auth.UserPresence
	if v, ok := ret.Get(0).([]domain_auth.UserPresence); ok {
		r0 = v
	}
	return r0, userOrNil(ret.Get(1)), ret.Error(2)
}

// AdminUsecase is a mock type for the domain_auth.AdminUsecase type
type AdminUsecase struct {
	mock.Mock
}

func (_m *AdminUsecase) ListUsers(ctx context.Context, req domain_query.QueryRequest) (*domain_query.QueryResult[domain_auth.User], error) {
	ret := _m.Called(ctx, req)
	var r0 *domain_query.QueryResult[domain_auth.User]
	if v, ok := ret.Get(0).(*domain_query.QueryResult[domain_auth.User]); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *AdminUsecase) GetUser(ctx context.Context, id string) (*domain_auth.User, error) {
	ret := _m.Called(ctx, id)
	return userOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *AdminUsecase) EditUser(ctx context.Context, actor primitive.ObjectID, id string, req domain_auth.AdminUpdateUserRequest, image *domain_auth.ProfileImage, client domain_activity.ClientInfo) error {
	return _m.Called(ctx, actor, id, req, image, client).Error(0)
}

func (_m *AdminUsecase) DeleteUser(ctx context.Context, actor primitive.ObjectID, id string, client domain_activity.ClientInfo) error {
	return _m.Called(ctx, actor, id, client).Error(0)
}

func (_m *AdminUsecase) CreateUser(ctx context.Context, actor primitive.ObjectID, req domain_auth.RegisterRequest, image *domain_auth.ProfileImage, client domain_activity.ClientInfo) (*domain_auth.User, error) {
	ret := _m.Called(ctx, actor, req, image, client)
	return userOrNil(ret.Get(0)), ret.Error(1)
}

// ActivityUsecase is a mock type for the domain_activity.ActivityUsecase type
type ActivityUsecase struct {
	mock.Mock
}

func (_m *ActivityUsecase) Record(ctx context.Context, event domain_activity.Event) error {
	return _m.Called(ctx, event).Error(0)
}

func (_m *ActivityUsecase) ListForUser(ctx context.Context, targetID string, req domain_query.QueryRequest) (*domain_activity.ActivityPage, error) {
	ret := _m.Called(ctx, targetID, req)
	var r0 *domain_activity.ActivityPage
	if v, ok := ret.Get(0).(*domain_activity.ActivityPage); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

var (
	_ domain_auth.AuthUsecase         = (*AuthUsecase)(nil)
	_ domain_auth.AdminUsecase        = (*AdminUsecase)(nil)
	_ domain_activity.ActivityUsecase = (*ActivityUsecase)(nil)
)
