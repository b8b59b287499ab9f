package mocks

import (
	"context"

	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository is a mock type for the domain_auth.UserRepository type
type UserRepository struct {
	mock.Mock
}

func (_m *UserRepository) Create(ctx context.Context, entity *domain_auth.User) error {
	ret := _m.Called(ctx, entity)
	return ret.Error(0)
}

func (_m *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain_auth.User, error) {
	ret := _m.Called(ctx, id)
	return userOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *UserRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (bool, error) {
	ret := _m.Called(ctx, id, update)
	return ret.Bool(0), ret.Error(1)
}

func (_m *UserRepository) GetByFilter(ctx context.Context, filter interface{}) ([]*domain_auth.User, error) {
	ret := _m.Called(ctx, filter)
	var r0 []*domain_auth.User
	if v, ok := ret.Get(0).([]*domain_auth.User); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *UserRepository) GetOneByFilter(ctx context.Context, filter interface{}) (*domain_auth.User, error) {
	ret := _m.Called(ctx, filter)
	return userOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *UserRepository) Count(ctx context.Context, filter interface{}) (int64, error) {
	ret := _m.Called(ctx, filter)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *UserRepository) ExistsByFilter(ctx context.Context, filter interface{}) (bool, error) {
	ret := _m.Called(ctx, filter)
	return ret.Bool(0), ret.Error(1)
}

func (_m *UserRepository) GetByEmail(ctx context.Context, email string) (*domain_auth.User, error) {
	ret := _m.Called(ctx, email)
	return userOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *UserRepository) GetActiveByEmail(ctx context.Context, email string) (*domain_auth.User, error) {
	ret := _m.Called(ctx, email)
	return userOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *UserRepository) GetActiveByID(ctx context.Context, id primitive.ObjectID) (*domain_auth.User, error) {
	ret := _m.Called(ctx, id)
	return userOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *UserRepository) ListActive(ctx context.Context) ([]*domain_auth.User, error) {
	ret := _m.Called(ctx)
	var r0 []*domain_auth.User
	if v, ok := ret.Get(0).([]*domain_auth.User); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *UserRepository) Query(ctx context.Context, req domain_query.QueryRequest) (*domain_query.QueryResult[domain_auth.User], error) {
	ret := _m.Called(ctx, req)
	var r0 *domain_query.QueryResult[domain_auth.User]
	if v, ok := ret.Get(0).(*domain_query.QueryResult[domain_auth.User]); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func userOrNil(v interface{}) *domain_auth.User {
	if u, ok := v.(*domain_auth.User); ok {
		return u
	}
	return nil
}

var _ domain_auth.UserRepository = (*UserRepository)(nil)
