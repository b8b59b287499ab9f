package mocks

import (
	"context"

	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityRepository is a mock type for the domain_activity.ActivityRepository type
type ActivityRepository struct {
	mock.Mock
}

func (_m *ActivityRepository) Create(ctx context.Context, entity *domain_activity.ActivityLog) error {
	ret := _m.Called(ctx, entity)
	return ret.Error(0)
}

func (_m *ActivityRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain_activity.ActivityLog, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain_activity.ActivityLog
	if v, ok := ret.Get(0).(*domain_activity.ActivityLog); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *ActivityRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (bool, error) {
	ret := _m.Called(ctx, id, update)
	return ret.Bool(0), ret.Error(1)
}

func (_m *ActivityRepository) GetByFilter(ctx context.Context, filter interface{}) ([]*domain_activity.ActivityLog, error) {
	ret := _m.Called(ctx, filter)
	var r0 []*domain_activity.ActivityLog
	if v, ok := ret.Get(0).([]*domain_activity.ActivityLog); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *ActivityRepository) GetOneByFilter(ctx context.Context, filter interface{}) (*domain_activity.ActivityLog, error) {
	ret := _m.Called(ctx, filter)
	var r0 *domain_activity.ActivityLog
	if v, ok := ret.Get(0).(*domain_activity.ActivityLog); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *ActivityRepository) Count(ctx context.Context, filter interface{}) (int64, error) {
	ret := _m.Called(ctx, filter)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *ActivityRepository) ExistsByFilter(ctx context.Context, filter interface{}) (bool, error) {
	ret := _m.Called(ctx, filter)
	return ret.Bool(0), ret.Error(1)
}

func (_m *ActivityRepository) QueryForTarget(ctx context.Context, target primitive.ObjectID, req domain_query.QueryRequest) (*domain_query.QueryResult[domain_activity.LogEntry], error) {
	ret := _m.Called(ctx, target, req)
	var r0 *domain_query.QueryResult[domain_activity.LogEntry]
	if v, ok := ret.Get(0).(*domain_query.QueryResult[domain_activity.LogEntry]); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

// ActorRepository is a mock of the read-only user projection used by the activity usecase.
type ActorRepository struct {
	mock.Mock
}

func (_m *ActorRepository) Create(ctx context.Context, entity *domain_activity.Actor) error {
	return _m.Called(ctx, entity).Error(0)
}

func (_m *ActorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain_activity.Actor, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain_activity.Actor
	if v, ok := ret.Get(0).(*domain_activity.Actor); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *ActorRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (bool, error) {
	ret := _m.Called(ctx, id, update)
	return ret.Bool(0), ret.Error(1)
}

func (_m *ActorRepository) GetByFilter(ctx context.Context, filter interface{}) ([]*domain_activity.Actor, error) {
	ret := _m.Called(ctx, filter)
	var r0 []*domain_activity.Actor
	if v, ok := ret.Get(0).([]*domain_activity.Actor); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *ActorRepository) GetOneByFilter(ctx context.Context, filter interface{}) (*domain_activity.Actor, error) {
	ret := _m.Called(ctx, filter)
	var r0 *domain_activity.Actor
	if v, ok := ret.Get(0).(*domain_activity.Actor); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *ActorRepository) Count(ctx context.Context, filter interface{}) (int64, error) {
	ret := _m.Called(ctx, filter)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *ActorRepository) ExistsByFilter(ctx context.Context, filter interface{}) (bool, error) {
	ret := _m.Called(ctx, filter)
	return ret.Bool(0), ret.Error(1)
}

// Recorder is a mock type for the domain_activity.Recorder type
type Recorder struct {
	mock.Mock
}

func (_m *Recorder) Record(ctx context.Context, event domain_activity.Event) error {
	return _m.Called(ctx, event).Error(0)
}

var (
	_ domain_activity.ActivityRepository = (*ActivityRepository)(nil)
	_ domain_activity.Recorder           = (*Recorder)(nil)
)
