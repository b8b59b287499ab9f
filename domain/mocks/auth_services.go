package mocks

import (
	"context"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTPStore is a mock type for the domain_auth.OTPStore type
type OTPStore struct {
	mock.Mock
}

func (_m *OTPStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	return _m.Called(ctx, email, code, ttl).Error(0)
}

func (_m *OTPStore) Get(ctx context.Context, email string) (string, error) {
	ret := _m.Called(ctx, email)
	return ret.String(0), ret.Error(1)
}

func (_m *OTPStore) Delete(ctx context.Context, email string) error {
	return _m.Called(ctx, email).Error(0)
}

// PresenceTracker is a mock type for the domain_auth.PresenceTracker type
type PresenceTracker struct {
	mock.Mock
}

func (_m *PresenceTracker) Touch(ctx context.Context, userID primitive.ObjectID, at time.Time) error {
	return _m.Called(ctx, userID, at).Error(0)
}

func (_m *PresenceTracker) LastSeen(ctx context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]time.Time, error) {
	ret := _m.Called(ctx, userIDs)
	var r0 map[primitive.ObjectID]time.Time
	if v, ok := ret.Get(0).(map[primitive.ObjectID]time.Time); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

// ImageStore is a mock type for the domain_auth.ImageStore type
type ImageStore struct {
	mock.Mock
}

func (_m *ImageStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return _m.Called(ctx, key, data, contentType).Error(0)
}

func (_m *ImageStore) Delete(ctx context.Context, key string) error {
	return _m.Called(ctx, key).Error(0)
}

// Mailer is a mock type for the domain_auth.Mailer type
type Mailer struct {
	mock.Mock
}

func (_m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	return _m.Called(ctx, to, subject, body).Error(0)
}

var (
	_ domain_auth.OTPStore        = (*OTPStore)(nil)
	_ domain_auth.PresenceTracker = (*PresenceTracker)(nil)
	_ domain_auth.ImageStore      = (*ImageStore)(nil)
	_ domain_auth.Mailer          = (*Mailer)(nil)
)
