package domain_auth

import (
	"context"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTPStore keeps one pending password reset code per email address.
type OTPStore interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	// Get returns "" when no unexpired code exists.
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

type PresenceTracker interface {
	Touch(ctx context.Context, userID primitive.ObjectID, at time.Time) error
	LastSeen(ctx context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]time.Time, error)
}

// ImageStore persists profile images under a key.
type ImageStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type AuthUsecase interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Register(ctx context.Context, req RegisterRequest, image *ProfileImage, client domain_activity.ClientInfo) (*User, error)
	Login(ctx context.Context, req LoginRequest, client domain_activity.ClientInfo) (*User, string, error)
	// Authenticate resolves a session token to its active user.
	Authenticate(ctx context.Context, token string) (*User, error)
	Me(ctx context.Context, userID primitive.ObjectID) (*User, error)

	SendResetCode(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	CompleteReset(ctx context.Context, req ForgotPasswordRequest, client domain_activity.ClientInfo) error

	ResetPassword(ctx context.Context, userID primitive.ObjectID, req ResetPasswordRequest, client domain_activity.ClientInfo) error
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, req UpdateProfileRequest, image *ProfileImage, client domain_activity.ClientInfo) error
	DeleteAccount(ctx context.Context, userID primitive.ObjectID, client domain_activity.ClientInfo) error
	Logout(ctx context.Context, userID primitive.ObjectID, client domain_activity.ClientInfo)

	TouchPresence(ctx context.Context, userID primitive.ObjectID)
	UsersWithPresence(ctx context.Context, userID primitive.ObjectID) ([]UserPresence, *User, error)
}

type AdminUsecase interface {
	ListUsers(ctx context.Context, req domain_query.QueryRequest) (*domain_query.QueryResult[User], error)
	GetUser(ctx context.Context, id string) (*User, error)
	EditUser(ctx context.Context, actor primitive.ObjectID, id string, req AdminUpdateUserRequest, image *ProfileImage, client domain_activity.ClientInfo) error
	DeleteUser(ctx context.Context, actor primitive.ObjectID, id string, client domain_activity.ClientInfo) error
	CreateUser(ctx context.Context, actor primitive.ObjectID, req RegisterRequest, image *ProfileImage, client domain_activity.ClientInfo) (*User, error)
}
