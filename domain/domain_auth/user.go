package domain_auth

import (
	"context"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusActive   = "active"
	StatusInactive = "inActive"
	StatusDeleted  = "delete"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	PhoneNo   string             `bson:"phoneNo" json:"phoneNo"`
	Location  string             `bson:"location" json:"location"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	Status    string             `bson:"status" json:"status"`
	ImgURL    string             `bson:"imgUrl,omitempty" json:"imgUrl,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsActive() bool { return u.Status == StatusActive }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// Profile is the session view returned by login and verify.
type Profile struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status,omitempty"`
	PhoneNo   string `json:"phoneNo"`
	Location  string `json:"location"`
	ImgURL    string `json:"imgUrl"`
}

func (u *User) Profile() Profile {
	return Profile{
		UserID:    u.ID.Hex(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		PhoneNo:   u.PhoneNo,
		Location:  u.Location,
		ImgURL:    u.ImgURL,
	}
}

// UserPresence is an active user annotated with presence data.
type UserPresence struct {
	User
	IsOnline bool       `json:"isOnline"`
	LastSeen *time.Time `json:"lastSeen"`
}

// UserRegistry configures the admin user listing pipeline.
var UserRegistry = domain_query.FieldRegistry{
	StringFields: []string{"firstName", "lastName", "email"},
	SearchFields: []string{"firstName", "lastName", "email"},
	FilterParams: []domain_query.FilterParam{
		{Param: "filterRole", Field: "role"},
		{Param: "filterStatus", Field: "status"},
	},
	HiddenFields:     []string{"password"},
	DefaultSortField: domain_query.DefaultSortField,
}

type UserRepository interface {
	domain.BaseRepository[User]
	// GetByEmail returns nil, nil when no user has the address.
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetActiveByEmail(ctx context.Context, email string) (*User, error)
	GetActiveByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	ListActive(ctx context.Context) ([]*User, error)
	Query(ctx context.Context, req domain_query.QueryRequest) (*domain_query.QueryResult[User], error)
}
