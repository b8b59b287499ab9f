package domain_activity

import (
	"context"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 操作类型
const (
	ActionCreate        = "Create"
	ActionLogin         = "Login"
	ActionLogout        = "Logout"
	ActionUpdate        = "Update"
	ActionDelete        = "Delete"
	ActionAdminUpdate   = "Updated user details"
	ActionAdminDelete   = "Deleted user"
	ActionAdminCreate   = "Created user"
	UnknownIPAddress    = "unknown"
	UnknownDeviceString = "Unknown Browser, Unknown OS"
)

type ActivityLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Time         time.Time          `bson:"time" json:"time"`
	Action       string             `bson:"action" json:"action"`
	Description  string             `bson:"description" json:"description"`
	IPAddress    string             `bson:"IPAddress" json:"IPAddress"`
	Device       string             `bson:"device" json:"device"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	TargetUserID primitive.ObjectID `bson:"targetUserId,omitempty" json:"targetUserId,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Actor is the public projection of a user document. It never carries the
// password hash.
type Actor struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	PhoneNo   string             `bson:"phoneNo" json:"phoneNo"`
	Location  string             `bson:"location" json:"location"`
	Role      string             `bson:"role" json:"role"`
	Status    string             `bson:"status" json:"status"`
	ImgURL    string             `bson:"imgUrl,omitempty" json:"imgUrl,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LogEntry is an activity log with the acting user attached.
type LogEntry struct {
	ActivityLog `bson:",inline"`
	User        *Actor `bson:"user,omitempty" json:"user,omitempty"`
}

// ClientInfo describes where a request came from.
type ClientInfo struct {
	IPAddress string
	Device    string
}

// Event is what callers hand to the recorder; time and client details are filled in.
type Event struct {
	Actor       primitive.ObjectID
	Target      primitive.ObjectID
	Action      string
	Description string
	Client      ClientInfo
}

// LogRegistry configures the activity listing pipeline.
var LogRegistry = domain_query.FieldRegistry{
	StringFields:     []string{"action", "description", "IPAddress", "device"},
	SearchFields:     []string{"IPAddress", "action"},
	HiddenFields:     []string{"user.password"},
	DefaultSortField: domain_query.DefaultSortField,
	Joins: []domain_query.LookupStage{{
		From:         domain.CollectionUser,
		LocalField:   "userId",
		ForeignField: "_id",
		As:           "user",
	}},
}

type ActivityRepository interface {
	domain.BaseRepository[ActivityLog]
	QueryForTarget(ctx context.Context, target primitive.ObjectID, req domain_query.QueryRequest) (*domain_query.QueryResult[LogEntry], error)
}

// Recorder appends audit entries.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}

type ActivityPage struct {
	User       *Actor     `json:"user"`
	Logs       []LogEntry `json:"logs"`
	TotalCount int64      `json:"totalCount"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
}

type ActivityUsecase interface {
	Recorder
	ListForUser(ctx context.Context, targetID string, req domain_query.QueryRequest) (*ActivityPage, error)
}
