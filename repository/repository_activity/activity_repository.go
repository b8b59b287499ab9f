package repository_activity

import (
	"context"

	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"github.com/amitshekhariitbhu/go-auth-admin/mongo"
	"github.com/amitshekhariitbhu/go-auth-admin/repository"
	"github.com/amitshekhariitbhu/go-auth-admin/repository/repository_query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type activityRepository struct {
	*repository.BaseMongoRepository[domain_activity.ActivityLog]
	executor domain_query.Executor[domain_activity.LogEntry]
}

func NewActivityRepository(db mongo.Database, collection string, log *zap.Logger) domain_activity.ActivityRepository {
	return &activityRepository{
		BaseMongoRepository: repository.NewBaseMongoRepository[domain_activity.ActivityLog](db, collection),
		executor:            repository_query.NewMongoPlanExecutor[domain_activity.LogEntry](db, collection, log.Named("ActivityQuery")),
	}
}

// QueryForTarget lists the entries whose subject is target, each with its acting
// user attached.
func (r *activityRepository) QueryForTarget(
	ctx context.Context,
	target primitive.ObjectID,
	req domain_query.QueryRequest,
) (*domain_query.QueryResult[domain_activity.LogEntry], error) {
	return domain_query.Execute[domain_activity.LogEntry](
		ctx,
		r.executor,
		req,
		domain_activity.LogRegistry,
		domain_query.Eq{Field: "targetUserId", Value: target},
	)
}
