package repository_auth

import (
	"context"
	"fmt"

	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"github.com/amitshekhariitbhu/go-auth-admin/mongo"
	"github.com/amitshekhariitbhu/go-auth-admin/repository"
	"github.com/amitshekhariitbhu/go-auth-admin/repository/repository_query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type userRepository struct {
	*repository.BaseMongoRepository[domain_auth.User]
	executor domain_query.Executor[domain_auth.User]
}

func NewUserRepository(db mongo.Database, collection string, log *zap.Logger) domain_auth.UserRepository {
	return &userRepository{
		BaseMongoRepository: repository.NewBaseMongoRepository[domain_auth.User](db, collection),
		executor:            repository_query.NewMongoPlanExecutor[domain_auth.User](db, collection, log.Named("UserQuery")),
	}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain_auth.User, error) {
	return r.GetOneByFilter(ctx, bson.M{"email": email})
}

func (r *userRepository) GetActiveByEmail(ctx context.Context, email string) (*domain_auth.User, error) {
	return r.GetOneByFilter(ctx, bson.M{"email": email, "status": domain_auth.StatusActive})
}

func (r *userRepository) GetActiveByID(ctx context.Context, id primitive.ObjectID) (*domain_auth.User, error) {
	return r.GetOneByFilter(ctx, bson.M{"_id": id, "status": domain_auth.StatusActive})
}

func (r *userRepository) ListActive(ctx context.Context) ([]*domain_auth.User, error) {
	users, err := r.GetByFilter(ctx, bson.M{"status": domain_auth.StatusActive})
	if err != nil {
		return nil, fmt.Errorf("list active users: %w", err)
	}
	return users, nil
}

func (r *userRepository) Query(ctx context.Context, req domain_query.QueryRequest) (*domain_query.QueryResult[domain_auth.User], error) {
	return domain_query.Execute[domain_auth.User](ctx, r.executor, req, domain_auth.UserRegistry)
}
