package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BaseRepository 通用Repository接口，users 与 activitylogs 共用
// T: 实体类型，必须包含 bson:"_id" 字段
type BaseRepository[T any] interface {
	// Create 填充 createdAt/updatedAt 与 _id; 唯一索引冲突返回 ErrConflict
	Create(ctx context.Context, entity *T) error
	// GetByID 不存在时返回 ErrNotFound
	GetByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	// UpdateByID 返回是否匹配到文档
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (bool, error)

	GetByFilter(ctx context.Context, filter interface{}) ([]*T, error)
	// GetOneByFilter 没有匹配时返回 nil, nil
	GetOneByFilter(ctx context.Context, filter interface{}) (*T, error)
	Count(ctx context.Context, filter interface{}) (int64, error)
	ExistsByFilter(ctx context.Context, filter interface{}) (bool, error)
}
