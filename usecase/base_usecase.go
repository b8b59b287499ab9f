package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BaseUsecase 通用Usecase接口
type BaseUsecase[T any] interface {
	GetByID(ctx context.Context, id string) (*T, error)
	UpdateByID(ctx context.Context, id string, updates bson.M) error
	Exists(ctx context.Context, filter interface{}) (bool, error)
}

// BaseUsecaseImpl 通用Usecase实现
type BaseUsecaseImpl[T any] struct {
	repo    domain.BaseRepository[T]
	timeout time.Duration
}

// NewBaseUsecase 创建通用Usecase实例
func NewBaseUsecase[T any](repo domain.BaseRepository[T], timeout time.Duration) *BaseUsecaseImpl[T] {
	return &BaseUsecaseImpl[T]{
		repo:    repo,
		timeout: timeout,
	}
}

// GetByID 根据ID获取实体
func (uc *BaseUsecaseImpl[T]) GetByID(ctx context.Context, id string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	objID, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	entity, err := uc.repo.GetByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	return entity, nil
}

// UpdateByID 根据ID更新指定字段
func (uc *BaseUsecaseImpl[T]) UpdateByID(ctx context.Context, id string, updates bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if len(updates) == 0 {
		return errors.New("updates cannot be empty")
	}

	objID, err := ParseObjectID(id)
	if err != nil {
		return err
	}

	matched, err := uc.repo.UpdateByID(ctx, objID, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update entity: %w", err)
	}
	if !matched {
		return fmt.Errorf("entity %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Exists 检查实体是否存在
func (uc *BaseUsecaseImpl[T]) Exists(ctx context.Context, filter interface{}) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	exists, err := uc.repo.ExistsByFilter(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}

	return exists, nil
}

// ParseObjectID 解析十六进制ID, 非法格式视为不存在
func ParseObjectID(id string) (primitive.ObjectID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return primitive.NilObjectID, fmt.Errorf("id cannot be empty: %w", domain.ErrInvalidInput)
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id format %q: %w", id, domain.ErrNotFound)
	}

	return objID, nil
}
