package repository_auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const otpKeyPrefix = "otp:"

var _ domain_auth.OTPStore = (*redisOTPStore)(nil)

type redisOTPStore struct {
	client redis.Cmdable
	logger *zap.Logger
}

// NewRedisOTPStore stores reset codes under otp:<email> with an explicit expiry.
func NewRedisOTPStore(client redis.Cmdable, logger *zap.Logger) domain_auth.OTPStore {
	return &redisOTPStore{
		client: client,
		logger: logger.Named("RedisOTPStore"),
	}
}

func otpKey(email string) string {
	return otpKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (s *redisOTPStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, otpKey(email), code, ttl).Err(); err != nil {
		s.logger.Error("Failed to store reset code", zap.Error(err))
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	s.logger.Debug("Reset code stored", zap.Duration("ttl", ttl))
	return nil
}

func (s *redisOTPStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, otpKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		s.logger.Error("Failed to read reset code", zap.Error(err))
		return "", fmt.Errorf("failed to read reset code: %w", err)
	}
	return code, nil
}

func (s *redisOTPStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, otpKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete reset code: %w", err)
	}
	return nil
}
