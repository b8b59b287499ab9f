package repository_auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const presenceKey = "presence:last_seen"

var _ domain_auth.PresenceTracker = (*redisPresenceTracker)(nil)

// redisPresenceTracker keeps userID -> unix millis in a single hash.
type redisPresenceTracker struct {
	client redis.Cmdable
	logger *zap.Logger
}

func NewRedisPresenceTracker(client redis.Cmdable, logger *zap.Logger) domain_auth.PresenceTracker {
	return &redisPresenceTracker{
		client: client,
		logger: logger.Named("RedisPresence"),
	}
}

func (p *redisPresenceTracker) Touch(ctx context.Context, userID primitive.ObjectID, at time.Time) error {
	if err := p.client.HSet(ctx, presenceKey, userID.Hex(), at.UnixMilli()).Err(); err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}
	return nil
}

func (p *redisPresenceTracker) LastSeen(ctx context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]time.Time, error) {
	result := make(map[primitive.ObjectID]time.Time, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	fields := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		fields = append(fields, id.Hex())
	}

	values, err := p.client.HMGet(ctx, presenceKey, fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read presence: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		millis, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			p.logger.Warn("Corrupted presence entry", zap.String("userID", fields[i]), zap.String("value", raw))
			continue
		}
		result[userIDs[i]] = time.UnixMilli(millis).UTC()
	}
	return result, nil
}
