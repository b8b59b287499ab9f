package mongo

import (
	"context"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func CreateIndexes(db Database, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Users Collection
	userCollection := db.Collection(domain.CollectionUser)
	createIndex(ctx, log, userCollection, bson.D{{Key: "email", Value: 1}}, "email_unique", true)
	createIndex(ctx, log, userCollection, bson.D{{Key: "status", Value: 1}}, "status", false)
	createIndex(ctx, log, userCollection, bson.D{{Key: "createdAt", Value: -1}}, "createdAt", false)
	// 列表页筛选
	createIndex(ctx, log, userCollection, bson.D{
		{Key: "role", Value: 1},
		{Key: "status", Value: 1},
		{Key: "createdAt", Value: -1}}, "role_status_created_compound", false)

	// Activity Log Collection
	activityCollection := db.Collection(domain.CollectionActivityLog)
	createIndex(ctx, log, activityCollection, bson.D{{Key: "userId", Value: 1}}, "userId", false)
	createIndex(ctx, log, activityCollection, bson.D{
		{Key: "targetUserId", Value: 1},
		{Key: "createdAt", Value: -1}}, "target_created_compound", false)
	createIndex(ctx, log, activityCollection, bson.D{
		{Key: "targetUserId", Value: 1},
		{Key: "time", Value: -1}}, "target_time_compound", false)
}

func createIndex(
	ctx context.Context,
	log *zap.Logger,
	collection Collection,
	keys bson.D,
	name string,
	unique bool,
) {
	if specs, err := collection.Indexes().ListSpecifications(ctx); err == nil {
		for _, spec := range specs {
			if spec.Name == name || sameKeys(keysOf(spec), keys) {
				log.Debug("index already exists, skipping", zap.String("index", name))
				return
			}
		}
	}

	indexModel := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name).SetUnique(unique),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Warn("failed to create index", zap.String("index", name), zap.Error(err))
		return
	}
	log.Info("index created", zap.String("index", name))
}

func sameKeys(a, b bson.D) bool {
	if len(a) == 0 || len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key || toInt(a[i].Value) != toInt(b[i].Value) {
			return false
		}
	}
	return true
}

func toInt(v interface{}) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
