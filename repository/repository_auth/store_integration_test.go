//go:build integration

package repository_auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/domain"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"github.com/amitshekhariitbhu/go-auth-admin/mongo"
	"github.com/amitshekhariitbhu/go-auth-admin/repository/repository_activity"
	"github.com/amitshekhariitbhu/go-auth-admin/repository/repository_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/repository/repository_query"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type StoreIntegrationSuite struct {
	suite.Suite
	ctx         context.Context
	mgContainer *tcmongo.MongoDBContainer
	rdContainer *tcredis.RedisContainer
	client      mongo.Client
	db          mongo.Database
	redisClient *redis.Client
	logger      *zap.Logger

	users    domain_auth.UserRepository
	activity domain_activity.ActivityRepository
}

func TestStoreIntegrationSuite(t *testing.T) {
	suite.Run(t, new(StoreIntegrationSuite))
}

func (s *StoreIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err)

	s.mgContainer, err = tcmongo.Run(s.ctx, "mongo:7")
	require.NoError(s.T(), err, "Failed to start mongo container")
	uri, err := s.mgContainer.ConnectionString(s.ctx)
	require.NoError(s.T(), err)

	s.client, err = mongo.NewClient(uri)
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.client.Connect(s.ctx))
	require.NoError(s.T(), s.client.Ping(s.ctx))
	s.db = s.client.Database("auth_admin_test")
	mongo.CreateIndexes(s.db, s.logger)

	s.rdContainer, err = tcredis.Run(s.ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").
				WithOccurrence(1).
				WithStartupTimeout(1*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start redis container")
	redisURI, err := s.rdContainer.ConnectionString(s.ctx)
	require.NoError(s.T(), err)
	opts, err := redis.ParseURL(redisURI)
	require.NoError(s.T(), err)
	s.redisClient = redis.NewClient(opts)
	require.NoError(s.T(), s.redisClient.Ping(s.ctx).Err())

	s.users = repository_auth.NewUserRepository(s.db, domain.CollectionUser, s.logger)
	s.activity = repository_activity.NewActivityRepository(s.db, domain.CollectionActivityLog, s.logger)
	s.seed()
}

func (s *StoreIntegrationSuite) TearDownSuite() {
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
	if s.client != nil {
		_ = s.client.Disconnect(s.ctx)
	}
	if s.rdContainer != nil {
		_ = testcontainers.TerminateContainer(s.rdContainer)
	}
	if s.mgContainer != nil {
		_ = testcontainers.TerminateContainer(s.mgContainer)
	}
}

func (s *StoreIntegrationSuite) seed() {
	names := []string{"Bob", "alice", "Carol", "dave", "Eve", "frank", "Grace", "heidi", "Ivan", "judy", "Mallory", "niaj"}
	for i, name := range names {
		role := domain_auth.RoleUser
		if i%3 == 0 {
			role = domain_auth.RoleAdmin
		}
		status := domain_auth.StatusActive
		if i%4 == 3 {
			status = domain_auth.StatusInactive
		}
		u := &domain_auth.User{
			FirstName: name,
			LastName:  "Tester",
			Email:     fmt.Sprintf("%s%d@example.com", name, i),
			Password:  "hash",
			Role:      role,
			Status:    status,
		}
		require.NoError(s.T(), s.users.Create(s.ctx, u))
	}
}

func (s *StoreIntegrationSuite) rawUsers() []bson.M {
	cur, err := s.db.Collection(domain.CollectionUser).Find(s.ctx, bson.M{})
	s.Require().NoError(err)
	var docs []bson.M
	s.Require().NoError(cur.All(s.ctx, &docs))
	return docs
}

// Both executors must agree on the same plan.
func (s *StoreIntegrationSuite) TestMongoMatchesMemoryExecutor() {
	memory := repository_query.NewMemoryPlanExecutor[domain_auth.User](s.rawUsers(), nil)

	requests := []domain_query.QueryRequest{
		domain_query.NewQueryRequest("1", "5", "firstName", "asc", ""),
		domain_query.NewQueryRequest("2", "5", "firstName", "desc", ""),
		domain_query.NewQueryRequest("1", "10", "email", "asc", "a"),
		domain_query.NewQueryRequest("1", "10", "firstName", "asc", "").WithFilter("role", domain_auth.RoleAdmin),
		domain_query.NewQueryRequest("9", "10", "firstName", "asc", ""),
	}

	for _, req := range requests {
		fromMongo, err := s.users.Query(s.ctx, req)
		s.Require().NoError(err)
		fromMemory, err := domain_query.Execute[domain_auth.User](s.ctx, memory, req, domain_auth.UserRegistry)
		s.Require().NoError(err)

		s.Equal(fromMemory.TotalCount, fromMongo.TotalCount, "%+v", req)
		s.Equal(emails(fromMemory.Items), emails(fromMongo.Items), "%+v", req)
		for _, u := range fromMongo.Items {
			s.Empty(u.Password, "password is omitted from listings")
		}
	}
}

func (s *StoreIntegrationSuite) TestCaseInsensitiveSortAndSearch() {
	res, err := s.users.Query(s.ctx, domain_query.NewQueryRequest("1", "3", "firstName", "asc", ""))
	s.Require().NoError(err)
	s.Equal(int64(12), res.TotalCount)
	s.Require().Len(res.Items, 3)
	s.Equal([]string{"alice", "Bob", "Carol"}, []string{res.Items[0].FirstName, res.Items[1].FirstName, res.Items[2].FirstName})

	res, err = s.users.Query(s.ctx, domain_query.NewQueryRequest("1", "10", "", "", "BOB"))
	s.Require().NoError(err)
	s.Require().Len(res.Items, 1)
	s.Equal("Bob", res.Items[0].FirstName)
}

func (s *StoreIntegrationSuite) TestActivityQueryJoinsActor() {
	bob, err := s.users.GetOneByFilter(s.ctx, bson.M{"firstName": "Bob"})
	s.Require().NoError(err)
	s.Require().NotNil(bob)
	other := primitive.NewObjectID()

	for i, action := range []string{domain_activity.ActionLogin, domain_activity.ActionUpdate, domain_activity.ActionLogout} {
		s.Require().NoError(s.activity.Create(s.ctx, &domain_activity.ActivityLog{
			Time:         time.Now().Add(time.Duration(i) * time.Second),
			Action:       action,
			Description:  "entry",
			IPAddress:    "127.0.0.1",
			Device:       "Chrome, Linux",
			UserID:       bob.ID,
			TargetUserID: bob.ID,
		}))
	}
	s.Require().NoError(s.activity.Create(s.ctx, &domain_activity.ActivityLog{
		Action: domain_activity.ActionLogin, UserID: other, TargetUserID: other,
	}))

	res, err := s.activity.QueryForTarget(s.ctx, bob.ID, domain_query.NewQueryRequest("1", "2", "", "desc", ""))
	s.Require().NoError(err)
	s.Equal(int64(3), res.TotalCount)
	s.Require().Len(res.Items, 2)
	s.Require().NotNil(res.Items[0].User)
	s.Equal(bob.Email, res.Items[0].User.Email)

	res, err = s.activity.QueryForTarget(s.ctx, bob.ID, domain_query.NewQueryRequest("1", "10", "", "", "logout"))
	s.Require().NoError(err)
	s.Equal(int64(1), res.TotalCount)
}

func (s *StoreIntegrationSuite) TestOTPStore() {
	store := repository_auth.NewRedisOTPStore(s.redisClient, s.logger)

	code, err := store.Get(s.ctx, "nobody@example.com")
	s.Require().NoError(err)
	s.Empty(code)

	s.Require().NoError(store.Save(s.ctx, "Alice@Example.com ", "1234", time.Minute))
	code, err = store.Get(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal("1234", code)

	s.Require().NoError(store.Delete(s.ctx, "alice@example.com"))
	code, err = store.Get(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Empty(code)

	s.Require().NoError(store.Save(s.ctx, "short@example.com", "9999", time.Second))
	s.Eventually(func() bool {
		code, err := store.Get(s.ctx, "short@example.com")
		return err == nil && code == ""
	}, 5*time.Second, 100*time.Millisecond)
}

func (s *StoreIntegrationSuite) TestPresenceTracker() {
	tracker := repository_auth.NewRedisPresenceTracker(s.redisClient, s.logger)
	seen, unseen := primitive.NewObjectID(), primitive.NewObjectID()
	at := time.Now().Truncate(time.Millisecond)

	s.Require().NoError(tracker.Touch(s.ctx, seen, at))

	last, err := tracker.LastSeen(s.ctx, []primitive.ObjectID{seen, unseen})
	s.Require().NoError(err)
	s.Require().Contains(last, seen)
	s.True(at.Equal(last[seen]))
	s.NotContains(last, unseen)
}

func emails(users []domain_auth.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Email)
	}
	return out
}
