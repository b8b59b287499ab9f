package repository_query

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testUser struct {
	ID        primitive.ObjectID `bson:"_id"`
	FirstName string             `bson:"firstName"`
	Email     string             `bson:"email"`
	Role      string             `bson:"role"`
	Password  string             `bson:"password,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

var testUserRegistry = domain_query.FieldRegistry{
	StringFields: []string{"firstName", "lastName", "email"},
	SearchFields: []string{"firstName", "lastName", "email"},
	FilterParams: []domain_query.FilterParam{{Param: "filterRole", Field: "role"}},
	HiddenFields: []string{"password"},
}

func seedUsers(n int) []bson.M {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := make([]bson.M, 0, n)
	for i := 0; i < n; i++ {
		docs = append(docs, bson.M{
			"_id":       primitive.NewObjectID(),
			"firstName": fmt.Sprintf("user%02d", i),
			"email":     fmt.Sprintf("user%02d@example.com", i),
			"role":      "user",
			"createdAt": base.Add(time.Duration(i) * time.Hour),
		})
	}
	return docs
}

func runUsers(t *testing.T, docs []bson.M, req domain_query.QueryRequest) *domain_query.QueryResult[testUser] {
	t.Helper()
	exec := NewMemoryPlanExecutor[testUser](docs, nil)
	result, err := domain_query.Execute[testUser](context.Background(), exec, req, testUserRegistry)
	require.NoError(t, err)
	return result
}

func TestMemoryExecutorPaginatesLastPartialPage(t *testing.T) {
	result := runUsers(t, seedUsers(25), domain_query.NewQueryRequest("3", "10", "", "", ""))

	assert.Len(t, result.Items, 5)
	assert.Equal(t, int64(25), result.TotalCount)
	assert.Equal(t, 3, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, "user20", result.Items[0].FirstName)
	assert.Equal(t, "user24", result.Items[4].FirstName)
}

func TestMemoryExecutorCaseInsensitiveSort(t *testing.T) {
	docs := []bson.M{
		{"_id": primitive.NewObjectID(), "firstName": "Carol"},
		{"_id": primitive.NewObjectID(), "firstName": "alice"},
		{"_id": primitive.NewObjectID(), "firstName": "Bob"},
	}

	asc := runUsers(t, docs, domain_query.NewQueryRequest("", "", "firstName", "asc", ""))
	desc := runUsers(t, docs, domain_query.NewQueryRequest("", "", "firstName", "desc", ""))

	assert.Equal(t, []string{"alice", "Bob", "Carol"}, names(asc.Items))
	assert.Equal(t, []string{"Carol", "Bob", "alice"}, names(desc.Items))
}

func TestMemoryExecutorSearchIsCaseInsensitiveSubstring(t *testing.T) {
	docs := []bson.M{
		{"_id": primitive.NewObjectID(), "firstName": "Bobby", "email": "b@x.io"},
		{"_id": primitive.NewObjectID(), "firstName": "Ann", "email": "ann.BOB@x.io"},
		{"_id": primitive.NewObjectID(), "firstName": "Zed", "email": "zed@x.io"},
	}

	result := runUsers(t, docs, domain_query.NewQueryRequest("", "", "firstName", "", "bob"))

	assert.Equal(t, int64(2), result.TotalCount)
	assert.Equal(t, []string{"Ann", "Bobby"}, names(result.Items))
}

func TestMemoryExecutorSearchTermIsLiteral(t *testing.T) {
	docs := []bson.M{
		{"_id": primitive.NewObjectID(), "firstName": "a.b"},
		{"_id": primitive.NewObjectID(), "firstName": "axb"},
	}

	result := runUsers(t, docs, domain_query.NewQueryRequest("", "", "", "", "a.b"))

	require.Len(t, result.Items, 1)
	assert.Equal(t, "a.b", result.Items[0].FirstName)
}

func TestMemoryExecutorFilterCombinesWithSearch(t *testing.T) {
	docs := []bson.M{
		{"_id": primitive.NewObjectID(), "firstName": "Bob", "role": "admin"},
		{"_id": primitive.NewObjectID(), "firstName": "Bobbie", "role": "user"},
		{"_id": primitive.NewObjectID(), "firstName": "Alice", "role": "admin"},
	}

	req := domain_query.NewQueryRequest("", "", "", "", "bob").WithFilter("role", "admin")
	result := runUsers(t, docs, req)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "Bob", result.Items[0].FirstName)
	assert.Equal(t, int64(1), result.TotalCount)
}

func TestMemoryExecutorBeyondLastPage(t *testing.T) {
	result := runUsers(t, seedUsers(25), domain_query.NewQueryRequest("9", "10", "", "", ""))

	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, int64(25), result.TotalCount)
}

func TestMemoryExecutorIsIdempotent(t *testing.T) {
	docs := seedUsers(12)
	req := domain_query.NewQueryRequest("2", "5", "email", "desc", "user")

	first := runUsers(t, docs, req)
	second := runUsers(t, docs, req)

	assert.Equal(t, first, second)
	_, derived := docs[0][domain_query.SortFieldLower]
	assert.False(t, derived)
}

func TestMemoryExecutorInvalidPagingFallsBack(t *testing.T) {
	result := runUsers(t, seedUsers(15), domain_query.NewQueryRequest("0", "abc", "", "", ""))

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Len(t, result.Items, 10)
}

func TestMemoryExecutorNumericAndMissingValues(t *testing.T) {
	docs := []bson.M{
		{"_id": primitive.NewObjectID(), "firstName": "c", "score": int32(3)},
		{"_id": primitive.NewObjectID(), "firstName": "none"},
		{"_id": primitive.NewObjectID(), "firstName": "a", "score": 1.5},
	}

	result := runUsers(t, docs, domain_query.NewQueryRequest("", "", "score", "", ""))

	assert.Equal(t, []string{"none", "a", "c"}, names(result.Items))
}

type testLog struct {
	Action string    `bson:"action"`
	User   *testUser `bson:"user,omitempty"`
	Lower  string    `bson:"sortFieldLower,omitempty"`
}

func TestMemoryExecutorLookupPreservesUnmatched(t *testing.T) {
	actor := primitive.NewObjectID()
	logs := []bson.M{
		{"_id": primitive.NewObjectID(), "action": "Login", "userId": actor},
		{"_id": primitive.NewObjectID(), "action": "Logout", "userId": primitive.NewObjectID()},
	}
	users := []bson.M{{"_id": actor, "email": "a@x.io"}}

	registry := domain_query.FieldRegistry{
		StringFields: []string{"action"},
		Joins: []domain_query.LookupStage{
			{From: "users", LocalField: "userId", ForeignField: "_id", As: "user"},
		},
	}

	exec := NewMemoryPlanExecutor[testLog](logs, map[string][]bson.M{"users": users})
	result, err := domain_query.Execute[testLog](context.Background(), exec, domain_query.NewQueryRequest("", "", "action", "", ""), registry)

	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	require.NotNil(t, result.Items[0].User)
	assert.Equal(t, "a@x.io", result.Items[0].User.Email)
	assert.Nil(t, result.Items[1].User)
	assert.Empty(t, result.Items[0].Lower)
}

func TestMemoryExecutorHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := NewMemoryPlanExecutor[testUser](seedUsers(3), nil)
	_, err := domain_query.Execute[testUser](ctx, exec, domain_query.NewQueryRequest("", "", "", "", ""), testUserRegistry)

	assert.ErrorIs(t, err, context.Canceled)
}

func names(users []testUser) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.FirstName)
	}
	return out
}

func TestMemoryExecutorOmitsHiddenFields(t *testing.T) {
	actor := primitive.NewObjectID()
	users := []bson.M{{"_id": actor, "email": "a@x.io", "password": "hash"}}
	logs := []bson.M{{"_id": primitive.NewObjectID(), "action": "Login", "userId": actor}}

	registry := domain_query.FieldRegistry{
		HiddenFields: []string{"user.password"},
		Joins:        []domain_query.LookupStage{{From: "users", LocalField: "userId", ForeignField: "_id", As: "user"}},
	}
	exec := NewMemoryPlanExecutor[testLog](logs, map[string][]bson.M{"users": users})

	result, err := domain_query.Execute[testLog](context.Background(), exec, domain_query.NewQueryRequest("", "", "", "", ""), registry)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.NotNil(t, result.Items[0].User)
	assert.Equal(t, "a@x.io", result.Items[0].User.Email)
	assert.Empty(t, result.Items[0].User.Password)
	assert.Equal(t, "hash", users[0]["password"], "joined source document must not be mutated")

	docs := []bson.M{{"_id": primitive.NewObjectID(), "firstName": "Bob", "password": "hash"}}
	userExec := NewMemoryPlanExecutor[testUser](docs, nil)
	page, err := domain_query.Execute[testUser](context.Background(), userExec, domain_query.NewQueryRequest("", "", "firstName", "", ""), testUserRegistry)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Empty(t, page.Items[0].Password)
	assert.Equal(t, "hash", docs[0]["password"])
}
