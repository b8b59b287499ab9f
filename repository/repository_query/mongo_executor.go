package repository_query

import (
	"context"
	"fmt"

	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"github.com/amitshekhariitbhu/go-auth-admin/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// MongoPlanExecutor runs a query plan as a single aggregation whose final $facet
// returns the page slice and the total count of the same filtered view.
type MongoPlanExecutor[T any] struct {
	db         mongo.Database
	collection string
	log        *zap.Logger
}

func NewMongoPlanExecutor[T any](db mongo.Database, collection string, log *zap.Logger) *MongoPlanExecutor[T] {
	return &MongoPlanExecutor[T]{
		db:         db,
		collection: collection,
		log:        log,
	}
}

type facetResult struct {
	Items      bson.RawValue `bson:"items"`
	TotalCount []struct {
		Count int64 `bson:"count"`
	} `bson:"totalCount"`
}

func (e *MongoPlanExecutor[T]) Execute(ctx context.Context, plan domain_query.Plan) ([]T, int64, error) {
	pipeline, err := BuildPipeline(plan)
	if err != nil {
		return nil, 0, err
	}

	coll := e.db.Collection(e.collection)
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("database query failed: %w", err)
	}
	defer func(cursor mongo.Cursor, ctx context.Context) {
		if err := cursor.Close(ctx); err != nil {
			e.log.Warn("error closing cursor", zap.String("collection", e.collection), zap.Error(err))
		}
	}(cursor, ctx)

	var results []facetResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, fmt.Errorf("decode error: %w", err)
	}

	items := make([]T, 0)
	if len(results) == 0 {
		return items, 0, nil
	}

	if results[0].Items.Type != 0 {
		if err := results[0].Items.Unmarshal(&items); err != nil {
			return nil, 0, fmt.Errorf("decode items error: %w", err)
		}
	}

	var total int64
	if len(results[0].TotalCount) > 0 {
		total = results[0].TotalCount[0].Count
	}

	return items, total, nil
}

// BuildPipeline translates plan stages to aggregation stages.
func BuildPipeline(plan domain_query.Plan) ([]bson.D, error) {
	pipeline := make([]bson.D, 0, len(plan.Stages)+1)
	projected := false

	for _, stage := range plan.Stages {
		switch s := stage.(type) {
		case domain_query.MatchStage:
			pipeline = append(pipeline, bson.D{{Key: "$match", Value: matchDocument(s.Where)}})

		case domain_query.LookupStage:
			pipeline = append(pipeline,
				bson.D{{Key: "$lookup", Value: bson.D{
					{Key: "from", Value: s.From},
					{Key: "localField", Value: s.LocalField},
					{Key: "foreignField", Value: s.ForeignField},
					{Key: "as", Value: s.As},
				}}},
				bson.D{{Key: "$unwind", Value: bson.D{
					{Key: "path", Value: "$" + s.As},
					{Key: "preserveNullAndEmptyArrays", Value: true},
				}}},
			)

		case domain_query.ProjectStage:
			projected = true
			pipeline = append(pipeline, bson.D{{Key: "$addFields", Value: bson.D{
				{Key: s.Field, Value: bson.D{{Key: "$toLower", Value: "$" + s.Source}}},
			}}})

		case domain_query.SortStage:
			// _id 保证排序稳定
			sort := bson.D{{Key: s.Field, Value: int(s.Order)}}
			if s.Field != "_id" {
				sort = append(sort, bson.E{Key: "_id", Value: 1})
			}
			pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})

		case domain_query.PaginateStage:
			items := []bson.D{
				{{Key: "$skip", Value: s.Skip}},
				{{Key: "$limit", Value: s.Limit}},
			}
			exclude := bson.D{}
			if projected {
				exclude = append(exclude, bson.E{Key: domain_query.SortFieldLower, Value: 0})
			}
			for _, f := range s.Omit {
				exclude = append(exclude, bson.E{Key: f, Value: 0})
			}
			if len(exclude) > 0 {
				items = append(items, bson.D{{Key: "$project", Value: exclude}})
			}
			pipeline = append(pipeline, bson.D{{Key: "$facet", Value: bson.D{
				{Key: "items", Value: items},
				{Key: "totalCount", Value: []bson.D{
					{{Key: "$count", Value: "count"}},
				}},
			}}})

		default:
			return nil, fmt.Errorf("unsupported stage %T", stage)
		}
	}

	return pipeline, nil
}

func matchDocument(where domain_query.And) bson.D {
	switch len(where) {
	case 0:
		return bson.D{}
	case 1:
		return conditionDocument(where[0])
	}
	return conditionDocument(where)
}

func conditionDocument(c domain_query.Condition) bson.D {
	switch cond := c.(type) {
	case domain_query.Eq:
		return bson.D{{Key: cond.Field, Value: cond.Value}}
	case domain_query.Contains:
		return bson.D{{Key: cond.Field, Value: bson.D{
			{Key: "$regex", Value: domain_query.SubstringPattern(cond.Term)},
			{Key: "$options", Value: "i"},
		}}}
	case domain_query.And:
		parts := make(bson.A, 0, len(cond))
		for _, child := range cond {
			parts = append(parts, conditionDocument(child))
		}
		return bson.D{{Key: "$and", Value: parts}}
	case domain_query.Or:
		parts := make(bson.A, 0, len(cond))
		for _, child := range cond {
			parts = append(parts, conditionDocument(child))
		}
		return bson.D{{Key: "$or", Value: parts}}
	}
	return bson.D{}
}
