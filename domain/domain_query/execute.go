package domain_query

import (
	"context"
	"fmt"
)

// Executor interprets a Plan against a concrete store. The page slice and the
// total count must come from the same filtered view in one operation.
type Executor[T any] interface {
	Execute(ctx context.Context, plan Plan) (items []T, totalCount int64, err error)
}

type QueryResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
}

// TotalPages is ceil(TotalCount / Limit).
func (r *QueryResult[T]) TotalPages() int64 {
	if r.Limit <= 0 {
		return 0
	}
	return (r.TotalCount + int64(r.Limit) - 1) / int64(r.Limit)
}

// Execute builds the plan for req and runs it. A store failure fails the whole
// call; no partial page is returned.
func Execute[T any](
	ctx context.Context,
	executor Executor[T],
	req QueryRequest,
	registry FieldRegistry,
	scope ...Condition,
) (*QueryResult[T], error) {
	plan := NewBuilder(registry).Build(req, scope...)

	items, total, err := executor.Execute(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("query pipeline: %w", err)
	}
	if items == nil {
		items = make([]T, 0)
	}

	var paginate PaginateStage
	for _, s := range plan.Stages {
		if p, ok := s.(PaginateStage); ok {
			paginate = p
		}
	}

	return &QueryResult[T]{
		Items:      items,
		TotalCount: total,
		Page:       pageOf(req),
		Limit:      int(paginate.Limit),
	}, nil
}

func pageOf(req QueryRequest) int {
	if req.Page <= 0 {
		return DefaultPage
	}
	return req.Page
}
