package domain_query

import "regexp"

// Builder assembles the stage list for one entity type.
type Builder struct {
	registry FieldRegistry
}

func NewBuilder(registry FieldRegistry) *Builder {
	return &Builder{registry: registry}
}

// Build produces the plan for req. The stage order is fixed:
// Match, Lookup(s), Project (string sort fields only), Sort, Paginate.
func (b *Builder) Build(req QueryRequest, scope ...Condition) Plan {
	stages := make([]Stage, 0, 5+len(b.registry.Joins))

	stages = append(stages, MatchStage{Where: b.predicate(req, scope)})

	for _, join := range b.registry.Joins {
		stages = append(stages, join)
	}

	sortKey := b.registry.SortKey(req.SortField)
	sortBy := sortKey
	if b.registry.IsStringField(sortKey) {
		stages = append(stages, ProjectStage{Field: SortFieldLower, Source: sortKey})
		sortBy = SortFieldLower
	}

	order := req.SortOrder
	if order != Descending {
		order = Ascending
	}
	stages = append(stages, SortStage{Field: sortBy, Order: order})

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	stages = append(stages, PaginateStage{Skip: req.Skip(), Limit: int64(limit), Omit: b.omitted()})

	return Plan{Stages: stages}
}

func (b *Builder) omitted() []string {
	if len(b.registry.HiddenFields) == 0 {
		return nil
	}
	return append([]string(nil), b.registry.HiddenFields...)
}

// predicate is scope AND filters AND (search OR-group).
func (b *Builder) predicate(req QueryRequest, scope []Condition) And {
	where := make(And, 0, len(scope)+len(req.Filters)+1)
	where = append(where, scope...)

	for _, f := range req.Filters {
		where = append(where, Eq{Field: f.Field, Value: f.Value})
	}

	if req.SearchTerm != "" && len(b.registry.SearchFields) > 0 {
		group := make(Or, 0, len(b.registry.SearchFields))
		for _, field := range b.registry.SearchFields {
			group = append(group, Contains{Field: field, Term: req.SearchTerm})
		}
		where = append(where, group)
	}

	return where
}

// SubstringPattern is the regular expression matching term literally.
func SubstringPattern(term string) string {
	return regexp.QuoteMeta(term)
}
