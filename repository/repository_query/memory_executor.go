package repository_query

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MemoryPlanExecutor interprets a query plan over documents held in memory.
// Slice order is the natural storage order.
type MemoryPlanExecutor[T any] struct {
	docs        []bson.M
	collections map[string][]bson.M
}

// NewMemoryPlanExecutor takes the documents to query and, keyed by collection
// name, the documents that lookup stages may join against.
func NewMemoryPlanExecutor[T any](docs []bson.M, collections map[string][]bson.M) *MemoryPlanExecutor[T] {
	return &MemoryPlanExecutor[T]{docs: docs, collections: collections}
}

func (e *MemoryPlanExecutor[T]) Execute(ctx context.Context, plan domain_query.Plan) ([]T, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	lower := cases.Lower(language.Und)
	fold := cases.Fold()

	view := make([]bson.M, 0, len(e.docs))
	for _, d := range e.docs {
		cp := make(bson.M, len(d)+1)
		for k, v := range d {
			cp[k] = v
		}
		view = append(view, cp)
	}

	var (
		paginated bool
		total     int64
		derived   []string
	)

	for _, stage := range plan.Stages {
		switch s := stage.(type) {
		case domain_query.MatchStage:
			kept := view[:0]
			for _, d := range view {
				if evaluate(s.Where, d, fold) {
					kept = append(kept, d)
				}
			}
			view = kept

		case domain_query.LookupStage:
			for _, d := range view {
				local, ok := lookupPath(d, s.LocalField)
				if !ok {
					continue
				}
				for _, foreign := range e.collections[s.From] {
					if fv, ok := lookupPath(foreign, s.ForeignField); ok && valuesEqual(fv, local) {
						d[s.As] = foreign
						break
					}
				}
			}

		case domain_query.ProjectStage:
			derived = append(derived, s.Field)
			for _, d := range view {
				d[s.Field] = lower.String(stringify(d, s.Source))
			}

		case domain_query.SortStage:
			sort.SliceStable(view, func(i, j int) bool {
				a, _ := lookupPath(view[i], s.Field)
				b, _ := lookupPath(view[j], s.Field)
				return compareValues(a, b)*int(s.Order) < 0
			})

		case domain_query.PaginateStage:
			paginated = true
			total = int64(len(view))
			view = window(view, s.Skip, s.Limit)
			derived = append(derived, s.Omit...)

		default:
			return nil, 0, fmt.Errorf("unsupported stage %T", stage)
		}
	}

	if !paginated {
		total = int64(len(view))
	}

	items := make([]T, 0, len(view))
	for _, d := range view {
		for _, f := range derived {
			deletePath(d, f)
		}
		raw, err := bson.Marshal(d)
		if err != nil {
			return nil, 0, fmt.Errorf("encode document: %w", err)
		}
		var item T
		if err := bson.Unmarshal(raw, &item); err != nil {
			return nil, 0, fmt.Errorf("decode document: %w", err)
		}
		items = append(items, item)
	}

	return items, total, nil
}

func window(view []bson.M, skip, limit int64) []bson.M {
	n := int64(len(view))
	if skip >= n {
		return view[:0]
	}
	end := n
	if limit > 0 && skip+limit < n {
		end = skip + limit
	}
	return view[skip:end]
}

func evaluate(c domain_query.Condition, d bson.M, fold cases.Caser) bool {
	switch cond := c.(type) {
	case domain_query.Eq:
		v, ok := lookupPath(d, cond.Field)
		return ok && valuesEqual(v, cond.Value)
	case domain_query.Contains:
		v, ok := lookupPath(d, cond.Field)
		s, isString := v.(string)
		if !ok || !isString {
			return false
		}
		return strings.Contains(fold.String(s), fold.String(cond.Term))
	case domain_query.And:
		for _, child := range cond {
			if !evaluate(child, d, fold) {
				return false
			}
		}
		return true
	case domain_query.Or:
		for _, child := range cond {
			if evaluate(child, d, fold) {
				return true
			}
		}
		return false
	}
	return false
}

func lookupPath(d bson.M, path string) (interface{}, bool) {
	var current interface{} = d
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(bson.M)
		if !ok {
			if asMap, isMap := current.(map[string]interface{}); isMap {
				m = asMap
			} else {
				return nil, false
			}
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// deletePath removes a dotted field. Nested documents are copied before the
// delete so joined source documents stay intact.
func deletePath(d bson.M, path string) {
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		delete(d, head)
		return
	}
	var child bson.M
	switch v := d[head].(type) {
	case bson.M:
		child = v
	case map[string]interface{}:
		child = v
	default:
		return
	}
	cp := make(bson.M, len(child))
	for k, v := range child {
		cp[k] = v
	}
	deletePath(cp, rest)
	d[head] = cp
}

func stringify(d bson.M, field string) string {
	v, ok := lookupPath(d, field)
	if !ok || v == nil {
		return ""
	}
	if s, isString := v.(string); isString {
		return s
	}
	return fmt.Sprint(v)
}

func valuesEqual(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders values the way the document store does: missing and null
// first, then numbers, strings, object ids, booleans and dates.
func compareValues(a, b interface{}) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return ra - rb
	}

	switch ra {
	case rankNumber:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return compareOrdered(fa, fb)
	case rankString:
		return strings.Compare(a.(string), b.(string))
	case rankObjectID:
		oa, ob := a.(primitive.ObjectID), b.(primitive.ObjectID)
		return strings.Compare(oa.Hex(), ob.Hex())
	case rankBool:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		}
		return 1
	case rankDate:
		ta, tb := toTime(a), toTime(b)
		return ta.Compare(tb)
	case rankOther:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
	return 0
}

const (
	rankNull = iota
	rankNumber
	rankString
	rankOther
	rankObjectID
	rankBool
	rankDate
)

func typeRank(v interface{}) int {
	switch v.(type) {
	case nil:
		return rankNull
	case int, int32, int64, float32, float64:
		return rankNumber
	case string:
		return rankString
	case primitive.ObjectID:
		return rankObjectID
	case bool:
		return rankBool
	case time.Time, primitive.DateTime:
		return rankDate
	}
	return rankOther
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func toTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case primitive.DateTime:
		return t.Time()
	}
	return time.Time{}
}

func compareOrdered(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
