package domain_query

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage      = 1
	DefaultLimit     = 10
	DefaultSortField = "createdAt"
)

// Query string parameter names shared by every paginated listing.
const (
	ParamPage       = "page"
	ParamLimit      = "limit"
	ParamSortField  = "sortField"
	ParamSortOrder  = "sortOrder"
	ParamSearchTerm = "searchTerm"
)

type SortOrder int

const (
	Ascending  SortOrder = 1
	Descending SortOrder = -1
)

func (o SortOrder) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// ParseSortOrder maps "desc" to Descending; anything else is Ascending.
func ParseSortOrder(s string) SortOrder {
	if strings.TrimSpace(s) == "desc" {
		return Descending
	}
	return Ascending
}

// Filter is an exact-match constraint applied conjunctively.
type Filter struct {
	Field string
	Value interface{}
}

type QueryRequest struct {
	Page       int
	Limit      int
	SortField  string
	SortOrder  SortOrder
	SearchTerm string
	Filters    []Filter
}

// NewQueryRequest coerces raw parameter values. Page and limit take the leading
// integer of the value; missing or non-positive values fall back to the defaults
// rather than failing.
func NewQueryRequest(page, limit, sortField, sortOrder, searchTerm string) QueryRequest {
	sortField = strings.TrimSpace(sortField)
	if sortField == "" {
		sortField = DefaultSortField
	}
	return QueryRequest{
		Page:       positiveOr(page, DefaultPage),
		Limit:      positiveOr(limit, DefaultLimit),
		SortField:  sortField,
		SortOrder:  ParseSortOrder(sortOrder),
		SearchTerm: strings.TrimSpace(searchTerm),
	}
}

// FromValues reads a QueryRequest from query string values. Equality filters are
// taken from the parameters the registry declares; blank values are ignored.
func FromValues(values url.Values, registry FieldRegistry) QueryRequest {
	req := NewQueryRequest(
		values.Get(ParamPage),
		values.Get(ParamLimit),
		values.Get(ParamSortField),
		values.Get(ParamSortOrder),
		values.Get(ParamSearchTerm),
	)
	if strings.TrimSpace(values.Get(ParamSortField)) == "" && registry.DefaultSortField != "" {
		req.SortField = registry.DefaultSortField
	}
	for _, fp := range registry.FilterParams {
		req = req.WithFilter(fp.Field, values.Get(fp.Param))
	}
	return req
}

// WithFilter returns a copy of r with an additional equality filter. Blank string
// values are dropped.
func (r QueryRequest) WithFilter(field string, value interface{}) QueryRequest {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return r
		}
		value = s
	}
	filters := make([]Filter, 0, len(r.Filters)+1)
	filters = append(filters, r.Filters...)
	r.Filters = append(filters, Filter{Field: field, Value: value})
	return r
}

// Skip is (page-1)*limit, saturated at math.MaxInt64.
func (r QueryRequest) Skip() int64 {
	page, limit := int64(r.Page), int64(r.Limit)
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return (page - 1) * limit
}

// positiveOr reads the leading integer of raw ("2.5" is 2, "20px" is 20) and
// falls back when there is none or it is not positive.
func positiveOr(raw string, fallback int) int {
	n, ok := leadingInt(raw)
	if !ok || n <= 0 {
		return fallback
	}
	return n
}

func leadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// out of range: saturate with the sign
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return n, true
}
