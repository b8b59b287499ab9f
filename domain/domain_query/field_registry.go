package domain_query

import "strings"

// FilterParam binds a query string parameter to an equality-filtered field.
type FilterParam struct {
	Param string
	Field string
}

// FieldRegistry is the static, per-entity configuration of the listing pipeline.
type FieldRegistry struct {
	// StringFields sort case-insensitively through a derived lower-cased value.
	StringFields []string
	// SearchFields form the OR-group matched by the search term.
	SearchFields []string
	FilterParams []FilterParam
	// HiddenFields are never returned and may not be used as sort keys
	// (e.g. password hashes). Dotted paths address joined documents.
	HiddenFields     []string
	DefaultSortField string
	Joins            []LookupStage
}

func (r FieldRegistry) IsStringField(field string) bool {
	return contains(r.StringFields, field)
}

// SortKey resolves the requested sort field. Operator-like paths and hidden fields
// fall back to the default sort field. Every other name, known or not, is returned
// unchanged and sorts on its raw value.
func (r FieldRegistry) SortKey(field string) string {
	if !addressable(field) || r.isHidden(field) {
		if r.DefaultSortField != "" {
			return r.DefaultSortField
		}
		return DefaultSortField
	}
	return field
}

func (r FieldRegistry) isHidden(field string) bool {
	for _, h := range r.HiddenFields {
		if field == h || strings.HasPrefix(field, h+".") {
			return true
		}
	}
	return false
}

// addressable reports whether field is a plain dotted path: no empty segment,
// no segment starting with '$', no NUL byte.
func addressable(field string) bool {
	if field == "" || strings.ContainsRune(field, 0) {
		return false
	}
	for _, part := range strings.Split(field, ".") {
		if part == "" || strings.HasPrefix(part, "$") {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
