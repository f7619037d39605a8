package paging

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// PagedQuery encapsulates paging, filtering, and sorting preferences shared by list reads.
type PagedQuery struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
	Filters   map[string]string
}

// Normalize returns a sanitized copy applying defaults and bounds.
func (q PagedQuery) Normalize() PagedQuery {
	normalized := q
	if normalized.Page <= 0 {
		normalized.Page = 1
	}
	if normalized.Limit <= 0 {
		normalized.Limit = DefaultLimit
	}
	if normalized.Limit > MaxLimit {
		normalized.Limit = MaxLimit
	}

	normalized.Search = strings.TrimSpace(normalized.Search)
	normalized.SortBy = strings.TrimSpace(normalized.SortBy)
	normalized.SortOrder = strings.ToUpper(strings.TrimSpace(normalized.SortOrder))

	if len(normalized.Filters) > 0 {
		normalized.Filters = sanitizeFilters(normalized.Filters)
	}

	return normalized
}

// WithFilter returns a copy carrying the extra filter; blank values are ignored.
func (q PagedQuery) WithFilter(key, value string) PagedQuery {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return q
	}
	filters := make(map[string]string, len(q.Filters)+1)
	for k, v := range q.Filters {
		filters[k] = v
	}
	filters[key] = value
	q.Filters = filters
	return q
}

// CanonicalKey builds a stable cache scope for the combination of paging parameters.
func (q PagedQuery) CanonicalKey() string {
	normalized := q.Normalize()
	search := strings.ToLower(normalized.Search)
	sortBy := strings.ToLower(normalized.SortBy)
	filtersKey := canonicalFiltersKey(normalized.Filters)

	var builder strings.Builder
	builder.Grow(len(search) + len(sortBy) + len(filtersKey) + 48)
	builder.WriteString("page=")
	builder.WriteString(strconv.Itoa(normalized.Page))
	builder.WriteString("&limit=")
	builder.WriteString(strconv.Itoa(normalized.Limit))
	builder.WriteString("&search=")
	builder.WriteString(search)
	builder.WriteString("&sortBy=")
	builder.WriteString(sortBy)
	builder.WriteString("&sortOrder=")
	builder.WriteString(normalized.SortOrder)
	if filtersKey != "" {
		builder.WriteString("&filters=")
		builder.WriteString(filtersKey)
	}
	return builder.String()
}

// ToURLValues returns normalized URL query parameters ready for REST calls.
// aliases maps lowercase filter keys onto the parameter names the backend expects.
func (q PagedQuery) ToURLValues(aliases map[string]string) url.Values {
	normalized := q.Normalize()
	values := url.Values{}
	values.Set("page", strconv.Itoa(normalized.Page))
	values.Set("limit", strconv.Itoa(normalized.Limit))
	if normalized.Search != "" {
		values.Set("q", normalized.Search)
	}
	if normalized.SortBy != "" {
		values.Set("sortBy", normalized.SortBy)
	}
	if normalized.SortOrder != "" {
		values.Set("sortOrder", normalized.SortOrder)
	}
	for key, value := range normalized.Filters {
		if aliased, ok := aliases[key]; ok && strings.TrimSpace(aliased) != "" {
			key = strings.TrimSpace(aliased)
		}
		values.Set(key, value)
	}
	return values
}

func sanitizeFilters(filters map[string]string) map[string]string {
	sanitized := make(map[string]string, len(filters))
	for key, value := range filters {
		trimmedKey := strings.TrimSpace(key)
		trimmedValue := strings.TrimSpace(value)
		if trimmedKey == "" || trimmedValue == "" {
			continue
		}
		sanitized[strings.ToLower(trimmedKey)] = trimmedValue
	}
	if len(sanitized) == 0 {
		return nil
	}
	return sanitized
}

func canonicalFiltersKey(filters map[string]string) string {
	if len(filters) == 0 {
		return ""
	}
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for index, key := range keys {
		if index > 0 {
			builder.WriteString(";")
		}
		builder.WriteString(key)
		builder.WriteString("=")
		builder.WriteString(filters[key])
	}
	return builder.String()
}
