package entity

import (
	"strings"

	"tradepulse/pkg/common"
)

// Selector is the value governing which news subset is fetched. Exactly
// one arm is authoritative at any time: either a category filter or a
// free-text query. The constructors are the only way to build one, so an
// inconsistent intermediate state (both arms active) cannot exist.
type Selector struct {
	Category string
	Query    string
}

// DefaultSelector is the state at startup: no category filter, the
// neutral seed query.
func DefaultSelector() Selector {
	return Selector{Category: common.CategoryAll, Query: common.DefaultNewsQuery}
}

// SelectCategory activates a category filter and resets the free-text
// query to its neutral value. The "all" sentinel (or an empty tag) means
// no filter, which falls back to the default query.
func SelectCategory(tag string) Selector {
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == common.CategoryAll {
		return DefaultSelector()
	}
	return Selector{Category: tag, Query: common.DefaultNewsQuery}
}

// SelectQuery activates a free-text search and forces the category back
// to "all". An empty or default query collapses to the default selector.
func SelectQuery(query string) Selector {
	query = strings.TrimSpace(query)
	if query == "" || query == common.DefaultNewsQuery {
		return DefaultSelector()
	}
	return Selector{Category: common.CategoryAll, Query: query}
}

// IsCategory reports whether the category arm is authoritative.
func (s Selector) IsCategory() bool {
	return s.Category != common.CategoryAll
}

// CacheKey returns a stable key identifying the selection criteria.
func (s Selector) CacheKey() string {
	if s.IsCategory() {
		return "category:" + s.Category
	}
	return "query:" + s.Query
}
