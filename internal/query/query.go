// Package query filters, searches, sorts and paginates news collections.
//
// Every function here is pure: inputs are never mutated and results are
// fresh slices that share element pointers with the input.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fact-check-board/internal/models"
	"github.com/fact-check-board/internal/validation"
)

// Filter selects news items by status; FilterAll keeps everything
type Filter string

const FilterAll Filter = "all"

// ParseFilter accepts "all" or any status, rejecting anything else.
// An empty value means FilterAll.
func ParseFilter(raw string) (Filter, error) {
	if raw == "" || raw == string(FilterAll) {
		return FilterAll, nil
	}
	status, err := models.ParseStatus(raw)
	if err != nil {
		return "", &models.ValidationError{
			Field:   "filter",
			Message: fmt.Sprintf("invalid filter %q, must be one of: all, fake, not-fake, pending", raw),
		}
	}
	return Filter(status), nil
}

// SortKey orders news items. Unknown keys keep the filtered order.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortMostVotes SortKey = "most-votes"
)

// NewsParams describes one news listing request
type NewsParams struct {
	Filter     Filter
	SearchTerm string
	Sort       SortKey
	Page       int
	PageSize   int
}

// Page is one slice of a paginated collection
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
}

// News runs the filter, search, sort and paginate steps over items
func News(items []*models.NewsItem, params NewsParams) (*Page[*models.NewsItem], error) {
	if err := validation.ValidatePageSize(params.PageSize); err != nil {
		return nil, err
	}

	filtered := FilterByStatus(items, params.Filter)
	filtered = Search(filtered, params.SearchTerm)
	sorted := Sort(filtered, params.Sort)

	return Paginate(sorted, params.Page, params.PageSize)
}

// FilterByStatus keeps items whose status equals f
func FilterByStatus(items []*models.NewsItem, f Filter) []*models.NewsItem {
	out := make([]*models.NewsItem, 0, len(items))
	for _, item := range items {
		if f == "" || f == FilterAll || string(item.Status) == string(f) {
			out = append(out, item)
		}
	}
	return out
}

// Search keeps items whose topic, details or reporter contain term, ignoring case
func Search(items []*models.NewsItem, term string) []*models.NewsItem {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]*models.NewsItem(nil), items...)
	}

	out := make([]*models.NewsItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Topic), term) ||
			strings.Contains(strings.ToLower(item.ShortDetail), term) ||
			strings.Contains(strings.ToLower(item.FullDetail), term) ||
			strings.Contains(strings.ToLower(item.Reporter), term) {
			out = append(out, item)
		}
	}
	return out
}

// Sort returns a stably sorted copy of items
func Sort(items []*models.NewsItem, key SortKey) []*models.NewsItem {
	out := append([]*models.NewsItem(nil), items...)

	switch key {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	case SortMostVotes:
		sort.SliceStable(out, func(i, j int) bool { return out[i].TotalVotes > out[j].TotalVotes })
	}
	return out
}

// Paginate slices items into pages of pageSize. Pages past the end clamp to
// the last page; pages below 1 and pages of an empty set resolve to 1.
func Paginate[T any](items []T, page, pageSize int) (*Page[T], error) {
	if err := validation.ValidatePageSize(pageSize); err != nil {
		return nil, err
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	if page < 1 || totalPages == 0 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	result := &Page[T]{
		Items:      []T{},
		TotalItems: total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}
	if totalPages == 0 {
		return result, nil
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	result.Items = append(result.Items, items[start:end]...)
	return result, nil
}
