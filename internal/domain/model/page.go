package model

import (
	"net/url"
	"strconv"
)

// Page is the backend's paginated list shape.
type Page[T any] struct {
	Data          []T   `json:"data"`
	Size          int   `json:"size"`
	Page          int   `json:"page"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	LastPage      bool  `json:"lastPage"`
}

// PageParams are the common paging and sorting query parameters.
type PageParams struct {
	Page          int
	Size          int
	SortBy        string
	SortDirection string
}

// Values encodes the non-zero parameters as a query string.
func (p PageParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		v.Set("size", strconv.Itoa(p.Size))
	}
	if p.SortBy != "" {
		v.Set("sortBy", p.SortBy)
	}
	if p.SortDirection != "" {
		v.Set("sortDirection", p.SortDirection)
	}
	return v
}
