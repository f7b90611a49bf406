package httpx

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
	apperrors "github.com/SlowBrain97/E-Commerce/internal/errors"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// parseIntQuery returns the integer value of a query param or a default.
// It is tolerant of missing/invalid values.
func parseIntQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// ParsePageParams reads page, size, sortBy and sortDirection and clamps
// them to sane bounds. Pages are zero-based as on the backend.
func ParsePageParams(r *http.Request) model.PageParams {
	page := parseIntQuery(r, "page", 0)
	size := parseIntQuery(r, "size", defaultPageSize)
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 1
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	q := r.URL.Query()
	return model.PageParams{Page: page, Size: size, SortBy: q.Get("sortBy"), SortDirection: q.Get("sortDirection")}
}

// pathID parses a numeric chi URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || v <= 0 {
		return 0, apperrors.ValidationField(name, "Invalid "+name)
	}
	return v, nil
}
