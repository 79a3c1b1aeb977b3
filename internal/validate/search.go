package validate

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/5w1tchy/catalog-api/internal/apperr"
	"github.com/5w1tchy/catalog-api/internal/models"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
	// MaxPage keeps (page-1)*limit well inside int64.
	MaxPage      = math.MaxInt32
)

var v = validator.New()

type sortSpec struct {
	SortBy string `validate:"oneof=title publishedYear createdAt"`
}

// SortFields lists the accepted sortBy values.
var SortFields = []string{"title", "publishedYear", "createdAt"}

// SearchQuery reads /books/search parameters. Page and limit never fail,
// they fall back or clamp; an unknown sortBy is rejected.
func SearchQuery(q url.Values) (models.BookQuery, error) {
	out := models.BookQuery{
		Search:     Sanitize(q.Get("search")),
		Genre:      Sanitize(q.Get("genre")),
		AuthorName: Sanitize(q.Get("authorName")),
		Page:       ClampPage(q.Get("page")),
		Limit:      ClampLimit(q.Get("limit")),
		SortBy:     strings.TrimSpace(q.Get("sortBy")),
		Order:      "desc",
	}
	if out.SortBy == "" {
		out.SortBy = "createdAt"
	}
	if err := v.Struct(sortSpec{SortBy: out.SortBy}); err != nil {
		return out, apperr.InvalidSortField("invalid sort field: " + out.SortBy)
	}
	if strings.EqualFold(strings.TrimSpace(q.Get("order")), "asc") {
		out.Order = "asc"
	}
	return out, nil
}

// ClampPage: unparsable or < 1 -> 1; anything above MaxPage -> MaxPage.
func ClampPage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return DefaultPage
	}
	return min(n, MaxPage)
}

// ClampLimit: missing, unparsable or 0 -> default; otherwise clamped to 1..MaxLimit.
func ClampLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n == 0 {
		return DefaultLimit
	}
	return min(MaxLimit, max(1, n))
}
