package books

import (
	"context"

	"github.com/5w1tchy/catalog-api/internal/apperr"
	"github.com/5w1tchy/catalog-api/internal/models"
	"github.com/5w1tchy/catalog-api/internal/store/shared"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
)

var dialect = goqu.Dialect("postgres")

// sortColumns is the sortBy allow-list.
var sortColumns = map[string]string{
	"title":         "b.title",
	"publishedYear": "b.published_year",
	"createdAt":     "b.created_at",
}

var bookColumns = []any{
	goqu.I("b.id"), goqu.I("b.title"), goqu.I("b.isbn"), goqu.I("b.description"),
	goqu.I("b.published_year"), goqu.I("b.genre"), goqu.I("b.pages"), goqu.I("b.author_id"),
	goqu.I("b.cover_key"), goqu.I("b.created_at"), goqu.I("b.updated_at"),
	goqu.I("a.name"), goqu.I("a.email"),
}

func fromBooks() *goqu.SelectDataset {
	return dialect.
		From(goqu.T("books").As("b")).
		Join(goqu.T("authors").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("b.author_id")))).
		Prepared(true)
}

func listQuery(f models.BookFilter) (string, []any, error) {
	var where []exp.Expression
	if f.Genre != "" {
		where = append(where, goqu.I("b.genre").Eq(f.Genre))
	}
	if f.AuthorID != "" {
		where = append(where, goqu.I("b.author_id").Eq(f.AuthorID))
	}
	if f.Search != "" {
		p := shared.Contains(f.Search)
		where = append(where, goqu.Or(
			goqu.I("b.title").ILike(p),
			goqu.I("b.description").ILike(p),
			goqu.I("b.genre").ILike(p),
			goqu.I("b.isbn").ILike(p),
		))
	}
	return fromBooks().
		Select(bookColumns...).
		Where(where...).
		Order(goqu.I("b.created_at").Desc(), goqu.I("b.id").Desc()).
		ToSQL()
}

func searchWhere(q models.BookQuery) []exp.Expression {
	var where []exp.Expression
	if q.Search != "" {
		p := shared.Contains(q.Search)
		where = append(where, goqu.Or(
			goqu.I("b.title").ILike(p),
			goqu.I("b.description").ILike(p),
			goqu.I("b.isbn").ILike(p),
		))
	}
	if q.Genre != "" {
		where = append(where, goqu.I("b.genre").Eq(q.Genre))
	}
	if q.AuthorName != "" {
		where = append(where, goqu.I("a.name").ILike(shared.Contains(q.AuthorName)))
	}
	return where
}

// Search runs the count query, then fetches one sorted page. Pages past the
// end come back with empty data and accurate metadata.
func (s *Store) Search(ctx context.Context, q models.BookQuery) (models.BookPage, error) {
	col, ok := sortColumns[q.SortBy]
	if !ok {
		return models.BookPage{}, apperr.InvalidSortField("invalid sort field: " + q.SortBy)
	}
	where := searchWhere(q)

	countSQL, countArgs, err := fromBooks().Select(goqu.COUNT(goqu.Star())).Where(where...).ToSQL()
	if err != nil {
		return models.BookPage{}, apperr.Internal("build book count query", err)
	}
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return models.BookPage{}, apperr.FromDB(err, "book")
	}

	page := models.BookPage{Data: []models.Book{}, Pagination: Paginate(q.Page, q.Limit, total)}
	// Offset is only computed for pages that exist, so a huge page can't wrap.
	if total == 0 || q.Page > page.Pagination.TotalPages {
		return page, nil
	}

	var order []exp.OrderedExpression
	if q.Order == "asc" {
		order = []exp.OrderedExpression{goqu.I(col).Asc().NullsLast(), goqu.I("b.id").Asc()}
	} else {
		order = []exp.OrderedExpression{goqu.I(col).Desc().NullsLast(), goqu.I("b.id").Desc()}
	}

	dataSQL, dataArgs, err := fromBooks().
		Select(bookColumns...).
		Where(where...).
		Order(order...).
		Limit(uint(q.Limit)).
		Offset(uint(q.Offset())).
		ToSQL()
	if err != nil {
		return models.BookPage{}, apperr.Internal("build book search query", err)
	}
	rows, err := s.db.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		return models.BookPage{}, apperr.FromDB(err, "book")
	}
	if page.Data, err = collect(rows); err != nil {
		return models.BookPage{}, apperr.FromDB(err, "book")
	}
	return page, nil
}

// Paginate derives the envelope metadata; limit must be positive.
func Paginate(page, limit, total int) models.Pagination {
	totalPages := (total + limit - 1) / limit
	return models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
