package authors

import (
	"context"
	"database/sql"
	"strings"

	"github.com/5w1tchy/catalog-api/internal/apperr"
	"github.com/5w1tchy/catalog-api/internal/models"
	"github.com/5w1tchy/catalog-api/internal/store/shared"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	authorCols    = `id, name, email, bio, nationality, birth_year, created_at, updated_at`
	authorColsA   = `a.id, a.name, a.email, a.bio, a.nationality, a.birth_year, a.created_at, a.updated_at`
	bookColsPlain = `id, title, isbn, description, published_year, genre, pages, author_id, cover_key, created_at, updated_at`
)

type Store struct{ db *sqlx.DB }

func New(db *sql.DB) *Store { return &Store{db: sqlx.NewDb(db, "pgx")} }

// List returns every author with a book count, ordered by name.
// search matches name, email, bio and nationality case-insensitively.
func (s *Store) List(ctx context.Context, search string) ([]models.AuthorSummary, error) {
	q := `SELECT ` + authorColsA + `, COUNT(b.id) AS book_count
	FROM authors a
	LEFT JOIN books b ON b.author_id = a.id`
	var args []any
	if strings.TrimSpace(search) != "" {
		args = append(args, shared.Contains(search))
		q += `
	WHERE a.name ILIKE $1 OR a.email ILIKE $1 OR a.bio ILIKE $1 OR a.nationality ILIKE $1`
	}
	q += `
	GROUP BY a.id
	ORDER BY a.name ASC, a.id ASC`

	out := []models.AuthorSummary{}
	if err := s.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, apperr.FromDB(err, "author")
	}
	return out, nil
}

// Find loads a single author without books.
func (s *Store) Find(ctx context.Context, id string) (models.Author, error) {
	var a models.Author
	err := s.db.GetContext(ctx, &a, `SELECT `+authorCols+` FROM authors WHERE id = $1`, id)
	return a, apperr.FromDB(err, "author")
}

// Get loads an author with all books, newest publication first.
func (s *Store) Get(ctx context.Context, id string) (models.AuthorDetail, error) {
	var d models.AuthorDetail
	a, err := s.Find(ctx, id)
	if err != nil {
		return d, err
	}
	d.Author = a
	d.Books = []models.Book{}
	if err := s.db.SelectContext(ctx, &d.Books, `
	SELECT `+bookColsPlain+`
	FROM books
	WHERE author_id = $1
	ORDER BY published_year DESC NULLS LAST, id DESC`, id); err != nil {
		return d, apperr.FromDB(err, "author")
	}
	d.BookCount = len(d.Books)
	return d, nil
}

func (s *Store) Create(ctx context.Context, in models.NewAuthor) (models.Author, error) {
	var a models.Author
	err := s.db.GetContext(ctx, &a, `
	INSERT INTO authors (id, name, email, bio, nationality, birth_year)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING `+authorCols,
		uuid.NewString(), in.Name, in.Email, in.Bio, in.Nationality, in.BirthYear,
	)
	return a, apperr.FromDB(err, "author")
}

// Update applies only the supplied fields of p.
func (s *Store) Update(ctx context.Context, id string, p models.AuthorPatch) (models.Author, error) {
	var sets shared.Sets
	shared.AddField(&sets, "name", p.Name)
	shared.AddField(&sets, "email", p.Email)
	shared.AddField(&sets, "bio", p.Bio)
	shared.AddField(&sets, "nationality", p.Nationality)
	shared.AddField(&sets, "birth_year", p.BirthYear)
	if sets.Len() == 0 {
		return models.Author{}, apperr.Invalid("no fields to update")
	}

	q := `UPDATE authors SET ` + sets.SQL() + ` WHERE id = ` + sets.Arg(id) + ` RETURNING ` + authorCols
	var a models.Author
	err := s.db.GetContext(ctx, &a, q, sets.Args...)
	return a, apperr.FromDB(err, "author")
}

// Delete removes the author; books go with it (ON DELETE CASCADE). It
// returns the cover keys of the removed books so the caller can drop the
// objects.
func (s *Store) Delete(ctx context.Context, id string) ([]string, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperr.FromDB(err, "author")
	}
	defer tx.Rollback()

	keys := []string{}
	if err := tx.SelectContext(ctx, &keys, `
	SELECT cover_key FROM books
	WHERE author_id = $1 AND cover_key IS NOT NULL
	ORDER BY id
	FOR UPDATE`, id); err != nil {
		return nil, apperr.FromDB(err, "author")
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return nil, apperr.FromDB(err, "author")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, apperr.FromDB(err, "author")
	}
	if n == 0 {
		return nil, apperr.NotFound("author not found")
	}
	if err := tx.Commit(); err != nil {
		return nil, apperr.FromDB(err, "author")
	}
	return keys, nil
}
