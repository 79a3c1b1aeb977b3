package books

import (
	"context"
	"database/sql"
	"strings"

	"github.com/5w1tchy/catalog-api/internal/apperr"
	"github.com/5w1tchy/catalog-api/internal/models"
	"github.com/5w1tchy/catalog-api/internal/store/dbx"
	"github.com/5w1tchy/catalog-api/internal/store/shared"
)

const selectBook = `
SELECT b.id, b.title, b.isbn, b.description, b.published_year, b.genre, b.pages,
       b.author_id, b.cover_key, b.created_at, b.updated_at, a.name, a.email
FROM books b
JOIN authors a ON a.id = b.author_id`

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (models.Book, error) {
	var b models.Book
	var ref models.AuthorRef
	err := row.Scan(
		&b.ID, &b.Title, &b.ISBN, &b.Description, &b.PublishedYear, &b.Genre, &b.Pages,
		&b.AuthorID, &b.CoverKey, &b.CreatedAt, &b.UpdatedAt, &ref.Name, &ref.Email,
	)
	if err != nil {
		return models.Book{}, err
	}
	ref.ID = b.AuthorID
	b.Author = &ref
	return b, nil
}

func collect(rows *sql.Rows) ([]models.Book, error) {
	defer rows.Close()
	out := []models.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func getBook(ctx context.Context, g dbx.Getter, id int64) (models.Book, error) {
	return scanBook(g.QueryRowContext(ctx, selectBook+` WHERE b.id = $1`, id))
}

func (s *Store) Get(ctx context.Context, id int64) (models.Book, error) {
	b, err := getBook(ctx, s.db, id)
	return b, apperr.FromDB(err, "book")
}

// List is the unpaginated catalog listing, newest first.
func (s *Store) List(ctx context.Context, f models.BookFilter) ([]models.Book, error) {
	q, args, err := listQuery(f)
	if err != nil {
		return nil, apperr.Internal("build book list query", err)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, apperr.FromDB(err, "book")
	}
	out, err := collect(rows)
	return out, apperr.FromDB(err, "book")
}

// ListByAuthor returns an author's books, newest publication first.
func (s *Store) ListByAuthor(ctx context.Context, authorID string) ([]models.Book, error) {
	return s.byAuthor(ctx, authorID, `b.published_year DESC NULLS LAST, b.id DESC`)
}

// Chronology returns an author's books oldest first, undated books last.
// The stats aggregator relies on this order.
func (s *Store) Chronology(ctx context.Context, authorID string) ([]models.Book, error) {
	return s.byAuthor(ctx, authorID, `b.published_year ASC NULLS LAST, b.id ASC`)
}

func (s *Store) byAuthor(ctx context.Context, authorID, order string) ([]models.Book, error) {
	rows, err := s.db.QueryContext(ctx, selectBook+` WHERE b.author_id = $1 ORDER BY `+order, authorID)
	if err != nil {
		return nil, apperr.FromDB(err, "book")
	}
	out, err := collect(rows)
	return out, apperr.FromDB(err, "book")
}

// Create inserts and re-reads the row with its author in one transaction.
// A missing author surfaces as NOT_FOUND through the foreign key.
func (s *Store) Create(ctx context.Context, in models.NewBook) (models.Book, error) {
	var out models.Book
	err := dbx.WithinTx(ctx, s.db, nil, func(tx *sql.Tx) error {
		var id int64
		if err := tx.QueryRowContext(ctx, `
		INSERT INTO books (title, isbn, description, published_year, genre, pages, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
			in.Title, in.ISBN, in.Description, in.PublishedYear, in.Genre, in.Pages, in.AuthorID,
		).Scan(&id); err != nil {
			return err
		}
		b, err := getBook(ctx, tx, id)
		out = b
		return err
	})
	return out, apperr.FromDB(err, "book")
}

// Update applies only the supplied fields of p.
func (s *Store) Update(ctx context.Context, id int64, p models.BookPatch) (models.Book, error) {
	var sets shared.Sets
	shared.AddField(&sets, "title", p.Title)
	shared.AddField(&sets, "isbn", p.ISBN)
	shared.AddField(&sets, "description", p.Description)
	shared.AddField(&sets, "published_year", p.PublishedYear)
	shared.AddField(&sets, "genre", p.Genre)
	shared.AddField(&sets, "pages", p.Pages)
	shared.AddField(&sets, "author_id", p.AuthorID)
	if sets.Len() == 0 {
		return models.Book{}, apperr.Invalid("no fields to update")
	}
	q := `UPDATE books SET ` + sets.SQL() + ` WHERE id = ` + sets.Arg(id) + ` RETURNING id`

	var out models.Book
	err := dbx.WithinTx(ctx, s.db, nil, func(tx *sql.Tx) error {
		var got int64
		if err := tx.QueryRowContext(ctx, q, sets.Args...).Scan(&got); err != nil {
			return err
		}
		b, err := getBook(ctx, tx, got)
		out = b
		return err
	})
	return out, apperr.FromDB(err, "book")
}

// Delete removes the book and returns its cover key, if any, so the caller
// can clean up object storage.
func (s *Store) Delete(ctx context.Context, id int64) (*string, error) {
	var key *string
	err := s.db.QueryRowContext(ctx, `DELETE FROM books WHERE id = $1 RETURNING cover_key`, id).Scan(&key)
	return key, apperr.FromDB(err, "book")
}

// SetCover stores key on the book and returns the key it replaced.
func (s *Store) SetCover(ctx context.Context, id int64, key string) (*string, error) {
	var prev *string
	err := s.db.QueryRowContext(ctx, `
	UPDATE books b SET cover_key = $1, updated_at = now()
	FROM (SELECT id, cover_key FROM books WHERE id = $2 FOR UPDATE) old
	WHERE b.id = old.id
	RETURNING old.cover_key`, key, id).Scan(&prev)
	return prev, apperr.FromDB(err, "book")
}

// CoverKey returns the stored cover key; a book without a cover is NOT_FOUND.
func (s *Store) CoverKey(ctx context.Context, id int64) (string, error) {
	var key sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT cover_key FROM books WHERE id = $1`, id).Scan(&key)
	if err != nil {
		return "", apperr.FromDB(err, "book")
	}
	if !key.Valid || strings.TrimSpace(key.String) == "" {
		return "", apperr.NotFound("book has no cover")
	}
	return key.String, nil
}
