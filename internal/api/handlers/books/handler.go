package books

import (
	"context"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/5w1tchy/catalog-api/internal/apperr"
	"github.com/5w1tchy/catalog-api/internal/cache/statscache"
	"github.com/5w1tchy/catalog-api/internal/models"
)

// Store is the book half of the data gateway.
type Store interface {
	Get(ctx context.Context, id int64) (models.Book, error)
	List(ctx context.Context, f models.BookFilter) ([]models.Book, error)
	Search(ctx context.Context, q models.BookQuery) (models.BookPage, error)
	Create(ctx context.Context, in models.NewBook) (models.Book, error)
	Update(ctx context.Context, id int64, p models.BookPatch) (models.Book, error)
	Delete(ctx context.Context, id int64) (*string, error)
	SetCover(ctx context.Context, id int64, key string) (*string, error)
	CoverKey(ctx context.Context, id int64) (string, error)
}

// CoverStorage is the object bucket holding cover images.
type CoverStorage interface {
	PutObject(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PresignGet(ctx context.Context, key string) (string, error)
	DeleteObject(ctx context.Context, key string) error
}

type Handler struct {
	store  Store
	covers CoverStorage
	stats  *statscache.Cache
}

// New wires the book endpoints. covers and cache may be nil; cover routes
// then answer 503 and stats caching is off.
func New(s Store, covers CoverStorage, c *statscache.Cache) *Handler {
	return &Handler{store: s, covers: covers, stats: c}
}

// Routes registers the book endpoints; write wraps mutating routes.
func (h *Handler) Routes(mux *http.ServeMux, write func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /books", h.list)
	mux.Handle("POST /books", write(http.HandlerFunc(h.create)))
	mux.HandleFunc("GET /books/search", h.search)
	mux.HandleFunc("GET /books/{id}", h.get)
	mux.Handle("PUT /books/{id}", write(http.HandlerFunc(h.update)))
	mux.Handle("DELETE /books/{id}", write(http.HandlerFunc(h.delete)))
	mux.Handle("PUT /books/{id}/cover", write(http.HandlerFunc(h.uploadCover)))
	mux.HandleFunc("GET /books/{id}/cover", h.cover)
}

// bookID parses the {id} path segment; book ids are positive integers.
func bookID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.Invalid("invalid book id")
	}
	return id, nil
}

func (h *Handler) bump(r *http.Request) {
	if err := h.stats.Bump(r.Context()); err != nil {
		log.Printf("[books] rid=%s %v", r.Header.Get("X-Request-ID"), err)
	}
}
