package authors

import (
	"context"
	"log"
	"net/http"

	"github.com/5w1tchy/catalog-api/internal/cache/statscache"
	"github.com/5w1tchy/catalog-api/internal/models"
)

// AuthorStore is the author half of the data gateway.
type AuthorStore interface {
	List(ctx context.Context, search string) ([]models.AuthorSummary, error)
	Find(ctx context.Context, id string) (models.Author, error)
	Get(ctx context.Context, id string) (models.AuthorDetail, error)
	Create(ctx context.Context, in models.NewAuthor) (models.Author, error)
	Update(ctx context.Context, id string, p models.AuthorPatch) (models.Author, error)
	Delete(ctx context.Context, id string) (coverKeys []string, err error)
}

// BookStore covers the per-author book reads and the nested create.
type BookStore interface {
	ListByAuthor(ctx context.Context, authorID string) ([]models.Book, error)
	Chronology(ctx context.Context, authorID string) ([]models.Book, error)
	Create(ctx context.Context, in models.NewBook) (models.Book, error)
}

// CoverRemover drops cover objects left behind by cascaded book deletes.
type CoverRemover interface {
	DeleteObject(ctx context.Context, key string) error
}

type Handler struct {
	authors AuthorStore
	books   BookStore
	covers  CoverRemover
	stats   *statscache.Cache
}

// New wires the author endpoints. A nil cache disables stats caching; nil
// covers skips object cleanup.
func New(a AuthorStore, b BookStore, covers CoverRemover, c *statscache.Cache) *Handler {
	return &Handler{authors: a, books: b, covers: covers, stats: c}
}

// Routes registers the author endpoints; write wraps mutating routes.
func (h *Handler) Routes(mux *http.ServeMux, write func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /authors", h.list)
	mux.HandleFunc("GET /authors/search", h.search)
	mux.Handle("POST /authors", write(http.HandlerFunc(h.create)))
	mux.HandleFunc("GET /authors/{id}", h.get)
	mux.Handle("PUT /authors/{id}", write(http.HandlerFunc(h.update)))
	mux.Handle("DELETE /authors/{id}", write(http.HandlerFunc(h.delete)))
	mux.HandleFunc("GET /authors/{id}/stats", h.statsFor)
	mux.HandleFunc("GET /authors/{id}/books", h.listBooks)
	mux.Handle("POST /authors/{id}/books", write(http.HandlerFunc(h.createBook)))
}

// bump invalidates cached stats after a write; failures only delay freshness
// until the TTL runs out.
func (h *Handler) bump(r *http.Request) {
	if err := h.stats.Bump(r.Context()); err != nil {
		log.Printf("[authors] rid=%s %v", r.Header.Get("X-Request-ID"), err)
	}
}

// dropCovers is best effort: a failed delete leaves an orphaned object, not
// a failed request.
func (h *Handler) dropCovers(r *http.Request, keys []string) {
	if h.covers == nil {
		return
	}
	for _, key := range keys {
		if err := h.covers.DeleteObject(r.Context(), key); err != nil {
			log.Printf("[authors] rid=%s delete cover %s: %v", r.Header.Get("X-Request-ID"), key, err)
		}
	}
}
