package authors

import (
	"net/http"
	"strings"

	"github.com/5w1tchy/catalog-api/internal/api/httpx"
	"github.com/5w1tchy/catalog-api/internal/authorstats"
	"github.com/5w1tchy/catalog-api/internal/models"
)

// GET /authors?search=
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, r.URL.Query().Get("search"))
}

// GET /authors/search?q=
func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, r.URL.Query().Get("q"))
}

func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, term string) {
	out, err := h.authors.List(r.Context(), strings.TrimSpace(term))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, out)
}

// GET /authors/{id}
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	a, err := h.authors.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, a)
}

// GET /authors/{id}/stats
func (h *Handler) statsFor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	sess := h.stats.Session(ctx)
	if st, ok := sess.Get(ctx, id); ok {
		httpx.OK(w, st)
		return
	}

	a, err := h.authors.Find(ctx, id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	books, err := h.books.Chronology(ctx, id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	st := authorstats.Compute(a, books)
	sess.Set(ctx, id, st)
	httpx.OK(w, st)
}

type authorBooks struct {
	Author     models.AuthorRef `json:"author"`
	TotalBooks int              `json:"totalBooks"`
	Books      []models.Book    `json:"books"`
}

// GET /authors/{id}/books
func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	a, err := h.authors.Find(ctx, id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	books, err := h.books.ListByAuthor(ctx, id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	if books == nil {
		books = []models.Book{}
	}
	httpx.OK(w, authorBooks{
		Author:     models.AuthorRef{ID: a.ID, Name: a.Name},
		TotalBooks: len(books),
		Books:      books,
	})
}
