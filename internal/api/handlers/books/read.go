package books

import (
	"net/http"
	"strings"

	"github.com/5w1tchy/catalog-api/internal/api/httpx"
	"github.com/5w1tchy/catalog-api/internal/models"
	"github.com/5w1tchy/catalog-api/internal/validate"
)

// GET /books?genre=&authorId=&search=
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.store.List(r.Context(), models.BookFilter{
		Genre:    strings.TrimSpace(q.Get("genre")),
		AuthorID: strings.TrimSpace(q.Get("authorId")),
		Search:   strings.TrimSpace(q.Get("search")),
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, out)
}

// GET /books/search
func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	bq, err := validate.SearchQuery(r.URL.Query())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	page, err := h.store.Search(r.Context(), bq)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, page)
}

// GET /books/{id}
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	b, err := h.store.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.OK(w, b)
}
