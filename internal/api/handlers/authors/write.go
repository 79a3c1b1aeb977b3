package authors

import (
	"net/http"

	"github.com/5w1tchy/catalog-api/internal/api/httpx"
	"github.com/5w1tchy/catalog-api/internal/models"
	"github.com/5w1tchy/catalog-api/internal/validate"
)

// POST /authors
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in validate.AuthorInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Error(w, r, err)
		return
	}
	na, err := validate.NewAuthor(in)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	a, err := h.authors.Create(r.Context(), na)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	h.bump(r)
	httpx.Created(w, a)
}

// PUT /authors/{id}
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var in validate.AuthorInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Error(w, r, err)
		return
	}
	p, err := validate.AuthorPatch(in)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	a, err := h.authors.Update(r.Context(), r.PathValue("id"), p)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	h.bump(r)
	httpx.OK(w, a)
}

// DELETE /authors/{id}; books go with the author (FK cascade) and their
// cover objects are removed afterwards.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	keys, err := h.authors.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	h.dropCovers(r, keys)
	h.bump(r)
	httpx.Message(w, "Author deleted successfully")
}

// POST /authors/{id}/books
func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	var in validate.BookInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Error(w, r, err)
		return
	}
	in.AuthorID = models.Some(r.PathValue("id"))
	nb, err := validate.NewBook(in)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	b, err := h.books.Create(r.Context(), nb)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	h.bump(r)
	httpx.Created(w, b)
}
