package books

import (
	"log"
	"net/http"

	"github.com/5w1tchy/catalog-api/internal/api/httpx"
	"github.com/5w1tchy/catalog-api/internal/validate"
)

// POST /books
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in validate.BookInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Error(w, r, err)
		return
	}
	nb, err := validate.NewBook(in)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	b, err := h.store.Create(r.Context(), nb)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	h.bump(r)
	httpx.Created(w, b)
}

// PUT /books/{id}
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	var in validate.BookInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Error(w, r, err)
		return
	}
	p, err := validate.BookPatch(in)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	b, err := h.store.Update(r.Context(), id, p)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	h.bump(r)
	httpx.OK(w, b)
}

// DELETE /books/{id}
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	coverKey, err := h.store.Delete(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	h.bump(r)

	// The row is gone either way; a leftover object is only wasted space.
	if coverKey != nil && h.covers != nil {
		if err := h.covers.DeleteObject(r.Context(), *coverKey); err != nil {
			log.Printf("[books] rid=%s cover cleanup for book %d: %v", r.Header.Get("X-Request-ID"), id, err)
		}
	}
	httpx.Message(w, "Book deleted successfully")
}
