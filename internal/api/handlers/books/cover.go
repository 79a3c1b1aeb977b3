package books

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/5w1tchy/catalog-api/internal/api/httpx"
	"github.com/5w1tchy/catalog-api/internal/apperr"
	"github.com/5w1tchy/catalog-api/internal/storage/s3"
)

// MaxCoverSize caps uploaded cover images.
const MaxCoverSize = 10 << 20

type coverResponse struct {
	CoverURL  string `json:"coverUrl"`
	ObjectKey string `json:"objectKey"`
}

// PUT /books/{id}/cover (multipart field "cover")
func (h *Handler) uploadCover(w http.ResponseWriter, r *http.Request) {
	if h.covers == nil {
		httpx.ErrorStatus(w, http.StatusServiceUnavailable, "cover storage is not configured")
		return
	}
	ctx := r.Context()
	id, err := bookID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(MaxCoverSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			httpx.Error(w, r, apperr.Invalid("request body too large"))
			return
		}
		httpx.Error(w, r, &apperr.Error{Code: apperr.CodeInvalidInput, Message: "invalid multipart form", Cause: err})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("cover")
	if err != nil {
		httpx.Error(w, r, apperr.Invalid("missing cover file"))
		return
	}
	defer file.Close()

	if header.Size > MaxCoverSize {
		httpx.Error(w, r, apperr.Invalid("cover must be 10MB or smaller"))
		return
	}
	contentType := header.Header.Get("Content-Type")
	objectKey, ok := s3.CoverKey(id, contentType, time.Now())
	if !ok {
		httpx.Error(w, r, apperr.Invalid("invalid image type, must be webp, jpeg, or png"))
		return
	}

	if err := h.covers.PutObject(ctx, objectKey, contentType, file, header.Size); err != nil {
		httpx.Error(w, r, apperr.Internal("failed to upload cover", err))
		return
	}

	prev, err := h.store.SetCover(ctx, id, objectKey)
	if err != nil {
		h.dropObject(r, objectKey)
		httpx.Error(w, r, err)
		return
	}
	if prev != nil && *prev != objectKey {
		h.dropObject(r, *prev)
	}

	url, err := h.covers.PresignGet(ctx, objectKey)
	if err != nil {
		httpx.Error(w, r, apperr.Internal("cover saved but url generation failed", err))
		return
	}
	httpx.OK(w, coverResponse{CoverURL: url, ObjectKey: objectKey})
}

// GET /books/{id}/cover redirects to a short-lived presigned URL.
func (h *Handler) cover(w http.ResponseWriter, r *http.Request) {
	if h.covers == nil {
		httpx.ErrorStatus(w, http.StatusServiceUnavailable, "cover storage is not configured")
		return
	}
	id, err := bookID(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	key, err := h.store.CoverKey(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	url, err := h.covers.PresignGet(r.Context(), key)
	if err != nil {
		httpx.Error(w, r, apperr.Internal("failed to generate cover url", err))
		return
	}
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (h *Handler) dropObject(r *http.Request, key string) {
	if err := h.covers.DeleteObject(r.Context(), key); err != nil {
		log.Printf("[books] rid=%s delete cover %s: %v", r.Header.Get("X-Request-ID"), key, err)
	}
}
