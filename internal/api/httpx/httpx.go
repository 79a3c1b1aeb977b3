package httpx

import (
	stdjson "encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/5w1tchy/catalog-api/internal/apperr"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// exposeDetails adds the error cause to client bodies; development only.
var exposeDetails atomic.Bool

// ExposeDetails is set once at startup from APP_ENV.
func ExposeDetails(on bool) { exposeDetails.Store(on) }

type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type MessageBody struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, v any) { WriteJSON(w, http.StatusOK, v) }

func Created(w http.ResponseWriter, v any) { WriteJSON(w, http.StatusCreated, v) }

func Message(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusOK, MessageBody{Message: msg})
}

// Error maps err onto the taxonomy, logs it with the request id and writes
// {error, details?}. Only the taxonomy message reaches the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	ae := apperr.As(err)
	status := apperr.Status(ae)

	rid := r.Header.Get("X-Request-ID")
	if status >= http.StatusInternalServerError {
		log.Printf("[api] rid=%s %s %s: %s: %v", rid, r.Method, r.URL.Path, ae.Code, err)
	} else {
		log.Printf("[api] rid=%s %s %s: %s: %s", rid, r.Method, r.URL.Path, ae.Code, ae.Message)
	}

	body := ErrorBody{Error: ae.Message}
	if body.Error == "" {
		body.Error = http.StatusText(status)
	}
	if exposeDetails.Load() && ae.Cause != nil {
		body.Details = ae.Cause.Error()
	}
	WriteJSON(w, status, body)
}

// ErrorStatus writes an error outside the taxonomy (401, 429, 503, ...).
func ErrorStatus(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorBody{Error: msg})
}

// DecodeJSON reads one JSON object into dst. Malformed or oversized bodies
// are INVALID_INPUT. Decoding stays on encoding/json so reader errors such as
// *http.MaxBytesError come back unchanged.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperr.Invalid("request body is required")
	}
	err := stdjson.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		return apperr.Invalid("request body too large")
	case errors.Is(err, io.EOF):
		return apperr.Invalid("request body is required")
	default:
		return &apperr.Error{Code: apperr.CodeInvalidInput, Message: "invalid JSON body", Cause: err}
	}
}
