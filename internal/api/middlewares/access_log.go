package middlewares

import (
	"log"
	"net/http"
	"time"
)

// AccessLog writes one line per request once the handler returns.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newStatusWriter(w)
		next.ServeHTTP(rw, r)

		log.Printf("[access] method=%s path=%s status=%d bytes=%d duration_ms=%d request_id=%s",
			r.Method, r.URL.Path, rw.status, rw.bytes, time.Since(start).Milliseconds(), GetRequestID(r))
	})
}
