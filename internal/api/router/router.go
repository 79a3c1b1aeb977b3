package router

import (
	"database/sql"
	"net/http"

	"github.com/5w1tchy/catalog-api/internal/api/handlers"
	"github.com/5w1tchy/catalog-api/internal/api/handlers/authors"
	"github.com/5w1tchy/catalog-api/internal/api/handlers/books"
	"github.com/5w1tchy/catalog-api/internal/api/middlewares"
	"github.com/5w1tchy/catalog-api/internal/cache/statscache"
	jwtutil "github.com/5w1tchy/catalog-api/internal/security/jwt"
	authorstore "github.com/5w1tchy/catalog-api/internal/store/authors"
	bookstore "github.com/5w1tchy/catalog-api/internal/store/books"
)

// Deps are the process-wide collaborators built once at startup. Everything
// but DB is optional and must be a true nil when absent.
type Deps struct {
	DB     *sql.DB
	Cache  *statscache.Cache
	Covers books.CoverStorage
	Tokens middlewares.TokenParser

	// WriteLimit throttles mutating routes on top of the global limiter.
	WriteLimit middlewares.Middleware
}

func Router(d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handlers.Healthz)
	mux.Handle("GET /readyz", handlers.Readyz(d.DB))

	write := func(next http.Handler) http.Handler {
		return middlewares.Chain(next,
			d.WriteLimit,
			middlewares.RequireToken(d.Tokens),
			middlewares.RequireScope(jwtutil.ScopeWrite),
		)
	}

	as := authorstore.New(d.DB)
	bs := bookstore.New(d.DB)

	authors.New(as, bs, d.Covers, d.Cache).Routes(mux, write)
	books.New(bs, d.Covers, d.Cache).Routes(mux, write)

	return mux
}
