package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	mw "github.com/5w1tchy/catalog-api/internal/api/middlewares"
)

func TestHPP_FiltersQuery(t *testing.T) {
	var got url.Values
	h := mw.HPP(mw.DefaultHPPOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
	}))

	req := httptest.NewRequest(http.MethodGet, "/books/search?genre=Fantasy&genre=Horror&page=2&debug=1", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{"Fantasy"}, got["genre"])
	assert.Equal(t, "2", got.Get("page"))
	assert.NotContains(t, got, "debug")
}

func TestHPP_KeepsCatalogParams(t *testing.T) {
	var got url.Values
	h := mw.HPP(mw.DefaultHPPOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
	}))

	req := httptest.NewRequest(http.MethodGet,
		"/books/search?search=dune&authorName=herbert&limit=5&sortBy=title&order=asc", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	for _, k := range []string{"search", "authorName", "limit", "sortBy", "order"} {
		assert.Contains(t, got, k)
	}
}
