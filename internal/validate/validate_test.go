package validate

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/5w1tchy/catalog-api/internal/apperr"
	"github.com/5w1tchy/catalog-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISBN(t *testing.T) {
	valid := map[string]string{
		"978-0-306-40615-7": "9780306406157",
		" 0 306 40615 2 ":   "0306406152",
		"080442957X":        "080442957X",
		"0-8044-2957-x":     "080442957x",
	}
	for in, want := range valid {
		got, err := ISBN(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "   ", "12345", "97803064061570", "X804429571", "abcdefghij"} {
		_, err := ISBN(in)
		assert.ErrorIs(t, err, apperr.ErrInvalidInput, in)
	}
}

func TestTitle(t *testing.T) {
	got, err := Title("  Dune  ")
	require.NoError(t, err)
	assert.Equal(t, "Dune", got)

	_, err = Title("  ab ")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = Title("")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestEmail(t *testing.T) {
	got, err := Email(" ursula@example.org ")
	require.NoError(t, err)
	assert.Equal(t, "ursula@example.org", got)

	for _, in := range []string{"", "plain", "a@b", "a b@example.org", "@example.org"} {
		_, err := Email(in)
		assert.ErrorIs(t, err, apperr.ErrInvalidInput, in)
	}
}

func TestSanitize(t *testing.T) {
	// e + combining acute composes to U+00E9
	assert.Equal(t, "caf\u00e9", Sanitize(" cafe\u0301\x00 "))
	assert.Nil(t, Optional("   "))
	assert.Equal(t, "x", *Optional(" x "))
}

func TestPages(t *testing.T) {
	cases := []struct {
		in   any
		want *int
		err  bool
	}{
		{nil, nil, false},
		{"", nil, false},
		{"  ", nil, false},
		{float64(120), ptr(120), false},
		{"88", ptr(88), false},
		{json.Number("42"), ptr(42), false},
		{float64(0), nil, true},
		{"-3", nil, true},
		{"many", nil, true},
		{true, nil, true},
		{"2147483647", ptr(2147483647), false},
		{"3000000000", nil, true},
		{float64(3e9), nil, true},
		{json.Number("1e300"), nil, true},
		{"99999999999999999999", nil, true},
	}
	for _, c := range cases {
		got, err := Pages(c.in)
		if c.err {
			assert.ErrorIs(t, err, apperr.ErrInvalidInput, "%v", c.in)
			continue
		}
		require.NoError(t, err, "%v", c.in)
		assert.Equal(t, c.want, got, "%v", c.in)
	}
}

func TestYear(t *testing.T) {
	got, err := Year("publishedYear", "1965")
	require.NoError(t, err)
	assert.Equal(t, 1965, *got)

	got, err = Year("publishedYear", float64(0))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = Year("publishedYear", "-20")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = Year("birthYear", "nineteen")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestYearOutOfRange(t *testing.T) {
	for _, in := range []any{float64(1e300), "3000000000", json.Number("5000000000")} {
		got, err := Year("publishedYear", in)
		assert.ErrorIs(t, err, apperr.ErrInvalidInput, "%v", in)
		assert.Nil(t, got, "%v", in)
	}

	got, err := Year("publishedYear", float64(-1e300))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNewBook(t *testing.T) {
	var in BookInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": " The Left Hand of Darkness ",
		"isbn": "978-0-441-47812-5",
		"description": "",
		"publishedYear": "1969",
		"genre": "Science Fiction",
		"pages": 304,
		"authorId": "a1"
	}`), &in))

	nb, err := NewBook(in)
	require.NoError(t, err)
	assert.Equal(t, "The Left Hand of Darkness", nb.Title)
	assert.Equal(t, "9780441478125", nb.ISBN)
	assert.Nil(t, nb.Description)
	assert.Equal(t, 1969, *nb.PublishedYear)
	assert.Equal(t, 304, *nb.Pages)
	assert.Equal(t, "a1", nb.AuthorID)
}

func TestNewBookRejects(t *testing.T) {
	bodies := []string{
		`{"isbn":"0306406152","authorId":"a1"}`,
		`{"title":"Dune","isbn":"123","authorId":"a1"}`,
		`{"title":"Dune","isbn":"0306406152"}`,
		`{"title":"Dune","isbn":"0306406152","authorId":"a1","pages":0}`,
		`{"title":"Dune","isbn":"0306406152","authorId":"a1","publishedYear":"soon"}`,
	}
	for _, body := range bodies {
		var in BookInput
		require.NoError(t, json.Unmarshal([]byte(body), &in))
		_, err := NewBook(in)
		assert.ErrorIs(t, err, apperr.ErrInvalidInput, body)
	}
}

func TestBookPatch(t *testing.T) {
	var in BookInput
	require.NoError(t, json.Unmarshal([]byte(`{"genre":null,"pages":"","publishedYear":2001}`), &in))

	p, err := BookPatch(in)
	require.NoError(t, err)
	assert.False(t, p.Title.Set)
	assert.True(t, p.Genre.Null)
	assert.True(t, p.Pages.Null)
	assert.Equal(t, models.Some(2001), p.PublishedYear)

	_, err = BookPatch(BookInput{})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	in = BookInput{}
	require.NoError(t, json.Unmarshal([]byte(`{"title":""}`), &in))
	_, err = BookPatch(in)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestAuthorPatch(t *testing.T) {
	var in AuthorInput
	require.NoError(t, json.Unmarshal([]byte(`{"bio":"  ","birthYear":0,"email":" le.guin@example.org "}`), &in))

	p, err := AuthorPatch(in)
	require.NoError(t, err)
	assert.True(t, p.Bio.Null)
	assert.True(t, p.BirthYear.Null)
	assert.Equal(t, "le.guin@example.org", p.Email.Value)
	assert.False(t, p.Name.Set)

	in = AuthorInput{Email: models.Some("nope")}
	_, err = AuthorPatch(in)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	in = AuthorInput{Name: models.Null[string]()}
	_, err = AuthorPatch(in)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestNewAuthor(t *testing.T) {
	a, err := NewAuthor(AuthorInput{
		Name:        models.Some(" Octavia Butler "),
		Email:       models.Some("ob@example.org"),
		Nationality: models.Some(""),
		BirthYear:   models.Some[any]("1947"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Octavia Butler", a.Name)
	assert.Nil(t, a.Nationality)
	assert.Equal(t, 1947, *a.BirthYear)

	_, err = NewAuthor(AuthorInput{Email: models.Some("ob@example.org")})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestSearchQuery(t *testing.T) {
	q, err := SearchQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, models.BookQuery{Page: 1, Limit: 10, SortBy: "createdAt", Order: "desc"}, q)

	q, err = SearchQuery(url.Values{
		"page": {"3"}, "limit": {"500"}, "sortBy": {"title"}, "order": {"ASC"},
		"search": {" dune "}, "authorName": {"herbert"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 50, q.Limit)
	assert.Equal(t, "asc", q.Order)
	assert.Equal(t, "dune", q.Search)
	assert.Equal(t, 100, q.Offset())

	q, err = SearchQuery(url.Values{"page": {"-2"}, "limit": {"-7"}, "order": {"sideways"}})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 1, q.Limit)
	assert.Equal(t, "desc", q.Order)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(""))
	assert.Equal(t, 1, ClampPage("0"))
	assert.Equal(t, 7, ClampPage(" 7 "))
	assert.Equal(t, MaxPage, ClampPage("1000000000000000000"))

	q := models.BookQuery{Page: ClampPage("1000000000000000000"), Limit: MaxLimit}
	assert.Positive(t, q.Offset())
}

func TestSearchQueryRejectsUnknownSort(t *testing.T) {
	_, err := SearchQuery(url.Values{"sortBy": {"unknownField"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.ErrorIs(t, err, apperr.ErrInvalidSortField)

	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperr.CodeInvalidSortField, ae.Code)
}

func ptr(n int) *int { return &n }
