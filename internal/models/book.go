package models

import "time"

type Book struct {
	ID            int64      `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	ISBN          string     `json:"isbn" db:"isbn"`
	Description   *string    `json:"description" db:"description"`
	PublishedYear *int       `json:"publishedYear" db:"published_year"`
	Genre         *string    `json:"genre" db:"genre"`
	Pages         *int       `json:"pages" db:"pages"`
	AuthorID      string     `json:"authorId" db:"author_id"`
	CoverKey      *string    `json:"coverKey,omitempty" db:"cover_key"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
	Author        *AuthorRef `json:"author,omitempty" db:"-"`
}

// PageCount treats a missing page count as zero.
func (b Book) PageCount() int {
	if b.Pages == nil {
		return 0
	}
	return *b.Pages
}

type NewBook struct {
	Title         string
	ISBN          string
	Description   *string
	PublishedYear *int
	Genre         *string
	Pages         *int
	AuthorID      string
}

type BookPatch struct {
	Title         Field[string]
	ISBN          Field[string]
	Description   Field[string]
	PublishedYear Field[int]
	Genre         Field[string]
	Pages         Field[int]
	AuthorID      Field[string]
}

func (p BookPatch) Empty() bool {
	return !p.Title.Set && !p.ISBN.Set && !p.Description.Set && !p.PublishedYear.Set &&
		!p.Genre.Set && !p.Pages.Set && !p.AuthorID.Set
}

// BookFilter drives the unpaginated book listing.
type BookFilter struct {
	Genre    string
	AuthorID string
	Search   string
}
