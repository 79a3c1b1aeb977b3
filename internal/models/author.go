package models

import "time"

type Author struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Bio         *string   `json:"bio" db:"bio"`
	Nationality *string   `json:"nationality" db:"nationality"`
	BirthYear   *int      `json:"birthYear" db:"birth_year"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// AuthorSummary is a listing row.
type AuthorSummary struct {
	Author
	BookCount int `json:"bookCount" db:"book_count"`
}

// AuthorDetail is an author with every book, newest publication first.
type AuthorDetail struct {
	Author
	Books     []Book `json:"books"`
	BookCount int    `json:"bookCount"`
}

// AuthorRef is the trimmed author embedded in book payloads.
type AuthorRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type NewAuthor struct {
	Name        string
	Email       string
	Bio         *string
	Nationality *string
	BirthYear   *int
}

// AuthorPatch only touches supplied fields; Null clears nullable columns.
type AuthorPatch struct {
	Name        Field[string]
	Email       Field[string]
	Bio         Field[string]
	Nationality Field[string]
	BirthYear   Field[int]
}

func (p AuthorPatch) Empty() bool {
	return !p.Name.Set && !p.Email.Set && !p.Bio.Set && !p.Nationality.Set && !p.BirthYear.Set
}
