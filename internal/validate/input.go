package validate

import (
	"github.com/5w1tchy/catalog-api/internal/apperr"
	"github.com/5w1tchy/catalog-api/internal/models"
)

// AuthorInput is the request body for author create and update.
// Numeric fields take numbers or numeric strings.
type AuthorInput struct {
	Name        models.Field[string] `json:"name"`
	Email       models.Field[string] `json:"email"`
	Bio         models.Field[string] `json:"bio"`
	Nationality models.Field[string] `json:"nationality"`
	BirthYear   models.Field[any]    `json:"birthYear"`
}

type BookInput struct {
	Title         models.Field[string] `json:"title"`
	ISBN          models.Field[string] `json:"isbn"`
	Description   models.Field[string] `json:"description"`
	PublishedYear models.Field[any]    `json:"publishedYear"`
	Genre         models.Field[string] `json:"genre"`
	Pages         models.Field[any]    `json:"pages"`
	AuthorID      models.Field[string] `json:"authorId"`
}

var errNoFields = apperr.Invalid("no fields to update")

func NewAuthor(in AuthorInput) (models.NewAuthor, error) {
	var out models.NewAuthor
	var err error
	if out.Name, err = Required("name", in.Name.Value); err != nil {
		return out, err
	}
	if out.Email, err = Email(in.Email.Value); err != nil {
		return out, err
	}
	if out.BirthYear, err = Year("birthYear", in.BirthYear.Value); err != nil {
		return out, err
	}
	out.Bio = Optional(in.Bio.Value)
	out.Nationality = Optional(in.Nationality.Value)
	return out, nil
}

// AuthorPatch keeps only supplied fields. Blank optional strings clear the column.
func AuthorPatch(in AuthorInput) (models.AuthorPatch, error) {
	var p models.AuthorPatch
	if in.Name.Set {
		s, err := Required("name", in.Name.Value)
		if err != nil {
			return p, err
		}
		p.Name = models.Some(s)
	}
	if in.Email.Set {
		s, err := Email(in.Email.Value)
		if err != nil {
			return p, err
		}
		p.Email = models.Some(s)
	}
	if in.Bio.Set {
		p.Bio = optionalField(in.Bio)
	}
	if in.Nationality.Set {
		p.Nationality = optionalField(in.Nationality)
	}
	if in.BirthYear.Set {
		y, err := Year("birthYear", in.BirthYear.Value)
		if err != nil {
			return p, err
		}
		p.BirthYear = intField(y)
	}
	if p.Empty() {
		return p, errNoFields
	}
	return p, nil
}

func NewBook(in BookInput) (models.NewBook, error) {
	var out models.NewBook
	var err error
	if out.Title, err = Title(in.Title.Value); err != nil {
		return out, err
	}
	if out.ISBN, err = ISBN(in.ISBN.Value); err != nil {
		return out, err
	}
	if out.AuthorID, err = Required("authorId", in.AuthorID.Value); err != nil {
		return out, err
	}
	if out.PublishedYear, err = Year("publishedYear", in.PublishedYear.Value); err != nil {
		return out, err
	}
	if out.Pages, err = Pages(in.Pages.Value); err != nil {
		return out, err
	}
	out.Description = Optional(in.Description.Value)
	out.Genre = Optional(in.Genre.Value)
	return out, nil
}

func BookPatch(in BookInput) (models.BookPatch, error) {
	var p models.BookPatch
	if in.Title.Set {
		s, err := Title(in.Title.Value)
		if err != nil {
			return p, err
		}
		p.Title = models.Some(s)
	}
	if in.ISBN.Set {
		s, err := ISBN(in.ISBN.Value)
		if err != nil {
			return p, err
		}
		p.ISBN = models.Some(s)
	}
	if in.AuthorID.Set {
		s, err := Required("authorId", in.AuthorID.Value)
		if err != nil {
			return p, err
		}
		p.AuthorID = models.Some(s)
	}
	if in.Description.Set {
		p.Description = optionalField(in.Description)
	}
	if in.Genre.Set {
		p.Genre = optionalField(in.Genre)
	}
	if in.PublishedYear.Set {
		y, err := Year("publishedYear", in.PublishedYear.Value)
		if err != nil {
			return p, err
		}
		p.PublishedYear = intField(y)
	}
	if in.Pages.Set {
		n, err := Pages(in.Pages.Value)
		if err != nil {
			return p, err
		}
		p.Pages = intField(n)
	}
	if p.Empty() {
		return p, errNoFields
	}
	return p, nil
}

func optionalField(f models.Field[string]) models.Field[string] {
	if f.Null {
		return models.Null[string]()
	}
	if s := Optional(f.Value); s != nil {
		return models.Some(*s)
	}
	return models.Null[string]()
}

func intField(n *int) models.Field[int] {
	if n == nil {
		return models.Null[int]()
	}
	return models.Some(*n)
}
