// Package authorstats derives per-author metrics from a book list.
package authorstats

import (
	"math"

	"github.com/5w1tchy/catalog-api/internal/models"
)

// Compute expects books ordered by published year ascending, the store's
// order. firstBook and latestBook are taken positionally; ties on page count
// keep the earliest book in that order.
func Compute(author models.Author, books []models.Book) models.AuthorStats {
	st := models.AuthorStats{
		AuthorID:   author.ID,
		AuthorName: author.Name,
		TotalBooks: len(books),
		Genres:     []string{},
	}
	if len(books) == 0 {
		return st
	}

	first, last := books[0], books[len(books)-1]
	st.FirstBook = &models.BookYear{Title: first.Title, Year: first.PublishedYear}
	st.LatestBook = &models.BookYear{Title: last.Title, Year: last.PublishedYear}

	longest, shortest := 0, 0
	sum := 0
	seen := map[string]struct{}{}
	for i, b := range books {
		p := b.PageCount()
		sum += p
		if p > books[longest].PageCount() {
			longest = i
		}
		if p < books[shortest].PageCount() {
			shortest = i
		}
		if b.Genre == nil {
			continue
		}
		if _, ok := seen[*b.Genre]; !ok {
			seen[*b.Genre] = struct{}{}
			st.Genres = append(st.Genres, *b.Genre)
		}
	}

	st.AveragePages = int(math.Round(float64(sum) / float64(len(books))))
	st.LongestBook = &models.BookPages{Title: books[longest].Title, Pages: books[longest].PageCount()}
	st.ShortestBook = &models.BookPages{Title: books[shortest].Title, Pages: books[shortest].PageCount()}
	return st
}
