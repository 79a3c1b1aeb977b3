package models

type BookYear struct {
	Title string `json:"title"`
	Year  *int   `json:"year"`
}

type BookPages struct {
	Title string `json:"title"`
	Pages int    `json:"pages"`
}

type AuthorStats struct {
	AuthorID     string     `json:"authorId"`
	AuthorName   string     `json:"authorName"`
	TotalBooks   int        `json:"totalBooks"`
	FirstBook    *BookYear  `json:"firstBook"`
	LatestBook   *BookYear  `json:"latestBook"`
	AveragePages int        `json:"averagePages"`
	Genres       []string   `json:"genres"`
	LongestBook  *BookPages `json:"longestBook"`
	ShortestBook *BookPages `json:"shortestBook"`
}
