package models

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type BookPage struct {
	Data       []Book     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// BookQuery is a validated search request; Page and Limit are already clamped.
type BookQuery struct {
	Search     string
	Genre      string
	AuthorName string
	Page       int
	Limit      int
	SortBy     string
	Order      string
}

// Offset is the number of rows skipped before the requested page.
func (q BookQuery) Offset() int { return (q.Page - 1) * q.Limit }
