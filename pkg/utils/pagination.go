package utils

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 5
	MaxLimit     = 100
)

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	PreviousPage *int  `json:"previousPage"`
	NextPage     *int  `json:"nextPage"`
	TotalItems   int64 `json:"totalItems"`
}

func Offset(limit, page int) int {
	return limit*page - limit
}

func ValidatePage(page, limit int) error {
	if page < 1 {
		return ErrInvalidPage
	}
	if limit < 1 || limit > MaxLimit {
		return ErrInvalidPageSize
	}
	return nil
}

// Paginate describes the page window; an empty result reports page 0 of 0.
func Paginate(total int64, limit, currentPage int) Pagination {
	if total <= 0 || limit <= 0 {
		return Pagination{}
	}

	p := Pagination{
		CurrentPage: currentPage,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		TotalItems:  total,
	}
	if currentPage > 1 {
		prev := currentPage - 1
		p.PreviousPage = &prev
	}
	if total-int64(currentPage*limit) > 0 {
		next := currentPage + 1
		p.NextPage = &next
	}
	return p
}
