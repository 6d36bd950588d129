package services

import (
	"errors"
	"strconv"
)

// VideosPerPage is the number of cards shown per page of the video grid.
const VideosPerPage = 24

var ErrInvalidPageOffset = errors.New("Invalid offset value.")

// Pagination is one page of a listing. Offsets are -1 when there is no
// previous or next page.
type Pagination[T any] struct {
	Items      []T
	NextOffset int
	PrevOffset int
	NextPage   int
	PrevPage   int
	Page       int
}

// NewPagination expects up to VideosPerPage+1 items starting at offset; the
// extra item only signals that a next page exists.
func NewPagination[T any](offset int, items []T) Pagination[T] {
	page := Pagination[T]{
		Items:      items[:min(len(items), VideosPerPage)],
		Page:       pageOf(offset),
		NextOffset: -1,
		PrevOffset: -1,
	}

	if len(items) > VideosPerPage {
		page.NextOffset = offset + VideosPerPage
		page.NextPage = pageOf(page.NextOffset)
	}

	if offset > 0 {
		page.PrevOffset = max(offset-VideosPerPage, 0)
		page.PrevPage = pageOf(page.PrevOffset)
	}

	return page
}

func pageOf(offset int) int {
	return 1 + offset/VideosPerPage
}

// ParsePageOffset reads the offset query parameter of the grid. An empty
// value is the first page.
func ParsePageOffset(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(s)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageOffset
	}

	return offset, nil
}
