package domain

import "errors"

var ErrPageOutOfRange = errors.New("page number exceeds total pages")

// PageRequest is a 1-based offset page.
type PageRequest struct {
	Number int
	Size   int
}

func (p PageRequest) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p PageRequest) Valid() bool {
	return p.Number >= 1 && p.Size >= 1
}

type Page[T any] struct {
	Items  []T
	Total  int64
	Number int
	Size   int
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// Unpaged selects every row.
var Unpaged = PageRequest{Number: 1, Size: -1}
