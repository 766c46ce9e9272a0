package utils

import "strconv"

// Paginator splits Count objects into pages of PerPage items
type Paginator struct {
	Count   int64
	PerPage int
}

// Page is a single, always valid, page of a Paginator
type Page struct {
	Number    int
	NumPages  int
	Count     int64
	Offset    int
	Limit     int
	Paginator *Paginator
}

func (p *Paginator) NumPages() int {
	if p.PerPage <= 0 || p.Count <= 0 {
		return 1
	}
	return int((p.Count + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// GetPage never fails: a missing or invalid number gives the first page,
// a number past the end gives the last one
func (p *Paginator) GetPage(raw string) Page {
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		number = 1
	}
	numPages := p.NumPages()
	if number > numPages {
		number = numPages
	}
	return Page{
		Number:    number,
		NumPages:  numPages,
		Count:     p.Count,
		Offset:    (number - 1) * p.PerPage,
		Limit:     p.PerPage,
		Paginator: p,
	}
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p Page) NextPageNumber() int {
	return p.Number + 1
}

func (p Page) PreviousPageNumber() int {
	return p.Number - 1
}

// PageRange returns 1..NumPages, for rendering page links
func (p Page) PageRange() []int {
	result := make([]int, p.NumPages)
	for i := range result {
		result[i] = i + 1
	}
	return result
}
