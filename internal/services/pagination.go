package services

import (
	"github.com/samber/lo"
)

const JobsPerPage = 10

type PageLink struct {
	Number int
	URL    string
	Active bool
}

// Pagination describes the page controls. Previous and Next carry no URL
// when they are disabled, so a click on them can't navigate anywhere.
type Pagination struct {
	Current     int
	Total       int
	Pages       []PageLink
	PreviousURL string
	NextURL     string
}

func NewPagination(current, total int, urlFor func(page int) string) Pagination {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}

	p := Pagination{
		Current: current,
		Total:   total,
		Pages: lo.Map(lo.RangeFrom(1, total), func(number int, _ int) PageLink {
			return PageLink{Number: number, URL: urlFor(number), Active: number == current}
		}),
	}

	if p.HasPrevious() {
		p.PreviousURL = urlFor(current - 1)
	}
	if p.HasNext() {
		p.NextURL = urlFor(current + 1)
	}
	return p
}

func (p Pagination) HasPrevious() bool {
	return p.Current > 1
}

func (p Pagination) HasNext() bool {
	return p.Current < p.Total
}

// paginate returns the items of the given 1-indexed page and the page count.
func paginate[T any](items []T, page, perPage int) ([]T, int) {
	total := (len(items) + perPage - 1) / perPage
	if total < 1 {
		total = 1
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}, total
	}
	end := min(start+perPage, len(items))
	return items[start:end], total
}
