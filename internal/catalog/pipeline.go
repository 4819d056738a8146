package catalog

import (
	"slices"
	"strings"

	"github.com/five82/tally/internal/inventory"
)

// DefaultPerPage is the page size used when none is configured.
const DefaultPerPage = 5

// Page selects one window of the derived list. Current is 1-based.
type Page struct {
	Current int
	PerPage int
}

// Query bundles every input of the pipeline except the product list.
type Query struct {
	Search string
	Sort   SortConfig
	Page   Page
}

// Result is the visible page plus the metadata the pager needs.
type Result struct {
	Items      []inventory.Product
	Matched    int // products left after filtering
	TotalPages int
	Page       int
}

// Filter keeps products whose name contains term, ignoring case. An empty term
// keeps everything. The input slice is never modified.
func Filter(products []inventory.Product, term string) []inventory.Product {
	out := make([]inventory.Product, 0, len(products))
	if term == "" {
		return append(out, products...)
	}
	needle := strings.ToLower(term)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a sorted copy of products. Equal keys keep their input order.
func Sort(products []inventory.Product, cfg SortConfig) []inventory.Product {
	out := slices.Clone(products)
	cmp := cfg.compare()
	slices.SortStableFunc(out, cmp)
	return out
}

// TotalPages is ceil(n / perPage); zero items means zero pages.
func TotalPages(n, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if n <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// Paginate returns the slice [(cur-1)*per, cur*per) of products, clipped to
// the list. Pages outside the list produce an empty window; clamping is the
// caller's job.
func Paginate(products []inventory.Product, page Page) []inventory.Product {
	per := page.PerPage
	if per <= 0 {
		per = DefaultPerPage
	}
	if page.Current < 1 {
		return []inventory.Product{}
	}
	start := (page.Current - 1) * per
	if start >= len(products) {
		return []inventory.Product{}
	}
	end := min(start+per, len(products))
	return slices.Clone(products[start:end])
}

// Derive runs filter, sort and paginate in order.
func Derive(products []inventory.Product, q Query) Result {
	matched := Sort(Filter(products, q.Search), q.Sort)
	return Result{
		Items:      Paginate(matched, q.Page),
		Matched:    len(matched),
		TotalPages: TotalPages(len(matched), q.Page.PerPage),
		Page:       q.Page.Current,
	}
}

// ClampPage bounds current to [1, max(totalPages, 1)].
func ClampPage(current, totalPages int) int {
	upper := max(totalPages, 1)
	switch {
	case current < 1:
		return 1
	case current > upper:
		return upper
	default:
		return current
	}
}
