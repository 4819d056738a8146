// Package catalog derives the visible product page from the full product list.
//
// The pipeline is three pure steps applied in order:
//
//	Filter    case-insensitive name substring; empty term keeps all
//	Sort      by name, quantity or price, ascending or descending (stable)
//	Paginate  window [(page-1)*per, page*per), TotalPages = ceil(n/per)
//
// None of the steps modify their input. Paginate does not clamp the page
// number; callers reset to page 1 when the search changes and use ClampPage
// when the list shrinks underneath them.
//
// Memo caches the last result keyed on a list version and the Query, so a
// re-render with unchanged inputs does no work.
//
// StatusFor maps a quantity to the In Stock / Low Stock / Out of Stock badge
// using LowStockThreshold, the same cutoff the service uses for lowStockCount.
package catalog
