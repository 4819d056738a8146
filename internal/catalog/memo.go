package catalog

import "github.com/five82/tally/internal/inventory"

// Memo caches the last Derive result. Callers identify the product list by a
// version that changes whenever the list is replaced, so the cache never
// compares slices element by element.
type Memo struct {
	valid   bool
	version uint64
	query   Query
	result  Result
}

// Derive returns the cached result when version and q match the previous
// call, and recomputes otherwise.
func (m *Memo) Derive(version uint64, products []inventory.Product, q Query) Result {
	if m.valid && m.version == version && m.query == q {
		return m.result
	}
	m.result = Derive(products, q)
	m.version = version
	m.query = q
	m.valid = true
	return m.result
}
