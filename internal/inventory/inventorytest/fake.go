// Package inventorytest provides an in-memory product service for tests. It
// satisfies inventory.Service directly and can also be served over HTTP with
// the same routes the real API exposes.
package inventorytest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/five82/tally/internal/inventory"
)

// ErrInjected is returned by operations configured to fail.
var ErrInjected = errors.New("injected failure")

// Fake is a concurrency-safe in-memory product service.
type Fake struct {
	mu       sync.Mutex
	products []inventory.Product
	nextID   int64
	fail     map[string]error
	calls    map[string]int
}

// Operation names accepted by FailOn and Calls.
const (
	OpList   = "list"
	OpStats  = "stats"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

var _ inventory.Service = (*Fake)(nil)

// New returns a fake seeded with products. Seed ids are kept; new ids continue
// after the largest numeric seed id.
func New(seed ...inventory.Product) *Fake {
	f := &Fake{nextID: 1, fail: map[string]error{}, calls: map[string]int{}}
	for _, p := range seed {
		if p.ID.IsZero() {
			p.ID = inventory.NumericID(f.nextID)
		}
		if n, err := strconv.ParseInt(p.ID.String(), 10, 64); err == nil && n >= f.nextID {
			f.nextID = n + 1
		}
		f.products = append(f.products, p)
	}
	return f
}

// FailOn makes op return err until cleared with a nil err.
func (f *Fake) FailOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, op)
		return
	}
	f.fail[op] = err
}

// Calls reports how many times op was invoked.
func (f *Fake) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// Products returns a copy of the stored records.
func (f *Fake) Products() []inventory.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]inventory.Product(nil), f.products...)
}

// record counts a call; callers hold f.mu.
func (f *Fake) record(op string) error {
	f.calls[op]++
	return f.fail[op]
}

// ListProducts implements inventory.Service.
func (f *Fake) ListProducts(ctx context.Context) ([]inventory.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(OpList); err != nil {
		return nil, err
	}
	out := make([]inventory.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

// FetchStats implements inventory.Service.
func (f *Fake) FetchStats(ctx context.Context) (inventory.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(OpStats); err != nil {
		return inventory.Stats{}, err
	}
	stats := inventory.Stats{TotalProducts: len(f.products), TotalValue: decimal.Zero}
	for _, p := range f.products {
		stats.TotalValue = stats.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		if p.Quantity > 0 && p.Quantity <= 10 {
			stats.LowStockCount++
		}
	}
	return stats, nil
}

// CreateProduct implements inventory.Service.
func (f *Fake) CreateProduct(ctx context.Context, in inventory.ProductInput) (inventory.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(OpCreate); err != nil {
		return inventory.Product{}, err
	}
	p := in.Product(inventory.NumericID(f.nextID))
	f.nextID++
	f.products = append(f.products, p)
	return p, nil
}

// UpdateProduct implements inventory.Service.
func (f *Fake) UpdateProduct(ctx context.Context, id inventory.ID, in inventory.ProductInput) (inventory.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(OpUpdate); err != nil {
		return inventory.Product{}, err
	}
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i] = in.Product(id)
			return f.products[i], nil
		}
	}
	return inventory.Product{}, errNotFound
}

// DeleteProduct implements inventory.Service.
func (f *Fake) DeleteProduct(ctx context.Context, id inventory.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(OpDelete); err != nil {
		return err
	}
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

var errNotFound = errors.New("product not found")

// Handler serves the fake under /api with the routes of the real service.
func (f *Fake) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		products, err := f.ListProducts(r.Context())
		writeResult(w, http.StatusOK, products, err)
	})
	mux.HandleFunc("GET /api/stats", func(w http.ResponseWriter, r *http.Request) {
		stats, err := f.FetchStats(r.Context())
		writeResult(w, http.StatusOK, stats, err)
	})
	mux.HandleFunc("POST /api/products", func(w http.ResponseWriter, r *http.Request) {
		var in inventory.ProductInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p, err := f.CreateProduct(r.Context(), in)
		writeResult(w, http.StatusCreated, p, err)
	})
	mux.HandleFunc("PUT /api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		var p inventory.Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		in := inventory.ProductInput{Name: p.Name, Quantity: p.Quantity, Price: p.Price}
		updated, err := f.UpdateProduct(r.Context(), pathID(r), in)
		writeResult(w, http.StatusOK, updated, err)
	})
	mux.HandleFunc("DELETE /api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		err := f.DeleteProduct(r.Context(), pathID(r))
		writeResult(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"}, err)
	})
	return mux
}

func pathID(r *http.Request) inventory.ID {
	raw := r.PathValue("id")
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil && !strings.HasPrefix(raw, "0") {
		return inventory.NumericID(n)
	}
	return inventory.StringID(raw)
}

func writeResult(w http.ResponseWriter, status int, body any, err error) {
	switch {
	case errors.Is(err, errNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
