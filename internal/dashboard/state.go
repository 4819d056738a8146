package dashboard

import (
	"strconv"

	"github.com/five82/tally/internal/catalog"
	"github.com/five82/tally/internal/inventory"
	"github.com/five82/tally/internal/state"
)

// Field identifies one input of the product form.
type Field int

const (
	FieldName Field = iota
	FieldQuantity
	FieldPrice
)

// Fields lists the form inputs in tab order.
var Fields = []Field{FieldName, FieldQuantity, FieldPrice}

func (f Field) String() string {
	switch f {
	case FieldQuantity:
		return "Quantity"
	case FieldPrice:
		return "Price"
	default:
		return "Name"
	}
}

// Form holds the raw text of the three product inputs.
type Form struct {
	Name     string
	Quantity string
	Price    string
}

// Get returns the text of field.
func (f Form) Get(field Field) string {
	switch field {
	case FieldQuantity:
		return f.Quantity
	case FieldPrice:
		return f.Price
	default:
		return f.Name
	}
}

// With returns a copy of f with field set to value.
func (f Form) With(field Field, value string) Form {
	switch field {
	case FieldQuantity:
		f.Quantity = value
	case FieldPrice:
		f.Price = value
	default:
		f.Name = value
	}
	return f
}

// Parse coerces the form into a request payload.
func (f Form) Parse() (inventory.ProductInput, error) {
	return inventory.ParseInput(f.Name, f.Quantity, f.Price)
}

// EditBuffer is the modal's working copy of one product. It holds text, not a
// reference to the stored product.
type EditBuffer struct {
	ID inventory.ID
	Form
}

// NewEditBuffer copies p into a buffer.
func NewEditBuffer(p inventory.Product) EditBuffer {
	return EditBuffer{
		ID: p.ID,
		Form: Form{
			Name:     p.Name,
			Quantity: strconv.Itoa(p.Quantity),
			Price:    p.Price.String(),
		},
	}
}

// State is everything the dashboard shows that is not owned by the store.
type State struct {
	Snapshot state.Snapshot

	Search  string
	Sort    catalog.SortConfig
	Page    int
	PerPage int

	// Pending counts requests issued and not yet finished; Loading is
	// Pending > 0.
	Pending int
	Loading bool

	Create Form

	Editing bool
	Edit    EditBuffer

	ConfirmingDelete bool
	PendingDelete    inventory.ID
}

// NewState returns the initial dashboard state. One request is already
// pending because the first refresh is issued before anything is drawn.
func NewState(perPage int) State {
	if perPage <= 0 {
		perPage = catalog.DefaultPerPage
	}
	return State{
		Sort:    catalog.DefaultSort(),
		Page:    1,
		PerPage: perPage,
		Pending: 1,
		Loading: true,
	}
}

func (s State) begin() State {
	s.Pending++
	s.Loading = true
	return s
}

func (s State) finish() State {
	s.Pending = max(s.Pending-1, 0)
	s.Loading = s.Pending > 0
	return s
}

// Query is the pipeline input for the current state.
func (s State) Query() catalog.Query {
	return catalog.Query{
		Search: s.Search,
		Sort:   s.Sort,
		Page:   catalog.Page{Current: s.Page, PerPage: s.PerPage},
	}
}

// View derives the visible page without caching.
func (s State) View() catalog.Result {
	return catalog.Derive(s.Snapshot.Products, s.Query())
}

// TotalPages counts pages of the filtered list.
func (s State) TotalPages() int {
	return catalog.TotalPages(len(catalog.Filter(s.Snapshot.Products, s.Search)), s.PerPage)
}

// ModalOpen reports whether the edit or delete modal is showing.
func (s State) ModalOpen() bool {
	return s.Editing || s.ConfirmingDelete
}
