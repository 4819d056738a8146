package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ID is the server-assigned product identifier. The service may encode it as a
// JSON number or a JSON string; the original text is kept either way and
// written back in the same form.
type ID struct {
	text    string
	numeric bool
}

// NumericID builds an ID that round-trips as a JSON number.
func NumericID(n int64) ID {
	return ID{text: strconv.FormatInt(n, 10), numeric: true}
}

// StringID builds an ID that round-trips as a JSON string.
func StringID(s string) ID {
	return ID{text: s}
}

// String returns the identifier as it appears in request paths.
func (id ID) String() string {
	return id.text
}

// IsZero reports whether the ID was never assigned.
func (id ID) IsZero() bool {
	return id.text == ""
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.text), nil
	}
	return json.Marshal(id.text)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ID{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID{text: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID{text: n.String(), numeric: true}
	return nil
}

// Product mirrors one record of /products.
type Product struct {
	ID       ID              `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// MarshalJSON writes price as a bare JSON number, which is what the service
// stores; decimal's default encoding is a quoted string.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       ID          `json:"id"`
		Name     string      `json:"name"`
		Quantity int         `json:"quantity"`
		Price    json.Number `json:"price"`
	}{p.ID, p.Name, p.Quantity, json.Number(p.Price.String())})
}

// Stats mirrors the payload returned by /stats.
type Stats struct {
	TotalProducts int             `json:"totalProducts"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	LowStockCount int             `json:"lowStockCount"`
}

// ProductInput is the body of create and update requests.
type ProductInput struct {
	Name     string          `json:"name" validate:"required"`
	Quantity int             `json:"quantity" validate:"gte=0"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
}

// MarshalJSON implements json.Marshaler.
func (in ProductInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name     string      `json:"name"`
		Quantity int         `json:"quantity"`
		Price    json.Number `json:"price"`
	}{in.Name, in.Quantity, json.Number(in.Price.String())})
}

// Product returns the full record sent on PUT, keyed by id.
func (in ProductInput) Product(id ID) Product {
	return Product{ID: id, Name: in.Name, Quantity: in.Quantity, Price: in.Price}
}
