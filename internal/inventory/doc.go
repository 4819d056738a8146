// Package inventory is the HTTP client for the remote product service and the
// wire types it exchanges.
//
// # Endpoints
//
// All paths are relative to the configured base URL (default
// http://localhost:5001/api):
//
//	GET    /products        list every product
//	GET    /stats           totalProducts, totalValue, lowStockCount
//	POST   /products        create from {name, quantity, price}
//	PUT    /products/{id}   replace a product
//	DELETE /products/{id}   remove a product
//
// Any transport error, status >= 400, or undecodable body is a failure of that
// call. Status codes and error bodies are not interpreted further.
//
// # Identifiers
//
// Product ids are assigned by the service and treated as opaque. ID keeps the
// text of the id and whether it arrived as a JSON number so it is written back
// unchanged in PUT bodies.
//
// # Money
//
// Prices and totals are shopspring/decimal values. They decode from JSON
// numbers or strings and are always encoded as bare numbers.
//
// # Input
//
// ParseInput turns form text into a ProductInput, rejecting non-numeric or
// negative values with an *InputError before any request is made.
package inventory
