// Package dashboard is the state machine behind the inventory screen.
//
// Reduce takes the current State and one Event and returns the next State
// plus the Effects the caller must run. It does no I/O, so every interaction
// rule can be tested without a terminal or a server:
//
//	key press / finished request ──→ Event
//	                                  │
//	                       Reduce(State, Event)
//	                                  │
//	               next State ←───────┴───────→ []Effect
//	                                             Refresh, CreateProduct,
//	                                             UpdateProduct, DeleteProduct,
//	                                             Notify
//
// The UI maps request effects onto state.Store calls and feeds the result back
// in as RefreshFinished or MutationFinished.
//
// # Rules
//
//   - Changing the search term returns to page 1. Changing the sort does not.
//   - Prev and next never leave [1, TotalPages]. Adopting a new snapshot
//     clamps the page when the filtered list shrank.
//   - Form input is parsed before anything is sent. Invalid input produces one
//     error notice and no request.
//   - Every finished mutation produces exactly one success or failure notice.
//     If the mutation landed but the follow-up refresh failed, a fetch notice
//     follows it.
//   - A failed create keeps the form. A failed update keeps the edit modal
//     open with the user's edits.
//   - The edit buffer is text copied out of the product, never a reference
//     to it; cancelling discards it.
//   - Delete needs confirmation; cancelling sends nothing.
package dashboard
