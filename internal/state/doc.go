// Package state holds the dashboard's local copy of the product list and the
// stats summary.
//
// # Overview
//
// Store is the only place product data lives on the client. It is written by
// Refresh and read by the UI through Snapshot. Mutations never patch the local
// copy: Create, Update and Remove send the request and, on success, run a full
// Refresh so the store always mirrors what the service returned last.
//
//	UI command goroutine                      UI update loop
//	┌──────────────────────────┐             ┌───────────────────┐
//	│ store.Create(svc, input) │             │                   │
//	│   svc.CreateProduct()    │             │                   │
//	│   store.Refresh(svc)     │             │                   │
//	│     ├─ ListProducts() ┐  │             │                   │
//	│     └─ FetchStats()   ┘  │  (mutex)    │                   │
//	│   replace both ──────────┼────────────→│ store.Snapshot()  │
//	└──────────────────────────┘             └───────────────────┘
//
// # Refresh
//
// The two GETs run concurrently under an errgroup and are treated as one
// operation. If either fails the previous list and stats are kept, the failure
// is recorded (LastError, ConsecutiveFailures) and a *FetchError is returned.
// Loading is true while any Refresh is running. Refreshes may overlap; each
// is stamped with a generation when it starts, and a result older than one
// already applied is dropped, so the snapshot never moves backwards.
//
// Every applied Refresh bumps Snapshot.Version, which the UI uses as the
// cache key for the derived product page.
//
// # Errors
//
//	*MutationError  the service rejected create/update/delete; store untouched,
//	                no refresh issued. Matches ErrMutationFailed.
//	*FetchError     a refresh failed. When returned from a mutation helper the
//	                mutation itself succeeded. Matches ErrFetchFailed.
//
// # Concurrency
//
// Store is guarded by a sync.RWMutex because tea.Cmd functions run on their own
// goroutines. Snapshot returns copies; callers may modify them freely.
package state
