// Package ui provides the Bubble Tea terminal interface for tally.
//
// # Architecture Overview
//
// Model is a thin shell around dashboard.State. Key presses and finished
// requests become dashboard events; Model.dispatch runs them through
// dashboard.Reduce and turns the returned effects into tea.Cmds:
//
//	tea.KeyMsg ──→ dashboard.Event ──→ Reduce ──→ []Effect
//	                                                │
//	      Refresh / Create / Update / Delete ───────┤──→ tea.Cmd (store call)
//	      Notify ───────────────────────────────────┘──→ toast + expiry tick
//
//	refreshedMsg / mutatedMsg ──→ RefreshFinished / MutationFinished ──→ Reduce
//
// Requests run on command goroutines against state.Store, which refreshes the
// product list and stats together after every successful mutation.
//
// # Package Structure
//
//   - app.go: Model, Init/Update/View, key routing and the Run function
//   - commands.go: messages and the effect → command mapping
//   - header.go: title bar, stats cards and pager
//   - form.go: add-product form, search box and focus cycling
//   - table.go: product table via lipgloss/table, plus RenderList for plain output
//   - modal.go: edit and delete-confirmation modals
//   - toast.go: auto-dismissing notifications
//   - theme.go, style_helpers.go: palettes and lipgloss styles
//
// # Focus
//
// Exactly one area receives keys: the table, the search box, or one form
// field. Tab cycles table → search → name → quantity → price → table; Esc
// returns to the table. While a modal is open it receives every key.
//
// # Key Bindings
//
//   - j/k: Move selection
//   - h/l: Previous/next page
//   - 1/2/3: Sort by name/quantity/price (again to reverse)
//   - a: Add product, /: Search
//   - e or Enter: Edit selected product
//   - d: Delete selected product (asks first)
//   - r: Refresh now
//   - T: Cycle theme (saved to prefs)
//   - ?: Toggle help
//   - q or Ctrl+C: Quit
//
// # Derived List
//
// The visible page is computed by catalog.Memo keyed on the store's snapshot
// version and the current query, so View does not re-filter and re-sort the
// list on every frame.
package ui
