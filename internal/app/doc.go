// Package app is the composition root for tally.
//
// # Overview
//
// Every entry point builds the same dependencies from config.toml and the
// command-line overrides, then either starts the TUI or answers a single
// question and exits:
//
//	┌────────────────┐
//	│ setup()        │
//	└──────┬─────────┘
//	       ├─────> config.Load()         Read ~/.config/tally/config.toml
//	       ├─────> logging.New()         JSON log file under log_dir
//	       ├─────> inventory.NewClient() HTTP client for the inventory API
//	       └─────> state.NewStore()      Shared product list + stats
//
//	Run()    prefs.Load() ──> ui.Run()          TUI, blocks until quit
//	List()   store.Refresh() ──> catalog.Derive() ──> ui.RenderList()
//	Stats()  store.Refresh() ──> summary lines
//	Logs()   logtail.Read() ──> logtail.FormatLines()
//
// # Refresh Interval
//
// Options.RefreshSeconds overrides refresh_seconds from the config when
// positive and turns periodic refresh off when negative. Zero keeps the
// configured value.
//
// # Error Handling
//
// Setup failures (bad config, unusable log directory, malformed API URL) are
// returned before anything is drawn. Once the TUI runs, request failures are
// shown as notifications and never end the program. List and Stats return the
// first refresh error, which satisfies state.IsFetchError.
package app
