// Package ui is the Bubble Tea front end of statekit.
//
// # Overview
//
// The UI is a consumer tree over one state store. Every store-backed panel
// owns a binding.Binding and a stable binding.Selector, and the root model
// owns the binding.Provider that attaches the store.
//
//	             ┌──────────────┐  DispatchMsg   ┌────────────┐
//	 key press ─▶│ Model.Update │◀───────────────│   poller   │
//	             └──────┬───────┘                └────────────┘
//	                    │ UseDispatch
//	                    ▼
//	              state.Store ──bridge──▶ Subject ──▶ Binding.Notify
//	                                                     │ refresh()
//	                                                     ▼
//	                                              panel marked dirty
//
// # Render Cycle
//
// Bubble Tea calls Update and then View on one goroutine. Update handles the
// message, which may dispatch. Dispatch runs the listeners synchronously, so
// by the time it returns every affected binding has re-run its selector and,
// if the selection changed, marked its panel dirty. Update then syncs the
// panels: dirty panels (and panels never rendered against the current
// context) are evaluated through UseSelector, the provider commits, and
// anything the catch-up refreshed is evaluated once more. View only reads the
// cached values.
//
// # Panels
//
//   - header: theme, poll status, remote key count and context ID
//   - counter: the count
//   - meter: a bar for the count; its selector fails for negative counts
//   - logs: the tailed log lines in a viewport, colored by level
//   - stats: per-panel refresh, selector run and evaluation counts
//
// The stats panel is not store-backed. It makes selector isolation visible:
// pressing "+" refreshes counter and meter, never logs.
//
// # Store Swap
//
// The "s" key attaches a new store. The provider tears down the old context,
// every binding remounts on the new one and drops its cached selection. The
// theme, log tail and poll status are carried over; the counter is not.
//
// # Errors
//
// Selector failures are kept per panel and shown on the status line instead
// of crashing the program. Dispatch and preference errors are shown there
// too and logged through slog.
package ui
