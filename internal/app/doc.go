// Package app is the composition root of statekit.
//
// # Overview
//
// Run loads the configuration and preferences, opens the log file, builds the
// store and the UI, starts the poller and the optional debug server, and
// blocks until the user quits.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        read config.toml / config.yaml
//	       ├─────> newLogger()          tea.LogToFile + slog text handler
//	       ├─────> prefs.Open().Load()  theme and layout
//	       ├─────> model.NewStore()     the one store
//	       ├─────> debug.New().Serve()  only with debug_addr
//	       ├─────> ui.New()             provider attaches the store
//	       ├─────> Poller.Start()       background goroutine
//	       └─────> program.Run()        blocks
//
// # Polling
//
// The poller owns no state. Each poll reads the log tail (re-read only when
// the file's size or mtime moved) and, when source_addr is set, fetches the
// remote document. The result is turned into a payload and handed to the
// program with Send, so every dispatch happens on the Bubble Tea goroutine.
//
//	Poller goroutine                   Bubble Tea goroutine
//	────────────────                   ────────────────────
//	Tailer.Poll()
//	Fetcher.Fetch()
//	program.Send(DispatchMsg) ───────> Model.Update
//	                                     └─> store.Dispatch(payload)
//
// A failed poll dispatches the error into the state so the header can show
// it, keeps the previous log lines, and doubles the wait before the next
// attempt up to 30 seconds. The first successful poll resets the delay.
//
// # Shutdown
//
// Quitting the program cancels the context shared by the poller and the
// debug server, then the UI detaches its bindings and the provider.
package app
