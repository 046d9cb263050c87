// Package debug serves statekit's optional introspection endpoints.
//
// The server is off unless debug_addr is set. When enabled it mirrors the
// store the UI is attached to and exposes:
//
//	GET /state    latest published state, context ID and dispatch count
//	GET /healthz  liveness and uptime
//	GET /metrics  Prometheus metrics from a private registry
//
// The /state snapshot is refreshed by a store listener, so it only changes
// on dispatch. Handlers read a copy under a lock and never touch the store.
// After a store swap the UI calls Watch again and the previous listener is
// detached.
package debug
