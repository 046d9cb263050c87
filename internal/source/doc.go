// Package source fetches an optional remote JSON document that the poller
// merges into the store under the "remote" key.
//
// The remote endpoint is any HTTP server answering GET requests with a JSON
// object. Each poll replaces the stored document wholesale; the store's
// one-level merge never combines two remote documents.
//
//	c, err := source.NewClient("127.0.0.1:8080", "/api/state")
//	doc, err := c.Fetch(ctx)
//
// Requests time out after five seconds. Non-2xx/3xx responses and bodies that
// are not a JSON object are returned as errors.
package source
