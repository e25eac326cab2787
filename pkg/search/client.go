package search

import "context"

// Client runs a query against a search backend and returns its organic
// results in rank order.
type Client interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

type Result struct {
	Title       string
	URL         string
	Description string
}
