package scraper

import (
	"context"
	"io"
)

// Scraper fetches a remote document. Implementations return an error for
// transport failures and unsuccessful responses.
type Scraper interface {
	Get(ctx context.Context, url string) (io.ReadCloser, error)
}
