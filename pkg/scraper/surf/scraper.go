package surf

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/bornholm/profilefinder/pkg/scraper"
	"github.com/enetx/g"
	"github.com/enetx/surf"
	"github.com/pkg/errors"
)

// Scraper fetches documents with a client impersonating a desktop Chrome
// browser, for backends that reject plain HTTP clients.
type Scraper struct {
	client *surf.Client
}

// Get implements scraper.Scraper.
func (s *Scraper) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	resp := s.client.Get(g.String(url)).WithContext(ctx).Do()
	if resp.IsErr() {
		return nil, errors.WithStack(resp.Err())
	}

	res := resp.Ok()

	code := int(res.StatusCode)
	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		if res.Body != nil && res.Body.Reader != nil {
			res.Body.Reader.Close()
		}

		return nil, errors.WithStack(&scraper.StatusError{
			StatusCode: code,
			Status:     http.StatusText(code),
		})
	}

	return res.Body.Reader, nil
}

func NewScraper(timeout time.Duration) *Scraper {
	builder := surf.NewClient().Builder()

	if proxy := os.Getenv("HTTP_PROXY"); proxy != "" {
		builder = builder.Proxy(proxy)
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := builder.Impersonate().RandomOS().Chrome().
		Timeout(timeout).
		Session().
		Build()

	return &Scraper{client: client}
}

var _ scraper.Scraper = &Scraper{}
