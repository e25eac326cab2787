package scraper

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// maxErrorBody caps how much of an unsuccessful response is kept in the
// returned error.
const maxErrorBody = 4e+6

type HTTPScraper struct {
	client  *http.Client
	headers http.Header
}

type HTTPOptionFunc func(s *HTTPScraper)

// WithHeader sets a header on every outgoing request.
func WithHeader(key, value string) HTTPOptionFunc {
	return func(s *HTTPScraper) {
		s.headers.Set(key, value)
	}
}

func WithUserAgent(userAgent string) HTTPOptionFunc {
	return WithHeader("User-Agent", userAgent)
}

// Get implements scraper.Scraper.
func (s *HTTPScraper) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for key, values := range s.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		defer res.Body.Close()

		body, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return nil, errors.WithStack(&StatusError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Body:       body,
		})
	}

	return res.Body, nil
}

func NewHTTPScraper(client *http.Client, funcs ...HTTPOptionFunc) *HTTPScraper {
	if client == nil {
		client = http.DefaultClient
	}

	s := &HTTPScraper{
		client:  client,
		headers: http.Header{},
	}

	for _, fn := range funcs {
		fn(s)
	}

	return s
}

var _ Scraper = &HTTPScraper{}
