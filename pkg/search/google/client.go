package google

import (
	"context"
	"log/slog"

	"github.com/bornholm/profilefinder/pkg/search"
	"github.com/pkg/errors"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Client implements search.Client using the Google Custom Search JSON API.
type Client struct {
	cx      string
	num     int64
	options []option.ClientOption
}

type OptionFunc func(c *Client)

// WithNum sets how many results are requested, between 1 and 10.
func WithNum(num int64) OptionFunc {
	return func(c *Client) {
		c.num = num
	}
}

// WithClientOptions appends options used to build the underlying service.
func WithClientOptions(options ...option.ClientOption) OptionFunc {
	return func(c *Client) {
		c.options = append(c.options, options...)
	}
}

// Search implements search.Client.
func (c *Client) Search(ctx context.Context, query string) ([]search.Result, error) {
	service, err := customsearch.NewService(ctx, c.options...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.DebugContext(ctx, "executing custom search", slog.String("query", query))

	call := service.Cse.List().
		Q(query).
		Cx(c.cx).
		Num(c.num).
		Context(ctx)

	res, err := call.Do()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	results := make([]search.Result, 0, len(res.Items))
	for _, item := range res.Items {
		results = append(results, search.Result{
			Title:       item.Title,
			URL:         item.Link,
			Description: item.Snippet,
		})
	}

	return results, nil
}

func NewClient(apiKey, cx string, funcs ...OptionFunc) *Client {
	c := &Client{
		cx:  cx,
		num: 10,
	}

	if apiKey != "" {
		c.options = append(c.options, option.WithAPIKey(apiKey))
	}

	for _, fn := range funcs {
		fn(c)
	}

	return c
}

var _ search.Client = &Client{}
