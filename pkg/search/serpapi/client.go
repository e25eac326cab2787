package serpapi

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/bornholm/profilefinder/pkg/scraper"
	"github.com/bornholm/profilefinder/pkg/search"
	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

const DefaultEndpoint = "https://serpapi.com/search.json"

// Client queries a search-results proxy exposing a SerpApi compatible JSON
// API and returns its organic results.
type Client struct {
	endpoint string
	apiKey   string
	engine   string
	scraper  scraper.Scraper
}

type OptionFunc func(c *Client)

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(endpoint string) OptionFunc {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

func WithAPIKey(apiKey string) OptionFunc {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

func WithEngine(engine string) OptionFunc {
	return func(c *Client) {
		c.engine = engine
	}
}

func WithScraper(scraper scraper.Scraper) OptionFunc {
	return func(c *Client) {
		c.scraper = scraper
	}
}

// Search implements search.Client.
func (c *Client) Search(ctx context.Context, query string) ([]search.Result, error) {
	searchURL, err := c.searchURL(query)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.DebugContext(ctx, "querying search proxy", slog.String("endpoint", c.endpoint), slog.String("query", query))

	body, err := c.scraper.Get(ctx, searchURL)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer body.Close()

	res, err := Decode(body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	results := make([]search.Result, 0, len(res.OrganicResults))
	for _, r := range res.OrganicResults {
		results = append(results, search.Result{
			Title:       r.Title,
			URL:         r.Link,
			Description: r.Snippet,
		})
	}

	return results, nil
}

func (c *Client) searchURL(query string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", errors.Wrapf(err, "invalid endpoint '%s'", c.endpoint)
	}

	params := u.Query()
	params.Set("q", query)

	if c.engine != "" {
		params.Set("engine", c.engine)
	}

	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	u.RawQuery = params.Encode()

	return u.String(), nil
}

// Decode reads a proxy response body. Absent fields decode to their zero
// value, an empty or null document is an error.
func Decode(r io.Reader) (*Response, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return nil, errors.New("empty response body")
	}

	var res *Response
	if err := sonic.Unmarshal(data, &res); err != nil {
		return nil, errors.Wrap(err, "could not decode search proxy response")
	}

	if res == nil {
		return nil, errors.New("search proxy response is null")
	}

	return res, nil
}

func NewClient(funcs ...OptionFunc) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		scraper:  scraper.DefaultScraper(),
	}

	for _, fn := range funcs {
		fn(c)
	}

	return c
}

var _ search.Client = &Client{}
