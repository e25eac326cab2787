package searx

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/bornholm/profilefinder/pkg/search"
	"github.com/gocolly/colly"
	"github.com/pkg/errors"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"

// Client scrapes the HTML results page of a single SearXNG instance.
type Client struct {
	baseURL   *url.URL
	language  string
	transport http.RoundTripper
}

type OptionFunc func(c *Client)

func WithLanguage(language string) OptionFunc {
	return func(c *Client) {
		c.language = language
	}
}

func WithTransport(transport http.RoundTripper) OptionFunc {
	return func(c *Client) {
		c.transport = transport
	}
}

// Search implements search.Client.
func (c *Client) Search(ctx context.Context, query string) ([]search.Result, error) {
	searchURL := c.baseURL.JoinPath("/search")

	params := searchURL.Query()
	params.Set("q", query)
	if c.language != "" {
		params.Set("language", c.language)
	}
	searchURL.RawQuery = params.Encode()

	slog.DebugContext(ctx, "scraping searx results", slog.String("url", searchURL.String()))

	results := make([]search.Result, 0)

	collector := colly.NewCollector(colly.UserAgent(userAgent))
	collector.WithTransport(&contextTransport{ctx: ctx, base: c.transport})

	collector.OnHTML("body", func(h *colly.HTMLElement) {
		h.DOM.Find("article.result, div.result").Each(func(i int, s *goquery.Selection) {
			link := s.Find("h3 > a[href]")

			href := strings.TrimSpace(link.AttrOr("href", ""))
			if href == "" {
				return
			}

			title := strings.TrimSpace(link.Text())
			if title == "" {
				return
			}

			results = append(results, search.Result{
				Title:       title,
				URL:         href,
				Description: strings.TrimSpace(s.Find(".content").Text()),
			})
		})
	})

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Pragma", "no-cache")
		r.Headers.Set("Cache-Control", "no-cache")
	})

	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := collector.Visit(searchURL.String()); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.WithStack(ctxErr)
		}

		return nil, errors.WithStack(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	return results, nil
}

// contextTransport binds the requests issued by a collector to the context
// of the search, colly requests carry none.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t *contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

func defaultTransport() http.RoundTripper {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

func NewClient(baseURL string, funcs ...OptionFunc) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid searx instance url '%s'", baseURL)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid searx instance url '%s'", baseURL)
	}

	c := &Client{
		baseURL:   u,
		transport: defaultTransport(),
	}

	for _, fn := range funcs {
		fn(c)
	}

	return c, nil
}

var _ search.Client = &Client{}
