package duckduckgo

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bornholm/profilefinder/pkg/scraper"
	"github.com/bornholm/profilefinder/pkg/search"
	"github.com/pkg/errors"
)

const DefaultBaseURL = "https://html.duckduckgo.com/html/"

type Client struct {
	baseURL string
	scraper scraper.Scraper
}

type OptionFunc func(c *Client)

func WithBaseURL(baseURL string) OptionFunc {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// Search implements search.Client.
func (c *Client) Search(ctx context.Context, query string) ([]search.Result, error) {
	searchURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base url '%s'", c.baseURL)
	}

	params := searchURL.Query()
	params.Set("q", query)
	searchURL.RawQuery = params.Encode()

	slog.DebugContext(ctx, "scraping duckduckgo results", slog.String("url", searchURL.String()))

	body, err := c.scraper.Get(ctx, searchURL.String())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if doc.Find("#challenge-form").Length() > 0 {
		return nil, errors.WithStack(ErrCaptcha)
	}

	resultElements := doc.Find(".result:not(.result--ad)")
	if resultElements.Length() == 0 {
		if doc.Find(".no-results").Length() > 0 {
			return []search.Result{}, nil
		}

		return nil, errors.Errorf("unexpected result page:\n%s", strings.TrimSpace(doc.Text()))
	}

	results := make([]search.Result, 0, resultElements.Length())

	resultElements.Each(func(i int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find(".result__title").Text())
		if title == "" {
			return
		}

		link := resolveLink(s.Find(".result__a").AttrOr("href", ""))
		if link == "" {
			return
		}

		results = append(results, search.Result{
			Title:       title,
			URL:         link,
			Description: strings.TrimSpace(s.Find(".result__snippet").Text()),
		})
	})

	return results, nil
}

// resolveLink unwraps DuckDuckGo redirection links ("//duckduckgo.com/l/?uddg=...").
func resolveLink(raw string) string {
	if raw == "" {
		return ""
	}

	link, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	if target := link.Query().Get("uddg"); target != "" {
		return target
	}

	if link.Scheme == "" {
		return ""
	}

	return link.String()
}

func NewClient(scraper scraper.Scraper, funcs ...OptionFunc) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		scraper: scraper,
	}

	for _, fn := range funcs {
		fn(c)
	}

	return c
}

var _ search.Client = &Client{}
