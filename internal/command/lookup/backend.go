package lookup

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/bornholm/profilefinder/pkg/scraper"
	"github.com/bornholm/profilefinder/pkg/scraper/chromedp"
	"github.com/bornholm/profilefinder/pkg/scraper/surf"
	"github.com/bornholm/profilefinder/pkg/search"
	"github.com/bornholm/profilefinder/pkg/search/duckduckgo"
	"github.com/bornholm/profilefinder/pkg/search/google"
	"github.com/bornholm/profilefinder/pkg/search/searx"
	"github.com/bornholm/profilefinder/pkg/search/serpapi"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const (
	BackendSerpAPI    = "serpapi"
	BackendGoogle     = "google"
	BackendDuckDuckGo = "duckduckgo"
	BackendSearx      = "searx"
)

const (
	ScraperHTTP     = "http"
	ScraperSurf     = "surf"
	ScraperChromedp = "chromedp"
)

var (
	backends = []string{BackendSerpAPI, BackendGoogle, BackendDuckDuckGo, BackendSearx}
	scrapers = []string{ScraperHTTP, ScraperSurf, ScraperChromedp}
)

const userAgent = "profilefinder/1.0"

type BackendConfig struct {
	Backend  string
	Endpoint string
	APIKey   string
	Engine   string
	GoogleCX string
	SearxURL string
	Scraper  string
	Headless bool
	Timeout  time.Duration
}

// Validate reports every configuration problem at once.
func (c BackendConfig) Validate() error {
	var err error

	if !slices.Contains(backends, c.Backend) {
		err = multierror.Append(err, errors.Errorf("unknown backend '%s', expected one of %s", c.Backend, strings.Join(backends, ", ")))
	}

	if !slices.Contains(scrapers, c.Scraper) {
		err = multierror.Append(err, errors.Errorf("unknown scraper '%s', expected one of %s", c.Scraper, strings.Join(scrapers, ", ")))
	}

	if c.Timeout < 0 {
		err = multierror.Append(err, errors.Errorf("invalid negative timeout '%s'", c.Timeout))
	}

	switch c.Backend {
	case BackendSerpAPI:
		if c.Scraper == ScraperChromedp {
			err = multierror.Append(err, errors.New("serpapi backend cannot use the chromedp scraper, the rendered page wraps the json response"))
		}

		if c.Endpoint != "" {
			if u, parseErr := url.Parse(c.Endpoint); parseErr != nil || u.Scheme == "" || u.Host == "" {
				err = multierror.Append(err, errors.Errorf("invalid endpoint '%s'", c.Endpoint))
			}
		}

	case BackendGoogle:
		if c.APIKey == "" {
			err = multierror.Append(err, errors.New("google backend requires an api key"))
		}

		if c.GoogleCX == "" {
			err = multierror.Append(err, errors.New("google backend requires a search engine id (cx)"))
		}

	case BackendSearx:
		if c.SearxURL == "" {
			err = multierror.Append(err, errors.New("searx backend requires an instance url"))
		}
	}

	return err
}

// NewSearchClient builds the configured backend. The returned function
// releases the resources held by the client and must always be called.
func NewSearchClient(c BackendConfig) (search.Client, func(), error) {
	if err := c.Validate(); err != nil {
		return nil, nil, errors.WithStack(err)
	}

	switch c.Backend {
	case BackendGoogle:
		return google.NewClient(c.APIKey, c.GoogleCX), func() {}, nil

	case BackendSearx:
		client, err := searx.NewClient(c.SearxURL)
		if err != nil {
			return nil, nil, errors.WithStack(err)
		}

		return client, func() {}, nil
	}

	s, release, err := newScraper(c)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	if c.Backend == BackendDuckDuckGo {
		return duckduckgo.NewClient(s), release, nil
	}

	options := []serpapi.OptionFunc{
		serpapi.WithScraper(s),
		serpapi.WithAPIKey(c.APIKey),
		serpapi.WithEngine(c.Engine),
	}

	if c.Endpoint != "" {
		options = append(options, serpapi.WithEndpoint(c.Endpoint))
	}

	return serpapi.NewClient(options...), release, nil
}

func newScraper(c BackendConfig) (scraper.Scraper, func(), error) {
	switch c.Scraper {
	case ScraperSurf:
		return surf.NewScraper(c.Timeout), func() {}, nil

	case ScraperChromedp:
		s, err := chromedp.NewScraper(c.Headless)
		if err != nil {
			return nil, nil, errors.WithStack(err)
		}

		return s, s.Close, nil

	default:
		client := &http.Client{Timeout: c.Timeout}
		return scraper.NewHTTPScraper(client, scraper.WithUserAgent(userAgent)), func() {}, nil
	}
}
