package scraper

import (
	"net/http"
)

var defaultScraper Scraper = NewHTTPScraper(http.DefaultClient)

// DefaultScraper returns the scraper used by clients built without an
// explicit one.
func DefaultScraper() Scraper {
	return defaultScraper
}
