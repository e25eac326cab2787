package profile

import (
	"strings"

	"github.com/bornholm/profilefinder/pkg/search"
)

// TitleSeparator splits a result title into the profile name and its note,
// as in "Jane Doe - Engineer at Acme".
const TitleSeparator = " - "

// Profile is the record extracted from the first organic result of a
// lookup.
type Profile struct {
	Name        string `json:"name" yaml:"name" jsonschema:"description=Result title text before the first ' - ' separator"`
	LinkedInURL string `json:"linkedInUrl" yaml:"linkedInUrl" jsonschema:"required,description=Link of the organic result or the input query"`
	Note        string `json:"note" yaml:"note" jsonschema:"description=Trimmed result title text after the first ' - ' separator"`
}

// New returns the default record for the given query.
func New(query string) Profile {
	return Profile{
		LinkedInURL: query,
	}
}

// ParseTitle splits a result title on the first TitleSeparator.
func ParseTitle(title string) (name string, note string) {
	name, note, found := strings.Cut(title, TitleSeparator)
	if !found {
		return title, ""
	}

	return name, strings.TrimSpace(note)
}

// FromResult overlays the given organic result on the default record.
func FromResult(query string, result search.Result) Profile {
	p := New(query)

	p.Name, p.Note = ParseTitle(result.Title)

	if result.URL != "" {
		p.LinkedInURL = result.URL
	}

	return p
}

// FromResults builds the record from the first organic result, or returns
// the default record when there is none.
func FromResults(query string, results []search.Result) Profile {
	if len(results) == 0 {
		return New(query)
	}

	return FromResult(query, results[0])
}
