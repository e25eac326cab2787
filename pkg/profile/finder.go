package profile

import (
	"context"
	"log/slog"

	"github.com/bornholm/profilefinder/internal/logx"
	"github.com/bornholm/profilefinder/pkg/search"
	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrLookupFailed matches every fetch or parse failure returned by Find.
var ErrLookupFailed = errors.New("profile lookup failed")

// LookupError carries the cause of a failed lookup.
type LookupError struct {
	Query string
	Err   error
}

func (e *LookupError) Error() string {
	return ErrLookupFailed.Error() + ": " + e.Err.Error()
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLookupFailed
}

type Status int

const (
	// StatusEmpty means no organic result was usable and the record only
	// holds its defaults.
	StatusEmpty Status = iota
	// StatusFound means the record was built from an organic result.
	StatusFound
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

type Result struct {
	Status  Status
	Profile Profile
}

// Finder looks up profiles through a search backend. It is safe for
// concurrent use.
type Finder struct {
	client    search.Client
	linkMatch glob.Glob
}

type FinderOptionFunc func(f *Finder)

// WithLinkMatch restricts the organic result used to the first one whose
// link matches the given pattern.
func WithLinkMatch(pattern glob.Glob) FinderOptionFunc {
	return func(f *Finder) {
		f.linkMatch = pattern
	}
}

// Find runs the query and reports whether an organic result was found.
// Failures wrap ErrLookupFailed.
func (f *Finder) Find(ctx context.Context, query string) (*Result, error) {
	results, err := f.client.Search(ctx, query)
	if err != nil {
		return nil, errors.WithStack(&LookupError{Query: query, Err: err})
	}

	if f.linkMatch != nil {
		results = f.filter(results)
	}

	slog.DebugContext(ctx, "search completed", slog.Int("results", len(results)))

	status := StatusFound
	if len(results) == 0 {
		status = StatusEmpty
	}

	return &Result{
		Status:  status,
		Profile: FromResults(query, results),
	}, nil
}

// Lookup runs the query and returns the extracted record, or nil when the
// lookup failed. Failures are logged and not returned.
func (f *Finder) Lookup(ctx context.Context, query string) *Profile {
	ctx = logx.WithAttrs(ctx, slog.String("lookup_id", uuid.NewString()))

	slog.DebugContext(ctx, "looking up profile", slog.String("query", query))

	res, err := f.Find(ctx, query)
	if err != nil {
		slog.ErrorContext(ctx, "could not look up profile", slog.String("query", query), slog.Any("error", errors.Cause(err)))
		return nil
	}

	return &res.Profile
}

func (f *Finder) filter(results []search.Result) []search.Result {
	filtered := make([]search.Result, 0, len(results))
	for _, r := range results {
		if f.linkMatch.Match(r.URL) {
			filtered = append(filtered, r)
		}
	}

	return filtered
}

func NewFinder(client search.Client, funcs ...FinderOptionFunc) *Finder {
	f := &Finder{
		client: client,
	}

	for _, fn := range funcs {
		fn(f)
	}

	return f
}
