package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/bornholm/profilefinder/internal/logx"
	"github.com/bornholm/profilefinder/pkg/profile"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var ErrNoOrganicResult = errors.New("no organic result")

func Lookup() *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Look up a profile from the first organic search result for the given query",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "backend",
				Value:   BackendSerpAPI,
				Aliases: []string{"b"},
				EnvVars: []string{"PROFILEFINDER_BACKEND"},
				Usage:   fmt.Sprintf("search backend (%s)", strings.Join(backends, ", ")),
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Value:   "",
				EnvVars: []string{"PROFILEFINDER_ENDPOINT"},
				Usage:   "search proxy endpoint used by the serpapi backend",
			},
			&cli.StringFlag{
				Name:    "api-key",
				Value:   "",
				EnvVars: []string{"PROFILEFINDER_API_KEY"},
				Usage:   "api key sent to the serpapi or google backend",
			},
			&cli.StringFlag{
				Name:    "engine",
				Value:   "",
				EnvVars: []string{"PROFILEFINDER_ENGINE"},
				Usage:   "search engine requested from the search proxy",
			},
			&cli.StringFlag{
				Name:    "google-cx",
				Value:   "",
				EnvVars: []string{"PROFILEFINDER_GOOGLE_CX"},
				Usage:   "google programmable search engine id",
			},
			&cli.StringFlag{
				Name:    "searx-url",
				Value:   "",
				EnvVars: []string{"PROFILEFINDER_SEARX_URL"},
				Usage:   "searx instance url",
			},
			&cli.StringFlag{
				Name:    "scraper",
				Value:   ScraperHTTP,
				EnvVars: []string{"PROFILEFINDER_SCRAPER"},
				Usage:   fmt.Sprintf("transport used by the serpapi and duckduckgo backends (%s)", strings.Join(scrapers, ", ")),
			},
			&cli.BoolFlag{
				Name:    "headless",
				Value:   true,
				EnvVars: []string{"PROFILEFINDER_HEADLESS"},
				Usage:   "run the chromedp scraper without a visible window",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   30 * time.Second,
				EnvVars: []string{"PROFILEFINDER_TIMEOUT"},
				Usage:   "overall lookup timeout",
			},
			&cli.StringFlag{
				Name:    "match",
				Value:   "",
				Aliases: []string{"m"},
				EnvVars: []string{"PROFILEFINDER_MATCH"},
				Usage:   "only use the first result whose link matches this glob pattern",
			},
			&cli.StringFlag{
				Name:    "format",
				Value:   FormatJSON,
				Aliases: []string{"f"},
				EnvVars: []string{"PROFILEFINDER_FORMAT"},
				Usage:   "output format (json, yaml)",
			},
			&cli.StringFlag{
				Name:      "output-dir",
				Value:     "",
				Aliases:   []string{"o"},
				EnvVars:   []string{"PROFILEFINDER_OUTPUT_DIR"},
				TakesFile: true,
				Usage:     "write the profile to a file in this directory instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "strict",
				EnvVars: []string{"PROFILEFINDER_STRICT"},
				Usage:   "fail when the lookup fails or finds no organic result",
			},
		},
		Action: func(cliCtx *cli.Context) error {
			query := strings.TrimSpace(cliCtx.Args().First())
			if query == "" {
				return errors.New("a query is required")
			}

			format := cliCtx.String("format")
			if !slices.Contains([]string{FormatJSON, FormatYAML}, format) {
				return errors.Errorf("unknown output format '%s'", format)
			}

			config := BackendConfig{
				Backend:  cliCtx.String("backend"),
				Endpoint: cliCtx.String("endpoint"),
				APIKey:   cliCtx.String("api-key"),
				Engine:   cliCtx.String("engine"),
				GoogleCX: cliCtx.String("google-cx"),
				SearxURL: cliCtx.String("searx-url"),
				Scraper:  cliCtx.String("scraper"),
				Headless: cliCtx.Bool("headless"),
				Timeout:  cliCtx.Duration("timeout"),
			}

			client, release, err := NewSearchClient(config)
			if err != nil {
				return errors.Wrap(err, "invalid backend configuration")
			}

			defer release()

			var finderOptions []profile.FinderOptionFunc

			if pattern := cliCtx.String("match"); pattern != "" {
				linkMatch, err := glob.Compile(pattern)
				if err != nil {
					return errors.Wrapf(err, "invalid match pattern '%s'", pattern)
				}

				finderOptions = append(finderOptions, profile.WithLinkMatch(linkMatch))
			}

			finder := profile.NewFinder(client, finderOptions...)

			ctx := logx.WithAttrs(cliCtx.Context, slog.String("backend", config.Backend))

			if config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, config.Timeout)
				defer cancel()
			}

			p, err := run(ctx, finder, query, cliCtx.Bool("strict"))
			if err != nil {
				return errors.WithStack(err)
			}

			if p == nil {
				return nil
			}

			if dir := cliCtx.String("output-dir"); dir != "" {
				filename, err := saveProfile(dir, p, query, format)
				if err != nil {
					return errors.Wrap(err, "could not write profile")
				}

				slog.InfoContext(ctx, "profile written", slog.String("output", filename))

				return nil
			}

			if err := writeProfile(cliCtx.App.Writer, p, format); err != nil {
				return errors.Wrap(err, "could not write profile")
			}

			return nil
		},
	}
}

// run performs the lookup. In strict mode failures and empty results are
// returned as errors, otherwise a failed lookup yields a nil profile.
func run(ctx context.Context, finder *profile.Finder, query string, strict bool) (*profile.Profile, error) {
	if !strict {
		return finder.Lookup(ctx, query), nil
	}

	res, err := finder.Find(ctx, query)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if res.Status == profile.StatusEmpty {
		return nil, errors.Wrapf(ErrNoOrganicResult, "query '%s'", query)
	}

	return &res.Profile, nil
}
