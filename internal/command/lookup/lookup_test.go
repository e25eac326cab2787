package lookup

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bornholm/profilefinder/pkg/profile"
	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.yaml.in/yaml/v3"
)

func newProxy(t *testing.T, body string, status int) string {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server.URL + "/search.json"
}

func runLookup(t *testing.T, args ...string) (string, error) {
	var stdout bytes.Buffer

	app := &cli.App{
		Name:     "profilefinder",
		Writer:   &stdout,
		Commands: []*cli.Command{Lookup()},
		ExitErrHandler: func(ctx *cli.Context, err error) {
		},
	}

	err := app.RunContext(context.Background(), append([]string{"profilefinder", "lookup"}, args...))

	return stdout.String(), err
}

func TestLookupCommand(t *testing.T) {
	endpoint := newProxy(t, `{"organic_results": [{"title": "Jane Doe - Engineer at Acme", "link": "https://fr.linkedin.com/in/janedoe"}]}`, http.StatusOK)

	output, err := runLookup(t, "--endpoint", endpoint, "https://www.linkedin.com/in/janedoe")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	var p profile.Profile
	if err := sonic.Unmarshal([]byte(output), &p); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	expected := profile.Profile{Name: "Jane Doe", LinkedInURL: "https://fr.linkedin.com/in/janedoe", Note: "Engineer at Acme"}
	if p != expected {
		t.Errorf("expected %+v, got %+v", expected, p)
	}

	if !strings.Contains(output, `"linkedInUrl"`) {
		t.Errorf("expected linkedInUrl key in %q", output)
	}
}

func TestLookupCommandYAML(t *testing.T) {
	endpoint := newProxy(t, `{}`, http.StatusOK)

	output, err := runLookup(t, "--endpoint", endpoint, "--format", "yaml", "https://www.linkedin.com/in/janedoe")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	var p profile.Profile
	if err := yaml.Unmarshal([]byte(output), &p); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	expected := profile.Profile{LinkedInURL: "https://www.linkedin.com/in/janedoe"}
	if p != expected {
		t.Errorf("expected %+v, got %+v", expected, p)
	}
}

func TestLookupCommandSilentFailure(t *testing.T) {
	endpoint := newProxy(t, `upstream unavailable`, http.StatusBadGateway)

	output, err := runLookup(t, "--endpoint", endpoint, "jane")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if output != "" {
		t.Errorf("expected no output, got %q", output)
	}
}

func TestLookupCommandStrict(t *testing.T) {
	t.Run("failure", func(t *testing.T) {
		endpoint := newProxy(t, `upstream unavailable`, http.StatusBadGateway)

		_, err := runLookup(t, "--endpoint", endpoint, "--strict", "jane")
		if !errors.Is(err, profile.ErrLookupFailed) {
			t.Fatalf("expected ErrLookupFailed, got %+v", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		endpoint := newProxy(t, `{"organic_results": []}`, http.StatusOK)

		_, err := runLookup(t, "--endpoint", endpoint, "--strict", "jane")
		if !errors.Is(err, ErrNoOrganicResult) {
			t.Fatalf("expected ErrNoOrganicResult, got %+v", err)
		}
	})
}

func TestLookupCommandOutputDir(t *testing.T) {
	endpoint := newProxy(t, `{"organic_results": [{"title": "Jane Doe - Engineer at Acme", "link": "https://fr.linkedin.com/in/janedoe"}]}`, http.StatusOK)
	dir := t.TempDir()

	output, err := runLookup(t, "--endpoint", endpoint, "--output-dir", dir, "--format", "yaml", "jane")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if output != "" {
		t.Errorf("expected no output, got %q", output)
	}

	data, err := os.ReadFile(filepath.Join(dir, "jane-doe.yaml"))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !strings.Contains(string(data), "note: Engineer at Acme") {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestLookupCommandInvalidArguments(t *testing.T) {
	testCases := []struct {
		Name string
		Args []string
	}{
		{Name: "missing query", Args: []string{}},
		{Name: "unknown format", Args: []string{"--format", "xml", "jane"}},
		{Name: "unknown backend", Args: []string{"--backend", "bing", "jane"}},
		{Name: "invalid match", Args: []string{"--match", "[", "jane"}},
		{Name: "serpapi with chromedp", Args: []string{"--scraper", "chromedp", "jane"}},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			if _, err := runLookup(t, tc.Args...); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestOutputFilename(t *testing.T) {
	testCases := []struct {
		Profile  profile.Profile
		Query    string
		Format   string
		Expected string
	}{
		{Profile: profile.Profile{Name: "Jane Doe"}, Query: "jane", Format: FormatJSON, Expected: "jane-doe.json"},
		{Profile: profile.Profile{}, Query: "https://www.linkedin.com/in/janedoe", Format: FormatYAML, Expected: "https-www-linkedin-com-in-janedoe.yaml"},
		{Profile: profile.Profile{}, Query: "", Format: FormatJSON, Expected: "profile.json"},
	}

	for _, tc := range testCases {
		t.Run(tc.Expected, func(t *testing.T) {
			if e, g := tc.Expected, outputFilename(&tc.Profile, tc.Query, tc.Format); e != g {
				t.Errorf("expected %q, got %q", e, g)
			}
		})
	}
}
