package scraper

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestHTTPScraperGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "profilefinder-test" {
			t.Errorf("unexpected user agent %q", got)
		}

		w.Write([]byte("hello"))
	}))
	defer server.Close()

	s := NewHTTPScraper(server.Client(), WithUserAgent("profilefinder-test"))

	body, err := s.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if string(data) != "hello" {
		t.Errorf("unexpected body %q", data)
	}
}

func TestHTTPScraperStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	s := NewHTTPScraper(server.Client())

	_, err := s.Get(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected an error")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected a *StatusError, got %T", errors.Cause(err))
	}

	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("unexpected status code %d", statusErr.StatusCode)
	}

	if !strings.Contains(string(statusErr.Body), "quota exceeded") {
		t.Errorf("unexpected body %q", statusErr.Body)
	}
}
