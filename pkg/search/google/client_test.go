package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

func TestClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if e, g := "engine-id", r.URL.Query().Get("cx"); e != g {
			t.Errorf("cx: expected %q, got %q", e, g)
		}

		if e, g := "Jane Doe", r.URL.Query().Get("q"); e != g {
			t.Errorf("q: expected %q, got %q", e, g)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"kind": "customsearch#search",
			"items": [
				{"title": "Jane Doe - Engineer at Acme", "link": "https://fr.linkedin.com/in/janedoe", "snippet": "Experience: Acme"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient("", "engine-id", WithNum(3), WithClientOptions(
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	))

	results, err := client.Search(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	t.Log(spew.Sdump(results))

	if e, g := 1, len(results); e != g {
		t.Fatalf("len(results): expected %d, got %d", e, g)
	}

	if e, g := "https://fr.linkedin.com/in/janedoe", results[0].URL; e != g {
		t.Errorf("results[0].URL: expected %q, got %q", e, g)
	}
}
