package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/fwsync/internal/models"
)

func collectionWithSearch(prefix string) models.Collection {
	return models.Collection{
		Name:      "Press",
		Href:      prefix,
		SearchURL: prefix + "{?q}",
	}
}

func TestTenant(t *testing.T) {
	t.Run("Collections Follows Paging", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, `{"data": [{"name": "Marketing", "href": "/fotoweb/archives/2/"}], "paging": null}`)
				return
			}
			fmt.Fprint(w, `{"data": [{"name": "Press", "href": "/fotoweb/archives/1/"}], "paging": {"next": "/fotoweb/archives?page=2"}}`)
		}))
		defer server.Close()

		tenant := NewTenant(testConnection(server.URL))
		colls, err := tenant.Collections(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(colls) != 2 {
			t.Fatalf("expected 2 collections, got %d", len(colls))
		}
		if colls[0].Name != "Press" || colls[1].Name != "Marketing" {
			t.Errorf("expected insertion-ordered collections, got %+v", colls)
		}
	})

	t.Run("SearchAssets", func(t *testing.T) {
		t.Run("Substitutes Query Placeholder", func(t *testing.T) {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.RequestURI()
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"data": [{"filename": "a.jpg"}], "paging": null}`)
			}))
			defer server.Close()

			tenant := NewTenant(testConnection(server.URL))
			coll := collectionWithSearch("/fotoweb/archives/1/")

			assets, err := tenant.SearchAssets(context.Background(), coll, "fn:*.jpg")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(assets) != 1 || assets[0].Filename != "a.jpg" {
				t.Errorf("expected one asset, got %+v", assets)
			}
			if !strings.Contains(gotPath, "q=fn%3A%2A.jpg") {
				t.Errorf("expected encoded query in path, got %s", gotPath)
			}
		})

		t.Run("Unsearchable Collection", func(t *testing.T) {
			tenant := NewTenant(testConnection("http://example.invalid"))
			coll := collectionWithSearch("")
			coll.SearchURL = ""

			if _, err := tenant.SearchAssets(context.Background(), coll, "x"); err == nil {
				t.Error("expected error for collection without searchURL")
			}
		})
	})

	t.Run("AssetByHref", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"href": r.URL.Path, "filename": "x.png"})
		}))
		defer server.Close()

		tenant := NewTenant(testConnection(server.URL))
		asset, err := tenant.AssetByHref(context.Background(), "/fotoweb/archives/1/x.png")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if asset.Filename != "x.png" {
			t.Errorf("expected filename x.png, got %s", asset.Filename)
		}
	})
}
