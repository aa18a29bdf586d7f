package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClient(t *testing.T) {
	t.Run("Requires Credentials", func(t *testing.T) {
		if _, err := NewClient(&SourceConfig{BaseURL: "https://www.omdbapi.com/"}, nil, nil); err == nil {
			t.Error("expected error without key or proxy")
		}
	})

	t.Run("Nil Config", func(t *testing.T) {
		if _, err := NewClient(nil, nil, nil); err == nil {
			t.Error("expected error for nil config")
		}
	})

	t.Run("Proxy Wins Over Key", func(t *testing.T) {
		var gotKey string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.URL.Query().Get("apikey")
			w.Write([]byte(`{"Search":[],"Response":"True"}`))
		}))
		defer server.Close()

		repo, err := NewClient(&SourceConfig{Key: "secret", ProxyURL: server.URL + "/omdb/"}, nil, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := repo.Search(context.Background(), "alien"); err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if gotKey != "" {
			t.Errorf("expected no key sent through proxy, got %q", gotKey)
		}
	})
}

func TestVerifyAccess(t *testing.T) {
	t.Run("Valid Key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("i") != probeID {
				t.Errorf("expected probe id, got %q", r.URL.Query().Get("i"))
			}
			w.Write([]byte(`{"Title":"The Matrix","imdbID":"tt0133093","Response":"True"}`))
		}))
		defer server.Close()

		err := VerifyAccess(context.Background(), &SourceConfig{BaseURL: server.URL, Key: "good"}, nil, nil)
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("Rejected Key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"Response":"False","Error":"Invalid API key!"}`))
		}))
		defer server.Close()

		err := VerifyAccess(context.Background(), &SourceConfig{BaseURL: server.URL, Key: "bad"}, nil, nil)
		if err == nil {
			t.Error("expected error for rejected key")
		}
	})
}
