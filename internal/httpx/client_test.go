package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_GetString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("User-Agent = %q, want %q", got, "test-agent")
		}
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	client := NewClient("test-agent")
	body, err := client.GetString(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if body != "<html>ok</html>" {
		t.Errorf("body = %q", body)
	}
}

func TestClient_GetString_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient("test-agent")
	if _, err := client.GetString(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestClient_ResolveRedirect(t *testing.T) {
	var finalURL string
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/t/abc123", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+"/someartist/track-99", http.StatusFound)
	})
	mux.HandleFunc("/someartist/track-99", func(w http.ResponseWriter, r *http.Request) {
		finalURL = r.URL.Path
	})

	client := NewClient("test-agent")
	got, err := client.ResolveRedirect(context.Background(), srv.URL+"/t/abc123")
	if err != nil {
		t.Fatalf("ResolveRedirect failed: %v", err)
	}
	if got != srv.URL+"/someartist/track-99" {
		t.Errorf("resolved = %q, want %q", got, srv.URL+"/someartist/track-99")
	}
	if finalURL != "/someartist/track-99" {
		t.Errorf("redirect target was not requested, got %q", finalURL)
	}
}

func TestClient_ResolveRedirect_TransportError(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient("test-agent")
	if _, err := client.ResolveRedirect(context.Background(), url+"/t/dead"); err == nil {
		t.Error("expected transport error")
	}
}
