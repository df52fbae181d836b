package netfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("key material"))
	}))
	defer server.Close()

	data, err := NewClient(Timeouts{}).Fetch(context.Background(), server.URL+"/keys/microsoft.asc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "key material" {
		t.Errorf("Fetch returned %q; expected %q", data, "key material")
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	if _, err := NewClient(Timeouts{}).Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}

func TestFetchFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[packages-microsoft-com-prod]\nenabled=1\n"))
	}))
	defer server.Close()

	destDir := t.TempDir()
	path, err := NewClient(Timeouts{}).FetchFile(context.Background(), server.URL+"/config/centos/8/prod.repo", destDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Base(path) != "prod.repo" {
		t.Errorf("downloaded file is named %q; expected %q", filepath.Base(path), "prod.repo")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read downloaded file: %v", err)
	}
	if string(content) != "[packages-microsoft-com-prod]\nenabled=1\n" {
		t.Errorf("unexpected file content: %q", content)
	}
}

func TestFetchFileNoDerivableName(t *testing.T) {
	client := NewClient(Timeouts{})

	if _, err := client.FetchFile(context.Background(), "https://example.com/", t.TempDir()); err == nil {
		t.Fatal("expected an error when the URL has no file name")
	}
}

func TestFetchFileDownloadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	destDir := t.TempDir()
	if _, err := NewClient(Timeouts{}).FetchFile(context.Background(), server.URL+"/prod.repo", destDir); err == nil {
		t.Fatal("expected an error for a 500 response")
	}

	entries, _ := os.ReadDir(destDir)
	if len(entries) != 0 {
		t.Errorf("no file should be written on a failed download, found %d entries", len(entries))
	}
}
