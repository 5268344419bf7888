package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"gallery-builder/internal/startup"
)

func TestGetVersion(t *testing.T) {
	t.Parallel()

	h := New("/srv/site")

	req := httptest.NewRequest(http.MethodGet, "/version", http.NoBody)
	w := httptest.NewRecorder()

	h.GetVersion(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("Expected Cache-Control: no-cache, got %q", cc)
	}

	var response startup.BuildInfo
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Version != startup.Version {
		t.Errorf("Expected Version=%s, got %s", startup.Version, response.Version)
	}
	if response.OS != runtime.GOOS || response.Arch != runtime.GOARCH {
		t.Errorf("Expected %s/%s, got %s/%s", runtime.GOOS, runtime.GOARCH, response.OS, response.Arch)
	}
}

func TestGetVersionReportsSite(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	h := New(root)

	decode := func() VersionResponse {
		w := httptest.NewRecorder()
		h.GetVersion(w, httptest.NewRequest(http.MethodGet, "/version", http.NoBody))
		var response VersionResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		return response
	}

	before := decode()
	if before.Generator != Generator || before.Root != root {
		t.Errorf("generator/root = %q/%q, want %q/%q", before.Generator, before.Root, Generator, root)
	}
	if before.LastBuilt != "" {
		t.Errorf("LastBuilt = %q before any build, want empty", before.LastBuilt)
	}

	built := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	index := filepath.Join(root, "index.html")
	if err := os.WriteFile(index, []byte("<html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(index, built, built); err != nil {
		t.Fatal(err)
	}

	after := decode()
	got, err := time.Parse(time.RFC3339, after.LastBuilt)
	if err != nil {
		t.Fatalf("LastBuilt %q is not RFC 3339: %v", after.LastBuilt, err)
	}
	if !got.Equal(built) {
		t.Errorf("LastBuilt = %v, want %v", got, built)
	}
	if after.Version != startup.Version {
		t.Errorf("Version = %q, want %q", after.Version, startup.Version)
	}
}

func TestGetVersionConcurrent(t *testing.T) {
	t.Parallel()

	h := New("/srv/site")

	const numRequests = 10
	done := make(chan bool, numRequests)

	for i := 0; i < numRequests; i++ {
		go func() {
			w := httptest.NewRecorder()
			h.GetVersion(w, httptest.NewRequest(http.MethodGet, "/version", http.NoBody))

			var response startup.BuildInfo
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Errorf("Failed to decode response: %v", err)
			}
			done <- true
		}()
	}

	for i := 0; i < numRequests; i++ {
		<-done
	}
}
