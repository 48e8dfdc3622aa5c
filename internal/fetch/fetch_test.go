package fetch_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ecrawley/stoa/internal/fetch"
)

func TestGetContentFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "work.txt")
	if err := os.WriteFile(path, []byte("BOOK ONE\n\ntext"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := fetch.GetContent(context.Background(), path)
	if err != nil {
		t.Fatalf("GetContent(%q): %v", path, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "BOOK ONE\n\ntext" {
		t.Errorf("read %q", data)
	}
}

func TestGetContentMissingFile(t *testing.T) {
	_, err := fetch.GetContent(context.Background(), "/nonexistent/transcription.txt")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestGetContentURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("fetched content"))
	}))
	defer server.Close()

	r, err := fetch.GetContent(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetContent(%q): %v", server.URL, err)
	}
	defer r.Close()

	data, _ := io.ReadAll(r)
	if string(data) != "fetched content" {
		t.Errorf("read %q", data)
	}
}

func TestGetContentURLError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := fetch.GetContent(context.Background(), server.URL); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{"valid utf-8", []byte("plain ascii"), "plain ascii"},
		{"utf-8 multibyte", []byte("Epictetus — Discourses"), "Epictetus — Discourses"},
		// 0xE9 is é in latin-1 but invalid as a standalone UTF-8 byte
		{"latin-1 fallback", []byte{'c', 'a', 'f', 0xE9}, "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fetch.Decode(tt.data); got != tt.expected {
				t.Errorf("Decode(%v) = %q, want %q", tt.data, got, tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	got := fetch.SplitLines("a\r\nb\rc\nd")
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("SplitLines returned %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsURL(t *testing.T) {
	if !fetch.IsURL("https://example.com/text.txt") {
		t.Error("https URL not recognized")
	}
	if fetch.IsURL("meditations.txt") {
		t.Error("file path misidentified as URL")
	}
}
