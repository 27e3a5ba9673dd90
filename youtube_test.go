// youtube_test.go
package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=test123&t=10s", "test123"},
		{"https://youtube.com/watch?v=abc123", "abc123"},
		{"youtube.com/watch?v=abc123", "abc123"},
		{"https://www.youtube.com/watch?v=abc123#t=30", "abc123"},
		{"https://youtu.be/ABC123", "ABC123"},
		{"https://youtu.be/90mj79GqWhc?si=vsV7zFMErNt7uVSV", "90mj79GqWhc"},
		{"https://www.youtube.com/embed/xyz789", "xyz789"},
		{"https://www.youtube.com/embed/xyz789?autoplay=1", "xyz789"},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("URL_%s", test.expected), func(t *testing.T) {
			result := extractVideoID(test.url)
			if result != test.expected {
				t.Errorf("extractVideoID(%q) = %q, want %q", test.url, result, test.expected)
			}
		})
	}
}

func TestExtractVideoIDUnrecognized(t *testing.T) {
	urls := []string{
		"not a url",
		"https://vimeo.com/123456",
		"https://www.youtube.com/channel/UCabc",
		"",
	}

	for _, url := range urls {
		if result := extractVideoID(url); result != "" {
			t.Errorf("extractVideoID(%q) = %q, want empty string", url, result)
		}
	}
}

func TestFetchTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify the request parameters
		if r.URL.Query().Get("url") != "https://www.youtube.com/watch?v=test123" {
			t.Errorf("Expected url parameter to be 'https://www.youtube.com/watch?v=test123', got '%s'", r.URL.Query().Get("url"))
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Errorf("Expected api_key parameter to be 'test-key', got '%s'", r.URL.Query().Get("api_key"))
		}

		w.WriteHeader(http.StatusOK)
		// Second cue omits duration; it must default to 0.
		w.Write([]byte(`[{"start":0.5,"duration":2.1,"text":"hello world"},{"start":2.6,"text":"second cue"}]`))
	}))
	defer server.Close()

	settings := TranscriptAPISettings{
		URL:    server.URL,
		APIKey: "test-key",
	}

	cues, err := fetchTranscript("test123", settings)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(cues) != 2 {
		t.Fatalf("Expected 2 cues, got %d", len(cues))
	}
	if cues[0].Start != 0.5 || cues[0].Duration != 2.1 || cues[0].Text != "hello world" {
		t.Errorf("Unexpected first cue: %+v", cues[0])
	}
	if cues[1].Duration != 0 {
		t.Errorf("Expected missing duration to default to 0, got %v", cues[1].Duration)
	}
}

func TestFetchTranscriptHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	settings := TranscriptAPISettings{URL: server.URL}

	_, err := fetchTranscript("test123", settings)
	if err == nil {
		t.Fatal("Expected an error, got nil")
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Expected HTTPError, got %T", err)
	}
	if httpErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status code 500, got %d", httpErr.StatusCode)
	}
}

func TestFetchTranscriptServiceErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"No captions available for this video"}`))
	}))
	defer server.Close()

	settings := TranscriptAPISettings{URL: server.URL}

	_, err := fetchTranscript("nocaptions", settings)
	if err == nil {
		t.Fatal("Expected an error, got nil")
	}

	want := "transcript unavailable for nocaptions: No captions available for this video"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}

func TestGetTranscriptCuesWithCache(t *testing.T) {
	cacheDir := t.TempDir()

	cached := `[{"start":1,"duration":2,"text":"cached cue"}]`
	cachePath := filepath.Join(cacheDir, "test123.json")
	if err := os.WriteFile(cachePath, []byte(cached), 0644); err != nil {
		t.Fatalf("Failed to create cache file: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Server should not be called when cache exists")
	}))
	defer server.Close()

	settings := TranscriptAPISettings{
		URL:      server.URL,
		CacheDir: cacheDir,
	}

	cues, err := getTranscriptCues("test123", settings)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(cues) != 1 || cues[0].Text != "cached cue" {
		t.Errorf("Expected cached cue, got %+v", cues)
	}
}

func TestGetTranscriptCuesWritesCache(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "youtube")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"start":0,"duration":1,"text":"fresh cue"}]`))
	}))
	defer server.Close()

	settings := TranscriptAPISettings{
		URL:      server.URL,
		CacheDir: cacheDir,
	}

	if _, err := getTranscriptCues("fresh1", settings); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := os.Stat(filepath.Join(cacheDir, "fresh1.json")); err != nil {
		t.Errorf("Expected cache file to be written: %v", err)
	}
}
