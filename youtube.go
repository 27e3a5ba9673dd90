// youtube.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// Recognized URL shapes, tried in order. The captured group stops at the
// next query or fragment delimiter.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?v=([^&\n?#]+)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtu\.be/([^&\n?#]+)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([^&\n?#]+)`),
}

// extractVideoID pulls the video identifier out of a YouTube URL. It returns
// an empty string when the URL matches none of the recognized shapes; callers
// treat that as a recoverable condition, not an error.
func extractVideoID(videoURL string) string {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(videoURL); m != nil {
			return m[1]
		}
	}
	return ""
}

// getTranscriptCues fetches the timed cues for a video, using a local cache
// of raw payloads if one is configured.
func getTranscriptCues(videoID string, settings TranscriptAPISettings) ([]CaptionCue, error) {
	var cachePath string
	if settings.CacheDir != "" {
		cachePath = filepath.Join(settings.CacheDir, videoID+".json")
		if content, err := os.ReadFile(cachePath); err == nil {
			var cues []CaptionCue
			if err := json.Unmarshal(content, &cues); err == nil {
				return cues, nil
			}
		}
	}

	cues, err := fetchTranscript(videoID, settings)
	if err != nil {
		return nil, err
	}

	if cachePath != "" {
		if data, err := json.Marshal(cues); err == nil {
			os.MkdirAll(filepath.Dir(cachePath), 0755)
			os.WriteFile(cachePath, data, 0644)
		}
	}

	return cues, nil
}

// fetchTranscript calls the external captioning service for one video and
// decodes its JSON cue list. Every failure mode (unavailable video, missing
// captions, transport error, bad status) comes back as an error for the
// caller to record; nothing is retried here.
func fetchTranscript(videoID string, settings TranscriptAPISettings) ([]CaptionCue, error) {
	videoURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)

	req, err := http.NewRequest("GET", settings.URL, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Add("url", videoURL)
	if settings.APIKey != "" {
		q.Add("api_key", settings.APIKey)
	}
	req.URL.RawQuery = q.Encode()

	// Timeout 0 leaves latency to the service.
	client := &http.Client{
		Timeout: time.Duration(settings.TimeoutSeconds) * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		if msg := serviceErrorMessage(body); msg != "" {
			return nil, fmt.Errorf("transcript unavailable for %s: %s", videoID, msg)
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: videoURL}
	}

	var cues []CaptionCue
	if err := json.Unmarshal(body, &cues); err != nil {
		return nil, fmt.Errorf("decoding transcript response: %w", err)
	}

	return cues, nil
}

// serviceErrorMessage extracts the error description the captioning service
// puts in non-200 response bodies, if any.
func serviceErrorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error
}
