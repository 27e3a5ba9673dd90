// extractor.go
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// VideoItem is one entry in the videos list file
type VideoItem struct {
	URL string `yaml:"url"`
}

// URLList is the YAML structure listing the videos to extract
type URLList struct {
	Videos []VideoItem `yaml:"videos"`
}

// TranscriptExtractor drives video ID parsing and transcript fetching over a
// list of URLs, collecting exactly one record per input.
type TranscriptExtractor struct {
	settings *Settings
	logger   *log.Logger
}

// NewTranscriptExtractor creates an extractor. A nil logger falls back to the
// standard logger.
func NewTranscriptExtractor(settings *Settings, logger *log.Logger) *TranscriptExtractor {
	if logger == nil {
		logger = log.Default()
	}
	return &TranscriptExtractor{settings: settings, logger: logger}
}

// ExtractAll processes URLs sequentially in input order. A URL that matches
// no recognized shape is recorded as a failure keyed by the raw URL; a fetch
// failure for one video never aborts the batch.
func (te *TranscriptExtractor) ExtractAll(urls []string) *Batch {
	batch := NewBatch()

	for i, videoURL := range urls {
		te.logger.Printf("[%d/%d] Processing: %s", i+1, len(urls), videoURL)

		videoID := extractVideoID(videoURL)
		if videoID == "" {
			te.logger.Printf("✗ Could not extract video ID from URL: %s", videoURL)
			batch.Set(videoURL, newFailureRecord("", "Invalid YouTube URL"))
			continue
		}

		record := te.extractSingle(videoID)
		if record.Success() {
			te.logger.Printf("✓ Extracted %d segments for %s", record.SegmentCount, videoID)
		} else {
			te.logger.Printf("✗ Failed to extract transcript for %s: %s", videoID, record.Error)
		}
		batch.Set(videoID, record)
	}

	return batch
}

// extractSingle fetches the transcript for one video and normalizes each cue,
// accumulating the space-joined full text. Service failures are contained and
// returned as a failure record, never propagated.
func (te *TranscriptExtractor) extractSingle(videoID string) VideoRecord {
	cues, err := getTranscriptCues(videoID, te.settings.TranscriptAPI)
	if err != nil {
		return newFailureRecord(videoID, err.Error())
	}

	segments := make([]CaptionCue, 0, len(cues))
	var fullText strings.Builder

	for _, cue := range cues {
		cleaned := cleanCaptionText(cue.Text)
		fullText.WriteString(cleaned)
		fullText.WriteByte(' ')
		segments = append(segments, CaptionCue{
			Start:    cue.Start,
			Duration: cue.Duration,
			Text:     cleaned,
		})
	}

	return VideoRecord{
		VideoID:      videoID,
		Status:       StatusSuccess,
		FullText:     strings.TrimSpace(fullText.String()),
		Segments:     segments,
		SegmentCount: len(segments),
	}
}

// loadURLList reads the list of video URLs from a local YAML file or, when
// the source itself is an HTTP(S) URL, from a remote CSV.
func loadURLList(source string) ([]string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return loadURLListFromURL(source)
	}
	return loadURLListFromFile(source)
}

func loadURLListFromFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading videos file %s: %w", path, err)
	}

	var list URLList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing videos YAML: %w", err)
	}

	urls := make([]string, 0, len(list.Videos))
	for _, item := range list.Videos {
		if url := strings.TrimSpace(item.URL); url != "" {
			urls = append(urls, url)
		}
	}
	return urls, nil
}

// loadURLListFromURL fetches a CSV of URLs (one per row, optional "url"
// header) from a remote location.
func loadURLListFromURL(source string) ([]string, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(source)
	if err != nil {
		return nil, fmt.Errorf("fetching CSV from URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error %d when fetching CSV", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	// Skip header row if it exists
	startIdx := 0
	if len(records[0]) > 0 && strings.ToLower(records[0][0]) == "url" {
		startIdx = 1
	}

	urls := make([]string, 0, len(records)-startIdx)
	for i := startIdx; i < len(records); i++ {
		row := records[i]
		if len(row) == 0 {
			continue
		}
		if url := strings.TrimSpace(row[0]); url != "" {
			urls = append(urls, url)
		}
	}

	return urls, nil
}

// addURLToList appends a URL to the videos YAML file, creating the file if
// needed and rejecting duplicates.
func addURLToList(path, url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("invalid URL format: %s (must start with http:// or https://)", url)
	}

	var list URLList
	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading videos file: %w", err)
		}
		if err := yaml.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("parsing videos file: %w", err)
		}
	}

	for _, item := range list.Videos {
		if item.URL == url {
			return fmt.Errorf("URL already exists in videos file: %s", url)
		}
	}

	list.Videos = append(list.Videos, VideoItem{URL: url})

	data, err := yaml.Marshal(&list)
	if err != nil {
		return fmt.Errorf("marshaling videos file: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating videos directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing videos file: %w", err)
	}

	return nil
}
