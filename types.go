package main

import (
	"bytes"
	"encoding/json"
)

// ExtractionStatus represents the outcome status of extracting one video
type ExtractionStatus string

const (
	StatusSuccess ExtractionStatus = "success"
	StatusFailed  ExtractionStatus = "failed"
)

// CaptionCue is one timed unit of transcript text as returned by the
// captioning service. Duration is 0 when the service omits it.
type CaptionCue struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// VideoRecord is the per-video result of one extraction, discriminated by
// Status: a success carries the normalized transcript, a failure carries the
// error description. VideoID is empty when the input URL could not be parsed.
type VideoRecord struct {
	VideoID      string           `json:"video_id,omitempty"`
	Status       ExtractionStatus `json:"status"`
	FullText     string           `json:"full_text,omitempty"`
	Segments     []CaptionCue     `json:"segments,omitempty"`
	SegmentCount int              `json:"total_segments,omitempty"`
	Error        string           `json:"error,omitempty"`
}

// Success reports whether the record holds an extracted transcript.
func (r VideoRecord) Success() bool {
	return r.Status == StatusSuccess
}

func newFailureRecord(videoID, message string) VideoRecord {
	return VideoRecord{
		VideoID: videoID,
		Status:  StatusFailed,
		Error:   message,
	}
}

// Batch maps video IDs (or the raw input URL when no ID could be parsed) to
// their records, preserving input order. A duplicate key overwrites the
// earlier value but keeps its original position.
type Batch struct {
	keys    []string
	records map[string]VideoRecord
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{records: make(map[string]VideoRecord)}
}

// Set stores a record under key, overwriting any earlier record.
func (b *Batch) Set(key string, record VideoRecord) {
	if _, exists := b.records[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.records[key] = record
}

// Get returns the record stored under key.
func (b *Batch) Get(key string) (VideoRecord, bool) {
	record, ok := b.records[key]
	return record, ok
}

// Keys returns the batch keys in insertion order.
func (b *Batch) Keys() []string {
	return b.keys
}

// Len returns the number of records in the batch.
func (b *Batch) Len() int {
	return len(b.keys)
}

// MarshalJSON serializes the batch as a single JSON object whose keys follow
// insertion order, with HTML characters left unescaped.
func (b *Batch) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, key := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(key); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1) // drop the newline Encode appends
		buf.WriteByte(':')
		if err := enc.Encode(b.records[key]); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// TrainingChunk is one bounded-length word-span of a video's transcript,
// sized for use as a single language-model training example.
type TrainingChunk struct {
	VideoID    string `json:"video_id"`
	ChunkIndex int    `json:"chunk_index"`
	Text       string `json:"text"`
}
