// training.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultMaxChunkLength = 512

// TrainingPreparer splits extracted transcripts into bounded-length word
// chunks suitable as language-model training examples.
type TrainingPreparer struct {
	maxChunkLength int
}

// NewTrainingPreparer creates a preparer. maxChunkLength must be positive.
func NewTrainingPreparer(maxChunkLength int) (*TrainingPreparer, error) {
	if maxChunkLength <= 0 {
		return nil, fmt.Errorf("max chunk length must be positive, got %d", maxChunkLength)
	}
	return &TrainingPreparer{maxChunkLength: maxChunkLength}, nil
}

// ChunkText splits text on whitespace and greedily packs whole words into
// chunks of at most maxChunkLength characters, joined by single spaces. A
// word longer than the limit is emitted alone in its own chunk rather than
// split mid-word.
func (tp *TrainingPreparer) ChunkText(text string) []string {
	words := strings.Fields(text)

	var chunks []string
	var current []string
	currentLength := 0

	for _, word := range words {
		if currentLength+len(word)+1 <= tp.maxChunkLength {
			current = append(current, word)
			currentLength += len(word) + 1
		} else {
			if len(current) > 0 {
				chunks = append(chunks, strings.Join(current, " "))
			}
			current = []string{word}
			currentLength = len(word)
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// PrepareForTraining chunks every successful record's full text in batch
// order, numbering chunks from zero per video. Failed records contribute
// nothing.
func (tp *TrainingPreparer) PrepareForTraining(batch *Batch) []TrainingChunk {
	var training []TrainingChunk

	for _, key := range batch.Keys() {
		record, _ := batch.Get(key)
		if !record.Success() {
			continue
		}
		for i, chunk := range tp.ChunkText(record.FullText) {
			training = append(training, TrainingChunk{
				VideoID:    record.VideoID,
				ChunkIndex: i,
				Text:       chunk,
			})
		}
	}

	return training
}

// SaveTrainingData writes chunks as JSON Lines, one chunk per line, creating
// the destination directory if needed.
func (tp *TrainingPreparer) SaveTrainingData(chunks []TrainingChunk, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating training data directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	for _, chunk := range chunks {
		if err := enc.Encode(chunk); err != nil {
			return fmt.Errorf("writing training chunk: %w", err)
		}
	}

	return nil
}
