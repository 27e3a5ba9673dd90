// exporter.go
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ExportFormat identifies one of the supported output serializations.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatTXT  ExportFormat = "txt"
	FormatCSV  ExportFormat = "csv"
)

// UnsupportedFormatError is returned when Save is asked for a format outside
// the recognized set.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s (use one of %s)", e.Format, strings.Join(supportedFormatNames(), ", "))
}

// formatWriter serializes a batch into one output format.
type formatWriter interface {
	Write(w io.Writer, batch *Batch) error
}

// The closed set of export strategies. Formats outside this map are rejected
// before anything touches the filesystem.
var formatWriters = map[ExportFormat]formatWriter{
	FormatJSON: jsonWriter{},
	FormatTXT:  txtWriter{},
	FormatCSV:  csvWriter{},
}

func supportedFormatNames() []string {
	return []string{string(FormatJSON), string(FormatTXT), string(FormatCSV)}
}

// Exporter writes batches to files under the configured output directory.
type Exporter struct {
	outputDir string
	logger    *log.Logger
}

// NewExporter creates an exporter rooted at outputDir. A nil logger falls
// back to the standard logger.
func NewExporter(outputDir string, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.Default()
	}
	return &Exporter{outputDir: outputDir, logger: logger}
}

// Save serializes the batch in the given format to {outputDir}/{name}.{format}
// and returns the written path. The output directory is created first; an
// unrecognized format is rejected before anything is written.
func (e *Exporter) Save(batch *Batch, format ExportFormat, name string) (string, error) {
	writer, ok := formatWriters[format]
	if !ok {
		return "", &UnsupportedFormatError{Format: string(format)}
	}

	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(e.outputDir, fmt.Sprintf("%s.%s", name, format))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := writer.Write(f, batch); err != nil {
		return "", fmt.Errorf("writing %s export: %w", format, err)
	}

	e.logger.Printf("Transcripts saved to: %s", path)
	return path, nil
}

// jsonWriter serializes the entire batch, failure records included, as one
// indented document with Unicode text left unescaped.
type jsonWriter struct{}

func (jsonWriter) Write(w io.Writer, batch *Batch) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(batch)
}

// txtWriter writes one block per successful record; failures are omitted.
type txtWriter struct{}

func (txtWriter) Write(w io.Writer, batch *Batch) error {
	separator := strings.Repeat("-", 80)
	for _, key := range batch.Keys() {
		record, _ := batch.Get(key)
		if !record.Success() {
			continue
		}
		if _, err := fmt.Fprintf(w, "Video ID: %s\nFull Text: %s\n%s\n\n", key, record.FullText, separator); err != nil {
			return err
		}
	}
	return nil
}

// csvWriter explodes successful records to one row per segment. The header
// row is always written, so a batch with no successes yields a header-only
// file.
type csvWriter struct{}

func (csvWriter) Write(w io.Writer, batch *Batch) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"video_id", "start_time", "duration", "text"}); err != nil {
		return err
	}

	for _, key := range batch.Keys() {
		record, _ := batch.Get(key)
		if !record.Success() {
			continue
		}
		for _, segment := range record.Segments {
			row := []string{
				record.VideoID,
				strconv.FormatFloat(segment.Start, 'f', -1, 64),
				strconv.FormatFloat(segment.Duration, 'f', -1, 64),
				segment.Text,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
