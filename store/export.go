package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ZaguanLabs/xliffai"
)

// ExportFormat is the JSON structure correction files are exchanged in.
type ExportFormat struct {
	Version    string                     `json:"version"`
	ExportedAt string                     `json:"exported_at"`
	Lang       string                     `json:"lang"`
	Records    []xliffai.CorrectionRecord `json:"records"`
	Metadata   map[string]string          `json:"metadata,omitempty"`
}

// WriteRecords writes correction records to a writer in JSON format.
func WriteRecords(w io.Writer, lang string, records []xliffai.CorrectionRecord, metadata map[string]string) error {
	export := ExportFormat{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Lang:       lang,
		Records:    records,
		Metadata:   metadata,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ReadRecords reads a correction export from a reader.
func ReadRecords(r io.Reader) (*ExportFormat, error) {
	var export ExportFormat
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	return &export, nil
}

// ReadRecordsFile reads a correction export from a file.
// The path is provided by the caller and is intentionally user-controlled.
func ReadRecordsFile(path string) (*ExportFormat, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ReadRecords(f)
}

// RecordAdder is implemented by stores that accept correction records.
type RecordAdder interface {
	AddRecord(ctx context.Context, rec xliffai.CorrectionRecord, lang string) error
}

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Version  string
	Lang     string
	Imported int
	Failed   int
}

// Import loads every record of an export into a store. Individual
// record failures are counted, not fatal.
func Import(ctx context.Context, adder RecordAdder, export *ExportFormat) *ImportResult {
	result := &ImportResult{Version: export.Version, Lang: export.Lang}
	for _, rec := range export.Records {
		if err := adder.AddRecord(ctx, rec, export.Lang); err != nil {
			result.Failed++
			continue
		}
		result.Imported++
	}
	return result
}
