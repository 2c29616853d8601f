package exporter

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "keyprep/internal/errors"
	"keyprep/pkg/contracts/domain"
)

// ResponseHeaders is the column layout of the combined responses CSV
var ResponseHeaders = []string{
	"exp_no", "context", "probe", "rating", "reaction_time", "participant", "date",
}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	baseDir string
	logger  *slog.Logger
}

// NewCSVWriter creates a writer resolving relative paths against baseDir
func NewCSVWriter(baseDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{baseDir: baseDir, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := resolvePath(w.baseDir, filePath)

	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err).
			WithContext("path", filepath.Dir(fullPath))
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return apperrors.NewStorageError("failed to open file", err).
			WithContext("path", fullPath)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewStorageError("failed to write BOM", err).
				WithContext("path", fullPath)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return apperrors.NewStorageError("failed to write headers", err).
				WithContext("path", fullPath)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewStorageError("failed to write record", err).
				WithContext("path", fullPath).
				WithContext("record", i)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewStorageError("failed to flush CSV", err).
			WithContext("path", fullPath)
	}
	return nil
}

// ExportResponses writes the combined trial records as a BOM-prefixed CSV.
// Missing ratings and reaction times are written as empty cells.
func (w *CSVWriter) ExportResponses(filePath string, records []domain.TrialRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ExpNo,
			r.Context,
			r.Probe,
			formatFloat(r.Rating),
			formatFloat(r.ReactionTime),
			r.Participant,
			r.Date,
		})
	}

	return w.WriteCSV(filePath, WriteOptions{
		Headers:   ResponseHeaders,
		Records:   rows,
		BOMPrefix: true,
	})
}

// resolvePath joins relative paths onto baseDir
func resolvePath(baseDir, filePath string) string {
	if filepath.IsAbs(filePath) || baseDir == "" {
		return filePath
	}
	return filepath.Join(baseDir, filePath)
}
