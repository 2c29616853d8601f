package exporter

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "keyprep/internal/errors"
	"keyprep/internal/tonality"
	"keyprep/pkg/contracts/domain"
)

// Sheet names of the exported workbooks
const (
	SheetCorrelations = "correlations"
	SheetConditions   = "conditions"
	SheetPractice     = "practice"
	SheetScaleFit     = "scale_fit"
	SheetMeanRatings  = "mean_ratings"
)

// Column headers read by the presentation tool
var (
	ConditionHeaders  = []string{"experiment", "contexts", "targets"}
	PracticeHeaders   = []string{"wav_pcontext", "wav_ptarget"}
	MeanRatingHeaders = []string{"exp_no", "context", "probe", "mean_rating", "n"}
)

// WorkbookWriter writes single-sheet xlsx artifacts
type WorkbookWriter struct {
	baseDir string
	logger  *slog.Logger
}

// NewWorkbookWriter creates a writer resolving relative paths against baseDir
func NewWorkbookWriter(baseDir string, logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{baseDir: baseDir, logger: logger}
}

// ExportCorrelationMatrix writes the matrix with labels along row 1 and
// column A. A1 is left empty.
func (w *WorkbookWriter) ExportCorrelationMatrix(filePath string, m *tonality.Matrix) error {
	if m == nil {
		return apperrors.NewInvalidArgumentError("matrix", nil, "correlation matrix is required")
	}

	header := make([]interface{}, 0, m.Size()+1)
	header = append(header, nil)
	for _, label := range m.Labels {
		header = append(header, label)
	}

	rows := make([][]interface{}, 0, m.Size())
	for i, label := range m.Labels {
		row := make([]interface{}, 0, m.Size()+1)
		row = append(row, label)
		for _, v := range m.Values[i] {
			row = append(row, cellFloat(v))
		}
		rows = append(rows, row)
	}

	return w.writeSheet(filePath, SheetCorrelations, header, rows)
}

// ExportConditions writes one row per condition in generation order
func (w *WorkbookWriter) ExportConditions(filePath string, conditions []domain.Condition) error {
	rows := make([][]interface{}, 0, len(conditions))
	for _, c := range conditions {
		rows = append(rows, []interface{}{c.Experiment, c.Context, c.Target})
	}
	return w.writeSheet(filePath, SheetConditions, stringCells(ConditionHeaders), rows)
}

// ExportPracticeManifest writes the practice trial pairs
func (w *WorkbookWriter) ExportPracticeManifest(filePath string, pairs []domain.PracticePair) error {
	rows := make([][]interface{}, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []interface{}{p.Context, p.Target})
	}
	return w.writeSheet(filePath, SheetPractice, stringCells(PracticeHeaders), rows)
}

// ExportScaleFit writes one row per scale with its coefficient against each
// profile. Skipped scales follow with empty coefficients.
func (w *WorkbookWriter) ExportScaleFit(filePath string, fit *tonality.ScaleFit) error {
	if fit == nil {
		return apperrors.NewInvalidArgumentError("fit", nil, "scale fit is required")
	}

	header := make([]interface{}, 0, len(fit.Profiles)+1)
	header = append(header, "scale")
	for _, label := range fit.Profiles {
		header = append(header, label)
	}

	rows := make([][]interface{}, 0, len(fit.Scales)+len(fit.Skipped))
	for i, name := range fit.Scales {
		row := make([]interface{}, 0, len(fit.Profiles)+1)
		row = append(row, name)
		for _, v := range fit.Values[i] {
			row = append(row, cellFloat(v))
		}
		rows = append(rows, row)
	}
	for _, name := range fit.Skipped {
		rows = append(rows, []interface{}{name})
	}

	return w.writeSheet(filePath, SheetScaleFit, header, rows)
}

// ExportMeanRatings writes the aggregated ratings
func (w *WorkbookWriter) ExportMeanRatings(filePath string, ratings []domain.MeanRating) error {
	rows := make([][]interface{}, 0, len(ratings))
	for _, r := range ratings {
		rows = append(rows, []interface{}{r.ExpNo, r.Context, r.Probe, cellFloat(r.Mean), r.N})
	}
	return w.writeSheet(filePath, SheetMeanRatings, stringCells(MeanRatingHeaders), rows)
}

// writeSheet saves a new workbook holding a single sheet. The header row is
// bold. The workbook is closed on every path.
func (w *WorkbookWriter) writeSheet(filePath, sheet string, header []interface{}, rows [][]interface{}) error {
	fullPath := resolvePath(w.baseDir, filePath)

	w.logger.Info("Writing workbook",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.String("sheet", sheet),
		slog.Int("row_count", len(rows)))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("Failed to close workbook",
				slog.String("path", fullPath),
				slog.String("error", err.Error()))
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return apperrors.NewStorageError("failed to name sheet", err).
			WithContext("path", fullPath).
			WithContext("sheet", sheet)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return apperrors.NewStorageError("failed to write header", err).
			WithContext("path", fullPath)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperrors.NewStorageError("failed to create header style", err).
			WithContext("path", fullPath)
	}
	if err := f.SetRowStyle(sheet, 1, 1, style); err != nil {
		return apperrors.NewStorageError("failed to style header", err).
			WithContext("path", fullPath)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewStorageError("invalid cell reference", err).
				WithContext("path", fullPath)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return apperrors.NewStorageError("failed to write row", err).
				WithContext("path", fullPath).
				WithContext("row", i+2)
		}
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err).
			WithContext("path", filepath.Dir(fullPath))
	}
	if err := f.SaveAs(fullPath); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).
			WithContext("path", fullPath)
	}

	return nil
}

func stringCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
