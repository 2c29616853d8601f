package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"

	apperrors "keyprep/internal/errors"
	"keyprep/pkg/contracts/domain"
)

// Column names in presentation-tool logs
const (
	ColExpNo        = "exp_no"
	ColContext      = "context"
	ColProbe        = "probe"
	ColRating       = "sld_rating.response"
	ColReactionTime = "sld_rating.rt"
	ColParticipant  = "participant"
	ColDate         = "date"
)

// RequiredColumns lists the columns every response log must carry, in
// projection order.
var RequiredColumns = []string{
	ColExpNo, ColContext, ColProbe, ColRating, ColReactionTime, ColParticipant, ColDate,
}

// DefaultDropRows is the number of practice trials at the top of each log
const DefaultDropRows = 2

const utf8BOM = "\ufeff"

// ResponseLoader reads per-participant response logs into TrialRecords
type ResponseLoader struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewResponseLoader creates a loader. A nil logger uses slog.Default().
func NewResponseLoader(logger *slog.Logger) *ResponseLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResponseLoader{
		logger:   logger,
		validate: validator.New(),
	}
}

// LoadResponses loads the given logs with a default loader
func LoadResponses(ctx context.Context, paths []string, dropFirstN int) ([]domain.TrialRecord, error) {
	return NewResponseLoader(nil).Load(ctx, paths, dropFirstN)
}

// Load parses each file, drops its first dropFirstN data rows by position and
// projects the rest onto TrialRecord. Rows without an exp_no are not trials
// and are skipped. Files are concatenated in the order given and per-file row
// order is kept. A log missing a required column fails the whole load.
func (l *ResponseLoader) Load(ctx context.Context, paths []string, dropFirstN int) ([]domain.TrialRecord, error) {
	if dropFirstN < 0 {
		return nil, apperrors.NewInvalidArgumentError("drop_first_n_rows", dropFirstN,
			"row count to drop must not be negative")
	}

	var out []domain.TrialRecord
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := l.loadFile(path, dropFirstN)
		if err != nil {
			return nil, err
		}

		l.logger.InfoContext(ctx, "Loaded response log",
			slog.String("file", filepath.Base(path)),
			slog.Int("trials", len(records)))
		out = append(out, records...)
	}

	return out, nil
}

func (l *ResponseLoader) loadFile(path string, dropFirstN int) ([]domain.TrialRecord, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NewStructuralMismatchError(path, ColExpNo).
			WithContext("reason", "empty file")
	}

	columnMap, err := mapColumns(path, rows[0])
	if err != nil {
		return nil, err
	}

	data := rows[1:]
	if dropFirstN >= len(data) {
		return nil, nil
	}

	var records []domain.TrialRecord
	for i := dropFirstN; i < len(data); i++ {
		// header is row 1
		rowNum := i + 2
		row := data[i]

		if isBlank(row, columnMap) {
			l.logger.Debug("Skipping blank response row",
				slog.String("file", path),
				slog.Int("row", rowNum))
			continue
		}
		// routine rows outside the trial loop carry participant and date only
		if cell(row, columnMap[ColExpNo]) == "" {
			l.logger.Debug("Skipping non-trial response row",
				slog.String("file", path),
				slog.Int("row", rowNum))
			continue
		}

		record, err := projectRow(path, rowNum, row, columnMap)
		if err != nil {
			return nil, err
		}
		if err := l.validate.Struct(record); err != nil {
			return nil, apperrors.NewAppValidationError("invalid response row", err).
				WithContext("file", path).
				WithContext("row", rowNum)
		}
		records = append(records, record)
	}

	return records, nil
}

// readRows returns all rows of a log, header included. .xlsx logs are read
// from their first sheet; everything else is parsed as CSV.
func readRows(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readWorkbookRows(path)
	}
	return readCSVRows(path)
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open response log", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError("malformed CSV", err).
				WithContext("path", path)
		}
		rows = append(rows, row)
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}
	return rows, nil
}

func readWorkbookRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open response workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet", err).
			WithContext("path", path).
			WithContext("sheet", sheets[0])
	}
	return rows, nil
}

// mapColumns locates every required column in the header
func mapColumns(path string, header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.TrimSpace(name)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	columnMap := make(map[string]int, len(RequiredColumns))
	for _, col := range RequiredColumns {
		i, ok := index[col]
		if !ok {
			return nil, apperrors.NewStructuralMismatchError(path, col)
		}
		columnMap[col] = i
	}
	return columnMap, nil
}

func projectRow(path string, rowNum int, row []string, columnMap map[string]int) (domain.TrialRecord, error) {
	rating, err := parseNumeric(path, rowNum, ColRating, cell(row, columnMap[ColRating]))
	if err != nil {
		return domain.TrialRecord{}, err
	}
	rt, err := parseNumeric(path, rowNum, ColReactionTime, cell(row, columnMap[ColReactionTime]))
	if err != nil {
		return domain.TrialRecord{}, err
	}

	return domain.TrialRecord{
		ExpNo:        cell(row, columnMap[ColExpNo]),
		Context:      cell(row, columnMap[ColContext]),
		Probe:        cell(row, columnMap[ColProbe]),
		Rating:       rating,
		ReactionTime: rt,
		Participant:  cell(row, columnMap[ColParticipant]),
		Date:         cell(row, columnMap[ColDate]),
	}, nil
}

// parseNumeric converts a rating or reaction-time cell. An empty cell is a
// trial without response and becomes NaN.
func parseNumeric(path string, rowNum int, column, raw string) (float64, error) {
	if raw == "" || strings.EqualFold(raw, "nan") || strings.EqualFold(raw, "none") {
		return math.NaN(), nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.NewParsingError(fmt.Sprintf("invalid number %q", raw), err).
			WithContext("file", path).
			WithContext("row", rowNum).
			WithContext("column", column)
	}
	return v, nil
}

// cell returns the trimmed value at index i, or "" for short rows
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string, columnMap map[string]int) bool {
	for _, i := range columnMap {
		if cell(row, i) != "" {
			return false
		}
	}
	return true
}
