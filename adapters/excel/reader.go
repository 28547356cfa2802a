package excel

import (
	"context"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"modeleval/domain/core"
	"modeleval/internal/errors"

	"github.com/xuri/excelize/v2"
)

// PairReader reads paired predictor/target columns from Excel or CSV
// files. Cells must parse as finite numbers; blank or non-numeric cells
// fail the read instead of being coerced.
type PairReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewPairReader creates a reader that handles both Excel and CSV files
func NewPairReader(filePath string) *PairReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &PairReader{filePath: filePath, fileType: fileType}
}

// Source returns the file path backing this reader
func (r *PairReader) Source() string {
	return r.filePath
}

// ReadPairs loads the two named columns as equal-length float slices
func (r *PairReader) ReadPairs(ctx context.Context, predictor, target core.VariableKey) ([]float64, []float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, nil, errors.NotFound("data file " + r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, nil, errors.InvalidInputf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, errors.InvalidInput("data file must have a header row and at least one data row")
	}

	return r.extractColumns(rows, predictor.String(), target.String())
}

func (r *PairReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	// Always use Sheet1
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read Sheet1")
	}
	return rows, nil
}

func (r *PairReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV file")
	}
	return rows, nil
}

func (r *PairReader) extractColumns(rows [][]string, predictor, target string) ([]float64, []float64, error) {
	header := rows[0]
	predIdx, targIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case predictor:
			predIdx = i
		case target:
			targIdx = i
		}
	}
	if predIdx < 0 {
		return nil, nil, errors.NotFound("predictor column " + predictor)
	}
	if targIdx < 0 {
		return nil, nil, errors.NotFound("target column " + target)
	}

	x := make([]float64, 0, len(rows)-1)
	y := make([]float64, 0, len(rows)-1)
	for i, row := range rows[1:] {
		px, err := parseCell(row, predIdx)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "row %d column %s", i+2, predictor)
		}
		py, err := parseCell(row, targIdx)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "row %d column %s", i+2, target)
		}
		x = append(x, px)
		y = append(y, py)
	}
	return x, y, nil
}

func parseCell(row []string, idx int) (float64, error) {
	if idx >= len(row) {
		return 0, errors.InvalidInput("cell is missing")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil {
		return 0, errors.InvalidInputf("cell %q is not numeric", row[idx])
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.InvalidInputf("cell %q is not finite", row[idx])
	}
	return v, nil
}
