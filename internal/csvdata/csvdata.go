// Package csvdata loads the input/expected sample files genforge's CLI
// takes as its first two positional arguments, following the same
// csv.NewReader/ReadAll idiom used elsewhere in the codebase for feed
// parsing.
package csvdata

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/cumbiambero/genforge/internal/errs"
)

// LoadInputs reads one row per sample, one column per variable,
// positional (column i feeds variable i). Empty lines are skipped.
func LoadInputs(path string) ([][]float64, error) {
	return loadRows(path, 0)
}

// LoadExpected reads the scalar expected result from column 0 of each
// row. Empty lines are skipped.
func LoadExpected(path string) ([]float64, error) {
	rows, err := loadRows(path, 1)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = row[0]
	}
	return out, nil
}

// loadRows parses every non-empty record in path as a row of decimal
// numbers. minCols, when non-zero, rejects rows shorter than it.
func loadRows(path string, minCols int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Filef("cannot open %s: %v", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errs.Filef("cannot read %s: %v", path, err)
	}

	rows := make([][]float64, 0, len(records))
	for _, record := range records {
		if isBlankRecord(record) {
			continue
		}
		if minCols > 0 && len(record) < minCols {
			return nil, errs.Parsef("row in %s has %d columns, want at least %d", path, len(record), minCols)
		}
		row := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errs.Parsef("invalid number %q in %s", field, path)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
