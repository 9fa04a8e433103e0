package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrSourceNotFound is returned when the dataset file does not exist.
var ErrSourceNotFound = errors.New("dataset file not found")

// SchemaError reports a missing required column or a malformed value.
// Row is the 1-based data row number, or 0 when a column is absent entirely.
type SchemaError struct {
	Column string
	Row    int
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("schema error: column %q %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("schema error: row %d, column %q: %s", e.Row, e.Column, e.Reason)
}

// requiredColumns must all be present (after normalization) for a load to succeed.
var requiredColumns = []string{"name", "calories", "proteins", "fat", "carbohydrate"}

// Record is one row of the nutrition dataset. Description is synthesized
// from the other fields and is always regenerable from them.
type Record struct {
	Name         string
	Calories     float64
	Proteins     float64
	Fat          float64
	Carbohydrate float64
	Description  string
	Extra        map[string]string // remaining normalized columns, verbatim
}

// Table is a fully loaded and validated dataset.
type Table struct {
	Columns []string // normalized source columns in file order, description excluded
	Records []Record
}

// Load reads a tabular dataset from path. CSV and XLSX (first sheet) are
// supported, chosen by file extension. The load is all-or-nothing: any
// malformed row aborts with a SchemaError and no records are returned.
func Load(path string) (*Table, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &SchemaError{Column: "name", Reason: "is required but the file has no header row"}
	}

	header := make([]string, len(rows[0]))
	for i, col := range rows[0] {
		header[i] = NormalizeColumn(col)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[col] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			return nil, &SchemaError{Column: col, Reason: "is required but missing"}
		}
	}

	// A source description column is ignored entirely: descriptions are
	// always synthesized, so stale file text never reaches storage or
	// vector metadata.
	columns := make([]string, 0, len(header))
	for _, col := range header {
		if col != "description" {
			columns = append(columns, col)
		}
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 1

		cell := func(col string) string {
			idx := colIndex[col]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		rec := Record{
			Name:  cell("name"),
			Extra: map[string]string{},
		}
		if rec.Name == "" {
			return nil, &SchemaError{Column: "name", Row: rowNum, Reason: "value is empty"}
		}

		numeric := map[string]*float64{
			"calories":     &rec.Calories,
			"proteins":     &rec.Proteins,
			"fat":          &rec.Fat,
			"carbohydrate": &rec.Carbohydrate,
		}
		for col, dst := range numeric {
			raw := cell(col)
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &SchemaError{Column: col, Row: rowNum, Reason: fmt.Sprintf("value %q is not numeric", raw)}
			}
			*dst = v
		}

		for j, col := range header {
			if col == "name" || col == "description" {
				continue
			}
			if _, isNumeric := numeric[col]; isNumeric {
				continue
			}
			if j < len(row) {
				rec.Extra[col] = strings.TrimSpace(row[j])
			}
		}

		rec.Description = Describe(rec.Name, rec.Calories, rec.Proteins, rec.Fat, rec.Carbohydrate)
		records = append(records, rec)
	}

	return &Table{Columns: columns, Records: records}, nil
}

// Describe synthesizes the free-text description indexed for retrieval.
// The template is fixed; identical inputs always yield identical output.
func Describe(name string, calories, proteins, fat, carbohydrate float64) string {
	return fmt.Sprintf("%s has %s calories, %sg protein, %sg fat, and %sg carbohydrate.",
		name,
		FormatNumber(calories),
		FormatNumber(proteins),
		FormatNumber(fat),
		FormatNumber(carbohydrate),
	)
}

// NormalizeColumn lowercases a header cell and replaces spaces with underscores.
func NormalizeColumn(col string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(col)), " ", "_")
}

// FormatNumber renders a value without trailing zeros or exponent notation
// (250 not 250.00, 1200000 not 1.2e+06). Descriptions, sqlite values, and
// vector metadata all format numbers through it.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func readRows(path string) ([][]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path)
	default:
		return readCSV(path)
	}
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // rows are validated against the header later
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
