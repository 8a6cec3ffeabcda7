package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet preferred when loading a workbook.
const DefaultSheet = "مواد_القانون"

type column int

const (
	colID column = iota
	colSection
	colText
	colExample
)

// columnAliases maps normalized header names to corpus columns.
var columnAliases = map[string]column{
	"المادة":         colID,
	"رقم المادة":     colID,
	"article":        colID,
	"article id":     colID,
	"article number": colID,
	"id":             colID,

	"القسم":   colSection,
	"الباب":   colSection,
	"section": colSection,

	"نص القانون":   colText,
	"النص":         colText,
	"نص المادة":    colText,
	"text":         colText,
	"article text": colText,
	"law text":     colText,

	"مثال تطبيقي": colExample,
	"مثال":        colExample,
	"example":     colExample,
}

// Load reads a corpus from a local .xlsx or .csv file.
//
// For workbooks the named sheet is used when present, otherwise the first
// sheet. An empty sheet name selects DefaultSheet.
func Load(path, sheet string) ([]Article, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(path, sheet)
	case ".csv":
		rows, err = readCSV(path)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	if len(rows) == 0 {
		return nil, &LoadError{Path: path, Err: ErrNoHeader}
	}

	return FromRows(rows[0], rows[1:]), nil
}

// FromRows maps a header row and data rows to articles.
//
// Unknown columns are ignored, missing columns and short rows produce empty
// fields, and rows with no content at all are skipped.
func FromRows(header []string, rows [][]string) []Article {
	positions := map[column]int{}
	for i, name := range header {
		col, ok := columnAliases[normalizeHeader(name)]
		if !ok {
			continue
		}
		// First matching column wins.
		if _, seen := positions[col]; !seen {
			positions[col] = i
		}
	}

	articles := make([]Article, 0, len(rows))
	for _, row := range rows {
		a := Article{
			ID:      cell(row, positions, colID),
			Section: cell(row, positions, colSection),
			Text:    cell(row, positions, colText),
			Example: cell(row, positions, colExample),
		}
		if a.IsBlank() {
			continue
		}
		articles = append(articles, a)
	}

	return articles
}

func cell(row []string, positions map[column]int, col column) string {
	i, ok := positions[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	if sheet == "" {
		sheet = DefaultSheet
	}
	target := sheets[0]
	for _, name := range sheets {
		if name == sheet {
			target = name
			break
		}
	}

	rows, err := f.GetRows(target)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", target, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed csv: %w", err)
	}
	return rows, nil
}
