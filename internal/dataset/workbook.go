package dataset

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/rpdform/internal/domain"
)

// Header keywords, matched case-insensitively as substrings.
var (
	codeHeaderKeywords  = []string{"değer", "value"}
	labelHeaderKeywords = []string{"metin", "text"}
)

// ParseWorkbook reads an .xlsx stream into a Table.
func ParseWorkbook(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return FromWorkbook(f)
}

// FromWorkbook turns every sheet with at least one data row into a
// category. The first row is the header.
func FromWorkbook(f *excelize.File) (*Table, error) {
	t := NewTable()
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
		}
		if len(rows) < 2 {
			continue
		}
		t.add(sheet, sheetOptions(rows))
	}
	if t.Len() == 0 {
		return nil, ErrNoCategories
	}
	return t, nil
}

// sheetOptions converts header + data rows to options. Columns are found
// by header keyword; when either is missing the first two columns are used.
func sheetOptions(rows [][]string) []domain.Option {
	codeIdx, labelIdx := headerColumns(rows[0])

	opts := make([]domain.Option, 0, len(rows)-1)
	for _, row := range rows[1:] {
		code := cell(row, codeIdx)
		label := cell(row, labelIdx)
		if code == "" || label == "" {
			continue
		}
		opts = append(opts, domain.Option{Code: code, Label: label})
	}
	return opts
}

func headerColumns(header []string) (codeIdx, labelIdx int) {
	codeIdx = findHeader(header, codeHeaderKeywords)
	labelIdx = findHeader(header, labelHeaderKeywords)
	if codeIdx < 0 || labelIdx < 0 {
		return 0, 1
	}
	return codeIdx, labelIdx
}

func findHeader(header []string, keywords []string) int {
	for i, h := range header {
		lower := strings.ToLower(h)
		if lower == "" {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
