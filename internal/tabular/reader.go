package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"enrichly/internal/domain"
)

// Source is a parsed input table: a header row plus string records.
type Source struct {
	Header  []string
	Records [][]string
}

// Read parses an uploaded tabular file. The format is chosen by filename
// extension; the first row is the header.
func Read(filename string, r io.Reader) (*Source, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	format, ok := domain.AllowedTableExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, ext)
	}
	switch format {
	case domain.TableFormatCSV:
		return readCSV(r)
	default:
		return readXLSX(r)
	}
}

func readCSV(r io.Reader) (*Source, error) {
	cr := csv.NewReader(r)
	// Spreadsheet exports routinely produce ragged rows.
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return newSource(records)
}

func readXLSX(r io.Reader) (*Source, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading workbook rows: %w", err)
	}
	return newSource(rows)
}

func newSource(records [][]string) (*Source, error) {
	if len(records) == 0 {
		return nil, domain.ErrEmptyTable
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "﻿")
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	return &Source{Header: header, Records: records[1:]}, nil
}

// Column returns the index of a header column, or -1 when absent.
func (s *Source) Column(name string) int {
	for i, h := range s.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns a trimmed cell value, empty when the record is too short to
// hold the column.
func Cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
