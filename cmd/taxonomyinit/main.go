// Command taxonomyinit writes the built-in attribute taxonomy to an Excel
// workbook that can be extended by hand and loaded at server start.
// Usage: go run ./cmd/taxonomyinit [-out data/taxonomy.xlsx]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"enrichly/internal/taxonomy"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/taxonomy.xlsx", "output workbook path")
	flag.Parse()

	entries := taxonomy.DefaultEntries()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	header := []string{"category", "subcategory", "attributes"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		row := []interface{}{e.Category, e.Subcategory, strings.Join(e.Attributes, ", ")}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := f.SaveAs(*out); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}

	log.Printf("Wrote %d taxonomy rows to %s", len(entries), *out)
	return nil
}
