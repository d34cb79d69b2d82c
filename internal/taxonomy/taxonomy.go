// Package taxonomy supplies default attribute lists per product category,
// used when an enrichment request or bulk row does not name the attributes
// it wants extracted.
package taxonomy

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"enrichly/internal/enrich"
)

// Entry is one taxonomy row: a category, optionally narrowed by a
// subcategory, and the attribute names worth extracting for it.
type Entry struct {
	Category    string
	Subcategory string
	Attributes  []string
}

// DefaultEntries returns the built-in attribute sets for the trade
// families the prompt variants know about. Ordered for stable workbook
// output.
func DefaultEntries() []Entry {
	return []Entry{
		{Category: "electrical", Attributes: []string{
			"Material", "Color", "Voltage Rating", "Amperage Rating",
			"Number of Poles", "Mounting Type", "NEMA Rating", "Wire Gauge Range",
		}},
		{Category: "hvac", Attributes: []string{
			"BTU Rating", "Tonnage", "Voltage", "Phase",
			"Refrigerant Type", "SEER Rating", "Dimensions", "Weight",
		}},
		{Category: "plumbing", Attributes: []string{
			"Material", "Connection Type", "Connection Size",
			"Pressure Rating", "Temperature Rating", "Certification", "Finish",
		}},
		{Category: "refrigeration", Attributes: []string{
			"Capacity", "Voltage", "Phase", "Refrigerant Type",
			"Temperature Range", "Horsepower", "Dimensions",
		}},
	}
}

// Source resolves category names to default attribute lists. It starts
// with the built-in entries; LoadWorkbook layers customer-specific rows on
// top. Load before serving: lookups are safe for concurrent use only once
// loading is done.
type Source struct {
	entries map[string][]string
}

// NewSource creates a Source seeded with the built-in defaults.
func NewSource() *Source {
	s := &Source{entries: make(map[string][]string)}
	for _, e := range DefaultEntries() {
		s.entries[entryKey(e.Category, e.Subcategory)] = e.Attributes
	}
	return s
}

// LoadWorkbook merges attribute lists from an xlsx workbook into the
// source. The first sheet must have a header row with category and
// attributes columns, and optionally subcategory; the attributes cell is a
// comma-separated list. Workbook rows override built-in defaults for the
// same key.
func (s *Source) LoadWorkbook(path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("opening taxonomy workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("taxonomy workbook %s has no header row", path)
	}

	col := make(map[string]int)
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	catIdx, ok := col["category"]
	if !ok {
		return 0, fmt.Errorf("taxonomy workbook %s: missing category column", path)
	}
	attrIdx, ok := col["attributes"]
	if !ok {
		return 0, fmt.Errorf("taxonomy workbook %s: missing attributes column", path)
	}
	subIdx, hasSub := col["subcategory"]

	loaded := 0
	for _, row := range rows[1:] {
		category := cell(row, catIdx)
		if category == "" {
			continue
		}
		attrs := splitList(cell(row, attrIdx))
		if len(attrs) == 0 {
			continue
		}
		subcategory := ""
		if hasSub {
			subcategory = cell(row, subIdx)
		}
		s.entries[entryKey(category, subcategory)] = attrs
		loaded++
	}
	return loaded, nil
}

// AttributesFor returns the default attribute list for a category, most
// specific entry first: category+subcategory, then category, then the
// canonical trade family the category name aliases to. Unknown categories
// return nil.
func (s *Source) AttributesFor(category, subcategory string) []string {
	cat := strings.ToLower(strings.TrimSpace(category))
	if cat == "" {
		return nil
	}
	if sub := strings.ToLower(strings.TrimSpace(subcategory)); sub != "" {
		if attrs, ok := s.entries[cat+"|"+sub]; ok {
			return clone(attrs)
		}
	}
	if attrs, ok := s.entries[cat]; ok {
		return clone(attrs)
	}
	if family := enrich.CanonicalCategory(category); family != "" && family != cat {
		if attrs, ok := s.entries[family]; ok {
			return clone(attrs)
		}
	}
	return nil
}

func entryKey(category, subcategory string) string {
	cat := strings.ToLower(strings.TrimSpace(category))
	sub := strings.ToLower(strings.TrimSpace(subcategory))
	if sub == "" {
		return cat
	}
	return cat + "|" + sub
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func clone(attrs []string) []string {
	return append([]string(nil), attrs...)
}
