package tabular

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"enrichly/internal/domain"
)

func TestRead_CSV(t *testing.T) {
	csv := "mfg_part_number,manufacturer_name\nQO120,Square D\nTX5N4,Carrier\n"

	src, err := Read("products.csv", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{"mfg_part_number", "manufacturer_name"}, src.Header)
	require.Len(t, src.Records, 2)
	assert.Equal(t, []string{"QO120", "Square D"}, src.Records[0])
}

func TestRead_CSVStripsBOMAndTrimsHeaders(t *testing.T) {
	csv := "﻿mfg_part_number, manufacturer_name \nQO120,Square D\n"

	src, err := Read("products.csv", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{"mfg_part_number", "manufacturer_name"}, src.Header)
	assert.Equal(t, 0, src.Column("mfg_part_number"))
}

func TestRead_CSVRaggedRows(t *testing.T) {
	csv := "mfg_part_number,manufacturer_name,category_gen\nQO120\nTX5N4,Carrier,HVAC,extra\n"

	src, err := Read("products.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, src.Records, 2)
	assert.Len(t, src.Records[0], 1)
	assert.Len(t, src.Records[1], 4)
}

func TestRead_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"mfg_part_number", "manufacturer_name"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"QO120", "Square D"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	src, err := Read("products.xlsx", &buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"mfg_part_number", "manufacturer_name"}, src.Header)
	require.Len(t, src.Records, 1)
	assert.Equal(t, "QO120", src.Records[0][0])
}

func TestRead_UnsupportedExtension(t *testing.T) {
	_, err := Read("products.pdf", strings.NewReader("data"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	_, err = Read("products", strings.NewReader("data"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestRead_EmptyCSV(t *testing.T) {
	_, err := Read("products.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrEmptyTable)
}

func TestRead_HeaderOnlyCSV(t *testing.T) {
	src, err := Read("products.csv", strings.NewReader("mfg_part_number\n"))
	require.NoError(t, err)
	assert.Empty(t, src.Records)
}

func TestSource_Column(t *testing.T) {
	src := &Source{Header: []string{"mfg_part_number", "manufacturer_name"}}
	assert.Equal(t, 0, src.Column("mfg_part_number"))
	assert.Equal(t, 1, src.Column("manufacturer_name"))
	assert.Equal(t, -1, src.Column("Mfg_Part_Number"))
	assert.Equal(t, -1, src.Column("missing"))
}

func TestCell(t *testing.T) {
	record := []string{" QO120 ", "Square D"}
	assert.Equal(t, "QO120", Cell(record, 0))
	assert.Equal(t, "Square D", Cell(record, 1))
	assert.Equal(t, "", Cell(record, 2))
	assert.Equal(t, "", Cell(record, -1))
}
