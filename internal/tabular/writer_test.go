package tabular

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"enrichly/internal/domain"
)

func sampleTable() *Table {
	table := NewTable("mfg_part_number", "confidence", "total_tokens", "cost_inr", "is_summary")
	idx := table.AppendRow()
	table.Set(idx, "mfg_part_number", "QO120")
	table.Set(idx, "confidence", "HIGH")
	table.Set(idx, "total_tokens", 1500)
	table.Set(idx, "cost_inr", 0.125)
	table.Set(idx, "is_summary", false)
	return table
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(sampleTable(), &buf))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, bom), "csv output should start with a UTF-8 BOM")

	r := csv.NewReader(bytes.NewReader(raw[len(bom):]))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"mfg_part_number", "confidence", "total_tokens", "cost_inr", "is_summary"}, rows[0])
	assert.Equal(t, []string{"QO120", "HIGH", "1500", "0.125", "false"}, rows[1])
}

func TestWriteCSV_UnwrittenCellsAreEmpty(t *testing.T) {
	table := NewTable("a", "b")
	idx := table.AppendRow()
	table.Set(idx, "a", "only")

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(table, &buf))

	r := csv.NewReader(bytes.NewReader(buf.Bytes()[len(bom):]))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"only", ""}, rows[1])
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(sampleTable(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"mfg_part_number", "confidence", "total_tokens", "cost_inr", "is_summary"}, rows[0])
	assert.Equal(t, "QO120", rows[1][0])
	assert.Equal(t, "1500", rows[1][2])
}

func TestWrite_DispatchesOnFormat(t *testing.T) {
	var asCSV bytes.Buffer
	require.NoError(t, Write(sampleTable(), domain.TableFormatCSV, &asCSV))
	assert.True(t, bytes.HasPrefix(asCSV.Bytes(), bom))

	var asXLSX bytes.Buffer
	require.NoError(t, Write(sampleTable(), domain.TableFormatXLSX, &asXLSX))
	assert.True(t, bytes.HasPrefix(asXLSX.Bytes(), []byte("PK")), "xlsx output should be a zip archive")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", ContentType(domain.TableFormatCSV))
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		ContentType(domain.TableFormatXLSX))
}
