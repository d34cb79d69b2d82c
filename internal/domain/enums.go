package domain

// Confidence is a qualitative label for extraction completeness, not
// correctness: an extraction can be complete and still wrong.
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// TableFormat represents the allowed bulk input table formats.
type TableFormat string

const (
	TableFormatCSV  TableFormat = "csv"
	TableFormatXLSX TableFormat = "xlsx"
)

// AllowedTableExtensions maps file extensions (without dot) to TableFormat.
var AllowedTableExtensions = map[string]TableFormat{
	"csv":  TableFormatCSV,
	"xlsx": TableFormatXLSX,
}

// StorageBackend selects where batch artifacts are persisted.
type StorageBackend string

const (
	StorageBackendLocal StorageBackend = "local"
	StorageBackendS3    StorageBackend = "s3"
)
