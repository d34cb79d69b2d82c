package tabular

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"enrichly/internal/domain"
)

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "enriched_data", SanitizeFilename("enriched data"))
	assert.Equal(t, "q4_catalog_final", SanitizeFilename("q4 catalog (final)"))
	assert.Equal(t, "a_b", SanitizeFilename("a///___b"))
	assert.Equal(t, "report", SanitizeFilename("__report__"))
	assert.Equal(t, "already-safe_name-1", SanitizeFilename("already-safe_name-1"))
	assert.Len(t, SanitizeFilename(strings.Repeat("x", 250)), 100)
}

func TestArtifactFilename(t *testing.T) {
	name := ArtifactFilename("enriched_data", domain.TableFormatXLSX)
	assert.Regexp(t, regexp.MustCompile(`^enriched_data_\d{8}_\d{6}\.xlsx$`), name)

	name = ArtifactFilename("enriched data", domain.TableFormatCSV)
	assert.Regexp(t, regexp.MustCompile(`^enriched_data_\d{8}_\d{6}\.csv$`), name)
}
