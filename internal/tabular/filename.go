package tabular

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"enrichly/internal/domain"
)

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in filenames and
// Content-Disposition headers. Replaces non-alphanumeric chars (except - _)
// with _, collapses consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// ArtifactFilename returns the timestamped name for a bulk output file.
// Format: {sanitized_prefix}_{YYYYMMDD_HHMMSS}.{ext}
func ArtifactFilename(prefix string, format domain.TableFormat) string {
	sanitized := SanitizeFilename(prefix)
	stamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", sanitized, stamp, format)
}
