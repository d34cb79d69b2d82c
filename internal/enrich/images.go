package enrich

import (
	"strings"

	"enrichly/internal/domain"
)

// IsWebURL reports whether a URL is a plain http(s) link. Search results
// occasionally carry data: or x-raw-image: schemes that are useless to
// downstream consumers.
func IsWebURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// SelectBestImage picks the candidate most likely to show the right
// product. A candidate whose source page lives on the manufacturer's own
// site wins outright at HIGH confidence. Failing that, the first candidate
// with a usable link is taken at MEDIUM. With no usable candidate the
// match is empty and LOW.
func SelectBestImage(candidates []domain.ImageCandidate, manufacturer string) domain.ImageMatch {
	match := domain.ImageMatch{Confidence: domain.ConfidenceLow}
	if len(candidates) == 0 {
		return match
	}

	if manufacturer != "" {
		needle := strings.ToLower(manufacturer)
		for _, c := range candidates {
			if strings.Contains(strings.ToLower(c.SourceURL), needle) {
				match.ImageURL = c.URL
				match.ThumbnailURL = c.ThumbnailURL
				match.SourceURL = c.SourceURL
				match.ManufacturerMatch = true
				match.Confidence = domain.ConfidenceHigh
				return match
			}
		}
	}

	for _, c := range candidates {
		if IsWebURL(c.URL) {
			match.ImageURL = c.URL
			match.ThumbnailURL = c.ThumbnailURL
			match.SourceURL = c.SourceURL
			match.Confidence = domain.ConfidenceMedium
			return match
		}
	}
	return match
}
