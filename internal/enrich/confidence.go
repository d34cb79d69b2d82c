package enrich

import "enrichly/internal/domain"

// ScoreConfidence grades how well an extraction covered the requested
// attributes. Coverage above 80% is HIGH, above 50% is MEDIUM, anything
// else LOW. When no attributes were requested there is nothing to measure
// coverage against, so the grade falls back to extraction volume.
func ScoreConfidence(requested []string, extracted map[string]any) domain.Confidence {
	if len(extracted) == 0 {
		return domain.ConfidenceLow
	}
	if len(requested) == 0 {
		if len(extracted) > 5 {
			return domain.ConfidenceMedium
		}
		return domain.ConfidenceLow
	}

	matched := 0
	for _, attr := range requested {
		if _, ok := extracted[attr]; ok {
			matched++
		}
	}
	ratio := float64(matched) / float64(len(requested))
	switch {
	case ratio > 0.8:
		return domain.ConfidenceHigh
	case ratio > 0.5:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
