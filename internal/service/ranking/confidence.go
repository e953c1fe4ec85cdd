package ranking

import "github.com/kapu/wiki-answer-bot-go/internal/domain"

// Lower bounds are strict: a score equal to a threshold falls into the lower bucket.
var confidenceTable = []struct {
	above float64
	label domain.Confidence
}{
	{0.8, domain.ConfidenceVeryHigh},
	{0.6, domain.ConfidenceHigh},
	{0.4, domain.ConfidenceMedium},
}

// ConfidenceFor maps a relevance score to its label.
func ConfidenceFor(score float64) domain.Confidence {
	for _, row := range confidenceTable {
		if score > row.above {
			return row.label
		}
	}
	return domain.ConfidenceLow
}
