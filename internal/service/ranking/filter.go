// Package ranking filters and scores candidate articles.
package ranking

import (
	"strings"
)

// TopicFilter rejects titles that name fictional or media subjects.
type TopicFilter struct {
	terms []string
}

func NewTopicFilter(denylist []string) *TopicFilter {
	terms := make([]string, 0, len(denylist))
	for _, term := range denylist {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return &TopicFilter{terms: terms}
}

// IsUnwanted reports whether title contains any denylisted term, ignoring case.
func (f *TopicFilter) IsUnwanted(title string) bool {
	lower := strings.ToLower(title)
	for _, term := range f.terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// Matched returns the first denylisted term found in title, for logging.
func (f *TopicFilter) Matched(title string) string {
	lower := strings.ToLower(title)
	for _, term := range f.terms {
		if strings.Contains(lower, term) {
			return term
		}
	}
	return ""
}
