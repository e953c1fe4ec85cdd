// Package extract pulls measurement and date tokens out of article text.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/kapu/wiki-answer-bot-go/internal/constants"
	"github.com/kapu/wiki-answer-bot-go/internal/util"
)

// Extractor scans the head of an article for typed facts.
type Extractor struct {
	measurement *regexp.Regexp
	date        *regexp.Regexp
	scanLimit   int
}

// NewExtractor builds the measurement pattern from units and the date pattern from month names.
func NewExtractor(units, months []string) *Extractor {
	return &Extractor{
		measurement: regexp.MustCompile(`(?i)\b\d+(?:,\d{3})*(?:\.\d+)?\s*(?:square\s+)?(?:` + quoteAll(units) + `)\b`),
		date:        regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:` + quoteAll(months) + `)\b|\b(?:1\d|20)\d{2}\b`),
		scanLimit:   constants.ExtractLimits.ScanChars,
	}
}

// Measurements returns measurement tokens in order of appearance, duplicates kept.
func (e *Extractor) Measurements(text string) []string {
	return e.scan(e.measurement, text)
}

// Dates returns "<day> <Month>" and 1000-2099 year tokens in order of appearance.
func (e *Extractor) Dates(text string) []string {
	return e.scan(e.date, text)
}

func (e *Extractor) scan(re *regexp.Regexp, text string) []string {
	head := util.PrefixRunes(text, e.scanLimit)
	found := re.FindAllString(head, -1)
	if found == nil {
		return []string{}
	}
	for i, token := range found {
		found[i] = strings.Join(strings.Fields(token), " ")
	}
	return found
}

func quoteAll(words []string) string {
	sorted := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			sorted = append(sorted, regexp.QuoteMeta(w))
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	if len(sorted) == 0 {
		// matches nothing
		return `[^\x00-\x{10FFFF}]`
	}
	return strings.Join(sorted, "|")
}
