package query

import (
	"regexp"

	"github.com/kapu/wiki-answer-bot-go/internal/domain"
	"github.com/kapu/wiki-answer-bot-go/internal/lexicon"
)

type categoryMatcher struct {
	category domain.Category
	pattern  *regexp.Regexp
}

// Classifier labels cleaned question text with an intent.
type Classifier struct {
	categories   []categoryMatcher
	measurement  *regexp.Regexp
	time         *regexp.Regexp
	verification *regexp.Regexp
}

func NewClassifier(lex *lexicon.Lexicon) *Classifier {
	c := &Classifier{
		categories:   make([]categoryMatcher, 0, len(lex.Categories)),
		measurement:  wordSet(lex.MeasurementWords),
		time:         wordSet(lex.TimeWords),
		verification: wordSet(lex.VerificationWords),
	}
	for _, cp := range lex.Categories {
		c.categories = append(c.categories, categoryMatcher{
			category: cp.Category,
			pattern:  regexp.MustCompile(cp.Pattern),
		})
	}
	return c
}

// Classify is pure; categories are tried in lexicon order and the first match wins.
func (c *Classifier) Classify(text string) domain.Intent {
	intent := domain.Intent{Category: domain.CategoryGeneral}

	for _, m := range c.categories {
		if m.pattern.MatchString(text) {
			intent.Category = m.category
			break
		}
	}

	intent.IsMeasurement = matches(c.measurement, text)
	intent.IsTime = matches(c.time, text)
	intent.NeedsVerification = matches(c.verification, text)
	return intent
}

func wordSet(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return nil
	}
	return regexp.MustCompile(`\b(?:` + alternation(words) + `)\b`)
}

func matches(re *regexp.Regexp, text string) bool {
	return re != nil && re.MatchString(text)
}
