// Package query turns raw user questions into normalized, classified queries.
package query

import (
	"github.com/kapu/wiki-answer-bot-go/internal/domain"
	"github.com/kapu/wiki-answer-bot-go/internal/lexicon"
)

// Analyzer runs the normalizer and, when there is something left to search for, the classifier.
type Analyzer struct {
	normalizer *Normalizer
	classifier *Classifier
}

func NewAnalyzer(lex *lexicon.Lexicon) *Analyzer {
	return &Analyzer{
		normalizer: NewNormalizer(lex),
		classifier: NewClassifier(lex),
	}
}

// Analyze never classifies an empty subject; callers check IsEmpty first.
func (a *Analyzer) Analyze(raw string) *domain.Query {
	q := &domain.Query{
		Raw:        raw,
		Cleaned:    a.normalizer.Clean(raw),
		Normalized: a.normalizer.Normalize(raw),
	}
	if q.IsEmpty() {
		return q
	}
	q.Intent = a.classifier.Classify(q.Cleaned)
	return q
}

func (a *Analyzer) Normalizer() *Normalizer {
	return a.normalizer
}

func (a *Analyzer) Classifier() *Classifier {
	return a.classifier
}
