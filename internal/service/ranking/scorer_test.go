package ranking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kapu/wiki-answer-bot-go/internal/domain"
)

func TestConfidenceFor(t *testing.T) {
	tests := []struct {
		score float64
		want  domain.Confidence
	}{
		{0, domain.ConfidenceLow},
		{0.4, domain.ConfidenceLow},
		{0.41, domain.ConfidenceMedium},
		{0.6, domain.ConfidenceMedium},
		{0.6000001, domain.ConfidenceHigh},
		{0.8, domain.ConfidenceHigh},
		{0.8000001, domain.ConfidenceVeryHigh},
		{1, domain.ConfidenceVeryHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ConfidenceFor(tt.score), "score %v", tt.score)
	}
}

func TestConfidenceForIsMonotonic(t *testing.T) {
	prev := ConfidenceFor(0)
	for i := 1; i <= 1000; i++ {
		cur := ConfidenceFor(float64(i) / 1000)
		assert.True(t, cur.AtLeast(prev), "label dropped at %v", float64(i)/1000)
		prev = cur
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("abc", "abc"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.6, Similarity("python", "python (genus)"), 1e-9)
	assert.InDelta(t, Similarity("python", "python (genus)"), Similarity("python (genus)", "python"), 1e-9)
}

func TestScoreBonuses(t *testing.T) {
	s := NewScorer(DefaultWeights())

	base := s.Score("everest", "Mount Everest", "", nil)
	assert.InDelta(t, 0.4*0.7+0.2, base, 1e-9)

	verified := s.Score("everest", "Mount Everest", "", &ScoreOptions{
		Evidence: &Evidence{HasReferences: true, ContentLength: 1500},
	})
	assert.InDelta(t, base+0.2, verified, 1e-9)

	shortArticle := s.Score("everest", "Mount Everest", "", &ScoreOptions{
		Evidence: &Evidence{HasReferences: true, ContentLength: 1000},
	})
	assert.InDelta(t, base+0.1, shortArticle, 1e-9)

	plain := s.Score("zebra", "Equus quagga", "Zebra is a horse.", nil)
	definition := s.Score("zebra", "Equus quagga", "Zebra is a horse.", &ScoreOptions{Definition: true})
	assert.InDelta(t, plain+0.3, definition, 1e-9)
}

func TestScoreIsBounded(t *testing.T) {
	s := NewScorer(DefaultWeights())

	queries := []string{"", "a", "python", "tallest mountain", "speed of light"}
	titles := []string{"", "Python", "Python (genus)", "Mount Everest", strings.Repeat("x", 300)}
	summaries := []string{
		"",
		"python",
		"Python is a genus of constricting snakes.",
		"Mount Everest is Earth's highest mountain above sea level.",
		strings.Repeat("python is python ", 50),
	}
	options := []*ScoreOptions{
		nil,
		{Definition: true},
		{Evidence: &Evidence{HasReferences: true, ContentLength: 5000}},
		{Definition: true, Evidence: &Evidence{HasReferences: true, ContentLength: 5000}},
	}

	for _, q := range queries {
		for _, title := range titles {
			for _, summary := range summaries {
				for _, opts := range options {
					got := s.Score(q, title, summary, opts)
					assert.GreaterOrEqual(t, got, 0.0)
					assert.LessOrEqual(t, got, 1.0)
				}
			}
		}
	}
}

func TestScoreDoesNotDropWhenSummaryGainsQuery(t *testing.T) {
	s := NewScorer(DefaultWeights())

	cases := []struct {
		query, title, summary string
	}{
		{"tallest mountain", "Mount Everest", "Mount Everest is Earth's highest mountain above sea level."},
		{"python", "Boidae", "Boas are a family of nonvenomous snakes found in America, Africa and Asia."},
		{"speed of light", "Physical constant", "A physical constant is a quantity that is believed to be universal in nature."},
	}
	options := []*ScoreOptions{
		nil,
		{Definition: true},
		{Evidence: &Evidence{HasReferences: true, ContentLength: 2000}},
	}

	for _, c := range cases {
		for _, opts := range options {
			without := s.Score(c.query, c.title, c.summary, opts)
			with := s.Score(c.query, c.title, c.summary+" "+c.query, opts)
			assert.GreaterOrEqual(t, with, without, "query %q", c.query)
		}
	}
}
