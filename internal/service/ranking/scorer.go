package ranking

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/kapu/wiki-answer-bot-go/internal/constants"
	"github.com/kapu/wiki-answer-bot-go/internal/util"
)

// Weights holds the scoring coefficients.
type Weights struct {
	Title      float64
	Summary    float64
	Substring  float64
	Definition float64
	References float64
	Length     float64
	// LongArticle is the content length, in characters, above which the length bonus applies.
	LongArticle int
}

func DefaultWeights() Weights {
	return Weights{
		Title:       0.4,
		Summary:     0.6,
		Substring:   0.2,
		Definition:  0.3,
		References:  0.1,
		Length:      0.1,
		LongArticle: constants.ExtractLimits.LongArticleChars,
	}
}

// Evidence is what a fetched page says about an article's reliability.
type Evidence struct {
	HasReferences bool
	ContentLength int
}

// ScoreOptions switches on the optional bonuses.
type ScoreOptions struct {
	// Evidence is set only when the user asked for a verified answer.
	Evidence *Evidence
	// Definition enables the bonus for summaries that read "<query> is ...".
	Definition bool
}

// Scorer computes bounded relevance scores.
type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Score returns a value in [0, 1]. Bonuses stack and the total is clamped.
func (s *Scorer) Score(query, title, summary string, opts *ScoreOptions) float64 {
	q := strings.ToLower(query)
	t := strings.ToLower(title)
	sum := strings.ToLower(summary)

	score := s.weights.Title*Similarity(q, t) + s.weights.Summary*Similarity(q, sum)

	if q != "" && (strings.Contains(t, q) || strings.Contains(sum, q)) {
		score += s.weights.Substring
	}

	if opts != nil {
		if opts.Definition && q != "" && strings.Contains(sum, q+" is") {
			score += s.weights.Definition
		}
		if ev := opts.Evidence; ev != nil {
			if ev.HasReferences {
				score += s.weights.References
			}
			if ev.ContentLength > s.weights.LongArticle {
				score += s.weights.Length
			}
		}
	}

	return util.Clamp(score, 0, 1)
}

// Similarity is the SequenceMatcher ratio 2*M/T over the characters of a and b.
func Similarity(a, b string) float64 {
	matcher := difflib.NewMatcherWithJunk(splitChars(a), splitChars(b), false, nil)
	return matcher.Ratio()
}

func splitChars(s string) []string {
	chars := make([]string, 0, len(s))
	for _, r := range s {
		chars = append(chars, string(r))
	}
	return chars
}
