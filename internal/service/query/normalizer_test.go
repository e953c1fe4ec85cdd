package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kapu/wiki-answer-bot-go/internal/lexicon"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(lexicon.Default())

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"what is with article", "What is the tallest mountain?", "tallest mountain"},
		{"only punctuation", "???", ""},
		{"empty", "", ""},
		{"misspelled lead", "wat is a python", "python"},
		{"contraction", "whats the capital of France", "capital of france"},
		{"who is", "Who is Albert Einstein?", "albert einstein"},
		{"define", "Define photosynthesis", "photosynthesis"},
		{"tell me about", "Tell me about the Eiffel Tower!!", "eiffel tower"},
		{"diacritics", "Where is Zürich?", "zurich"},
		{"interrogatives dropped", "How tall is Mount Everest", "tall mount everest"},
		{"whitespace collapsed", "  Café   au\tlait ", "cafe au lait"},
		{"control characters", "python\x00\x07 language", "python language"},
		{"subject that is a question word", "Who is The Who?", "who"},
		{"subject after article", "What is a Who?", "who"},
		{"quoted question word", "What is 'How'?", "how"},
		{"lead without subject", "what is the", ""},
		{"fillers only", "what is", ""},
		{"real word kept", "Where is Capitol Hill?", "capitol hill"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.raw))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := NewNormalizer(lexicon.Default())

	corpus := []string{
		"What is the tallest mountain?",
		"what is what is the the mountain",
		"wat r u",
		"Who was the first person on the moon???",
		"define   EXPLAIN   the meaning",
		"whats whats up",
		"Tell me about tell me about Rome",
		"the the the",
		"is is was were",
		"Ångström unit",
		"½ of 3.14",
		"¿Qué es la fotosíntesis?",
		"C++ programming",
		"Who is The Who?",
		"What is a Who?",
		"What is 'How'?",
		"who is the who band",
		"what is what is the how",
		"the who",
		"how",
		strings.Repeat("very long question ", 60),
	}

	for _, raw := range corpus {
		once := n.Normalize(raw)
		assert.Equal(t, once, n.Normalize(once), "input %q", raw)
	}
}

func TestNormalizeResultHasNoPunctuationOrEmptyTokens(t *testing.T) {
	n := NewNormalizer(lexicon.Default())

	got := n.Normalize("What is the tallest mountain?  (really!)")
	assert.Equal(t, "tallest mountain really", got)
	for _, token := range strings.Split(got, " ") {
		assert.NotEmpty(t, token)
	}
}

func TestCleanKeepsInterrogatives(t *testing.T) {
	n := NewNormalizer(lexicon.Default())

	assert.Equal(t, "who invented the telephone", n.Clean("Who invented the telephone?"))
	assert.Equal(t, "what is you", n.Clean("whats u"))
}

func TestNormalizerUsesInjectedTables(t *testing.T) {
	lex := &lexicon.Lexicon{
		Misspellings:  map[string]string{"teh": "the"},
		FillerPhrases: []string{"find"},
		Articles:      []string{"the"},
	}
	n := NewNormalizer(lex)

	assert.Equal(t, "moon", n.Normalize("find teh moon"))
	assert.Equal(t, "what is moon", n.Normalize("what is the moon"))
}
