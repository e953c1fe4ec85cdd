package query

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kapu/wiki-answer-bot-go/internal/lexicon"
)

// maxPasses bounds the fixed-point loop; every pass only removes or rewrites words,
// so real input settles after two or three.
const maxPasses = 8

// Normalizer turns a raw question into the subject to search for.
type Normalizer struct {
	misspellings map[string]string
	articles     map[string]struct{}
	subjectLead  *regexp.Regexp
	filler       *regexp.Regexp
}

// NewNormalizer compiles the lexicon tables it needs.
func NewNormalizer(lex *lexicon.Lexicon) *Normalizer {
	n := &Normalizer{
		misspellings: make(map[string]string, len(lex.Misspellings)),
		articles:     make(map[string]struct{}, len(lex.Articles)),
	}
	for from, to := range lex.Misspellings {
		n.misspellings[from] = to
	}
	for _, article := range lex.Articles {
		n.articles[strings.ToLower(strings.TrimSpace(article))] = struct{}{}
	}
	if lex.SubjectLeadPattern != "" {
		n.subjectLead = regexp.MustCompile(lex.SubjectLeadPattern)
	}

	words := make([]string, 0, len(lex.FillerPhrases)+len(lex.Articles))
	words = append(words, lex.FillerPhrases...)
	words = append(words, lex.Articles...)
	if len(words) > 0 {
		n.filler = regexp.MustCompile(`\b(?:` + alternation(words) + `)\b`)
	}
	return n
}

// Clean lowercases, folds diacritics, drops punctuation and fixes known misspellings.
// Interrogatives survive so the classifier can read them.
func (n *Normalizer) Clean(raw string) string {
	text := strings.ToLower(sanitizeInput(raw))
	text = foldDiacritics(text)
	text = stripPunctuation(text)
	return collapseWhitespace(n.correct(text))
}

// Normalize returns the search subject: Clean output with the leading "what is" clause,
// filler phrases and articles removed. A one-word subject made only of filler ("who" in
// "who is the who") is kept. The pass repeats until nothing changes, so
// Normalize(Normalize(x)) == Normalize(x).
func (n *Normalizer) Normalize(raw string) string {
	current := n.pass(raw)
	for i := 0; i < maxPasses; i++ {
		next := n.pass(current)
		if next == current {
			break
		}
		current = next
	}
	return current
}

func (n *Normalizer) pass(text string) string {
	subject := n.Clean(text)
	if n.subjectLead != nil {
		if m := n.subjectLead.FindStringSubmatch(subject); m != nil {
			subject = m[1]
		}
	}
	subject = n.trimArticles(subject)
	if n.filler == nil || subject == "" {
		return subject
	}

	stripped := collapseWhitespace(n.filler.ReplaceAllString(subject, " "))
	if stripped == "" && !strings.Contains(subject, " ") {
		return subject
	}
	return stripped
}

// trimArticles drops leading articles.
func (n *Normalizer) trimArticles(text string) string {
	tokens := strings.Fields(text)
	i := 0
	for i < len(tokens) {
		if _, ok := n.articles[tokens[i]]; !ok {
			break
		}
		i++
	}
	return strings.Join(tokens[i:], " ")
}

func (n *Normalizer) correct(text string) string {
	if len(n.misspellings) == 0 {
		return text
	}
	tokens := strings.Fields(text)
	for i, token := range tokens {
		if fixed, ok := n.misspellings[token]; ok {
			tokens[i] = fixed
		}
	}
	return strings.Join(tokens, " ")
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// alternation quotes words for a regexp, longest first so multi-word phrases win.
func alternation(words []string) string {
	sorted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(strings.ToLower(w))
		if w == "" {
			continue
		}
		sorted = append(sorted, w)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(w), ` `, `\s+`)
	}
	return strings.Join(quoted, "|")
}
