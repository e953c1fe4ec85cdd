package query

import (
	"regexp"
	"strings"

	"github.com/kapu/wiki-answer-bot-go/internal/constants"
	"github.com/kapu/wiki-answer-bot-go/internal/util"
)

var controlCharsPattern = regexp.MustCompile(`[\x00-\x1F\x7F]`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// punctuationPattern keeps letters, digits, underscores and whitespace in any script.
var punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)

func sanitizeInput(input string) string {
	withoutControl := controlCharsPattern.ReplaceAllString(input, " ")
	normalized := whitespacePattern.ReplaceAllString(withoutControl, " ")
	trimmed := strings.TrimSpace(normalized)

	if trimmed == "" {
		return ""
	}

	return util.PrefixRunes(trimmed, constants.InputLimits.MaxQueryLength)
}

func stripPunctuation(s string) string {
	return punctuationPattern.ReplaceAllString(s, "")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
