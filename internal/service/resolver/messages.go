package resolver

import (
	"fmt"
	"strings"

	"github.com/kapu/wiki-answer-bot-go/internal/domain"
	"github.com/kapu/wiki-answer-bot-go/internal/util"
	"github.com/kapu/wiki-answer-bot-go/pkg/errors"
)

const (
	msgEmptyQuery      = "Please ask a more specific question."
	msgNoResults       = "I couldn't find anything related to that query."
	msgPageNotFound    = "I couldn't find a specific article about that."
	msgNoRelevantMatch = "I found some results, but they don't seem relevant to your question."
	msgBeSpecific      = "Please be more specific."
)

func buildClarificationMessage(options []string) string {
	if len(options) == 0 {
		return msgBeSpecific
	}
	var sb strings.Builder
	sb.WriteString(msgBeSpecific)
	sb.WriteString(" Did you mean:")
	for _, option := range options {
		sb.WriteString("\n- ")
		sb.WriteString(strings.TrimSpace(option))
	}
	return sb.String()
}

func emptyQueryAnswer() *domain.Answer {
	return domain.NewErrorAnswer(errors.CodeEmptyQuery, msgEmptyQuery)
}

func noResultsAnswer() *domain.Answer {
	return domain.NewErrorAnswer(errors.CodeNoResults, msgNoResults)
}

func noRelevantMatchAnswer() *domain.Answer {
	return domain.NewErrorAnswer(errors.CodeNoRelevantMatch, msgNoRelevantMatch)
}

func pageNotFoundAnswer() *domain.Answer {
	return domain.NewErrorAnswer(errors.CodePageNotFound, msgPageNotFound)
}

func ambiguityAnswer(options []string, limit int) *domain.Answer {
	shown := util.FirstN(options, limit)
	answer := domain.NewErrorAnswer(errors.CodeAmbiguousTitle, buildClarificationMessage(shown))
	answer.Options = shown
	return answer
}

func backendFailureAnswer(err error) *domain.Answer {
	return domain.NewErrorAnswer(errors.CodeBackendFailure, fmt.Sprintf("An error occurred: %v", err))
}
