package resolver

import (
	"github.com/kapu/wiki-answer-bot-go/internal/domain"
	"github.com/kapu/wiki-answer-bot-go/pkg/errors"
)

type skipReason string

const (
	skipNone      skipReason = "ok"
	skipUnwanted  skipReason = "unwanted"
	skipNotFound  skipReason = "not_found"
	skipAmbiguous skipReason = "ambiguous"
	skipTimeout   skipReason = "timeout"
	skipFailure   skipReason = "failure"
)

// outcome is the result of evaluating one candidate: either a score or the reason it was skipped.
type outcome struct {
	scored *domain.ScoredCandidate
	reason skipReason
	err    error
}

func scoredOutcome(sc *domain.ScoredCandidate) outcome {
	return outcome{scored: sc, reason: skipNone}
}

func skippedOutcome(err error) outcome {
	return outcome{reason: classifySkip(err), err: err}
}

func (o outcome) ok() bool {
	return o.scored != nil
}

func classifySkip(err error) skipReason {
	switch {
	case err == nil:
		return skipNone
	case isTimeout(err):
		return skipTimeout
	case errors.IsNotFound(err):
		return skipNotFound
	default:
		if _, ok := errors.AsAmbiguous(err); ok {
			return skipAmbiguous
		}
		return skipFailure
	}
}
