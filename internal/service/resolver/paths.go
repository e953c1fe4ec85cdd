package resolver

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kapu/wiki-answer-bot-go/internal/domain"
	"github.com/kapu/wiki-answer-bot-go/internal/service/ranking"
	"github.com/kapu/wiki-answer-bot-go/internal/util"
	"github.com/kapu/wiki-answer-bot-go/pkg/errors"
)

type factKind int

const (
	factMeasurement factKind = iota
	factDate
)

func (k factKind) String() string {
	if k == factDate {
		return "dates"
	}
	return "measurements"
}

func (k factKind) label() string {
	if k == factDate {
		return "Dates found"
	}
	return "Measurements found"
}

// factPath returns the first candidate whose article yields at least one token, or nil
// so the caller falls back to the general path.
func (r *Resolver) factPath(ctx context.Context, titles []string, kind factKind, log *zap.Logger) *domain.Answer {
	log = log.With(zap.Stringer("path", kind))

	for rank, title := range titles {
		if ctx.Err() != nil {
			return nil
		}
		if r.filter.IsUnwanted(title) {
			r.skip(log, title, skipUnwanted, nil)
			continue
		}

		page, err := r.page(ctx, title)
		if err != nil {
			r.skip(log, title, classifySkip(err), err)
			continue
		}

		var tokens []string
		if kind == factDate {
			tokens = r.extractor.Dates(page.Content)
		} else {
			tokens = r.extractor.Measurements(page.Content)
		}
		if len(tokens) == 0 {
			log.Debug("No facts in article", zap.String("title", title))
			continue
		}

		candidate := domain.NewCandidate(title, rank)
		candidate.AttachPage(page)
		if candidate.URL == "" {
			candidate.URL = r.pageURL(title)
		}

		confidence := domain.ConfidenceMedium
		if len(tokens) > 1 {
			confidence = domain.ConfidenceHigh
		}

		log.Debug("Facts extracted", zap.String("title", title), zap.Strings("tokens", tokens))
		return &domain.Answer{
			Title:      title,
			Body:       r.factBody(ctx, kind, title, tokens),
			Confidence: confidence,
			SourceURL:  candidate.URL,
		}
	}

	log.Debug("No candidate yielded facts, falling back to general path")
	return nil
}

func (r *Resolver) factBody(ctx context.Context, kind factKind, title string, tokens []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", kind.label(), strings.Join(util.FirstN(tokens, r.opts.MaxFacts), ", "))

	if summary, err := r.summary(ctx, title); err == nil && strings.TrimSpace(summary) != "" {
		sb.WriteString("\n\n")
		sb.WriteString(clip(summary))
	}
	return sb.String()
}

// generalPath scores every acceptable candidate and picks the best. Failures on single
// candidates are skipped; only ambiguity on the primary candidate ends the turn early.
func (r *Resolver) generalPath(ctx context.Context, q *domain.Query, titles []string, log *zap.Logger) *domain.Answer {
	log = log.With(zap.String("path", "general"))

	scored := make([]domain.ScoredCandidate, 0, len(titles))
	attempted, failed := 0, 0
	var lastFailure error
	primarySeen := false

	for rank, title := range titles {
		if err := ctx.Err(); err != nil {
			return backendFailureAnswer(err)
		}
		if r.filter.IsUnwanted(title) {
			r.skip(log, title, skipUnwanted, nil)
			continue
		}

		primary := !primarySeen
		primarySeen = true
		attempted++

		out := r.evaluate(ctx, q, domain.NewCandidate(title, rank))
		if out.ok() {
			log.Debug("Candidate scored",
				zap.String("title", title),
				zap.Float64("score", out.scored.Score),
				zap.String("confidence", out.scored.Confidence.String()),
			)
			scored = append(scored, *out.scored)
			continue
		}

		r.skip(log, title, out.reason, out.err)
		switch out.reason {
		case skipAmbiguous:
			if primary {
				amb, _ := errors.AsAmbiguous(out.err)
				log.Info("Primary candidate is ambiguous", zap.String("title", title))
				return ambiguityAnswer(amb.Options, r.opts.MaxAmbiguity)
			}
		case skipFailure:
			failed++
			lastFailure = out.err
		}
	}

	if len(scored) == 0 {
		if attempted > 0 && failed == attempted {
			log.Warn("Every candidate failed", zap.Error(lastFailure))
			return backendFailureAnswer(lastFailure)
		}
		return noRelevantMatchAnswer()
	}

	return r.selectBest(scored)
}

func (r *Resolver) evaluate(ctx context.Context, q *domain.Query, candidate *domain.Candidate) outcome {
	summary, err := r.summary(ctx, candidate.Title)
	if err != nil {
		return skippedOutcome(err)
	}
	candidate.Summary = summary

	opts := &ranking.ScoreOptions{Definition: q.Category == domain.CategoryDefinition}
	if q.NeedsVerification {
		page, err := r.page(ctx, candidate.Title)
		if err != nil {
			return skippedOutcome(err)
		}
		candidate.AttachPage(page)
		opts.Evidence = &ranking.Evidence{
			HasReferences: candidate.HasReferences,
			ContentLength: runeCount(candidate.Content),
		}
	}
	if candidate.URL == "" {
		candidate.URL = r.pageURL(candidate.Title)
	}

	score := r.scorer.Score(q.Normalized, candidate.Title, candidate.Summary, opts)
	return scoredOutcome(&domain.ScoredCandidate{
		Candidate:  *candidate,
		Score:      score,
		Confidence: ranking.ConfidenceFor(score),
	})
}

func (r *Resolver) selectBest(scored []domain.ScoredCandidate) *domain.Answer {
	sortByScore(scored)
	best := scored[0]

	answer := &domain.Answer{
		Title:      best.Title,
		Body:       clip(best.Summary),
		Confidence: best.Confidence,
		SourceURL:  best.URL,
	}

	if len(scored) > 1 && !best.Confidence.AtLeast(domain.ConfidenceHigh) {
		for _, runnerUp := range scored[1:] {
			if len(answer.Related) >= r.opts.MaxRelated {
				break
			}
			answer.Related = append(answer.Related, runnerUp.Title)
		}
	}
	return answer
}
