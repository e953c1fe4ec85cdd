// Package resolver turns a question into a single ranked, confidence-labeled answer.
package resolver

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"

	"github.com/kapu/wiki-answer-bot-go/internal/constants"
	"github.com/kapu/wiki-answer-bot-go/internal/domain"
	"github.com/kapu/wiki-answer-bot-go/internal/lexicon"
	"github.com/kapu/wiki-answer-bot-go/internal/service/extract"
	"github.com/kapu/wiki-answer-bot-go/internal/service/query"
	"github.com/kapu/wiki-answer-bot-go/internal/service/ranking"
	"github.com/kapu/wiki-answer-bot-go/internal/util"
	"github.com/kapu/wiki-answer-bot-go/pkg/errors"
)

// Backend is the encyclopedia service. Summary and Page fail with a NotFoundError
// or an AmbiguousError from pkg/errors.
type Backend interface {
	Search(ctx context.Context, term string, limit int) ([]string, error)
	Summary(ctx context.Context, title string, sentences int) (string, error)
	Page(ctx context.Context, title string) (*domain.Page, error)
}

// TitleLinker is implemented by backends that can build an article URL from a title.
type TitleLinker interface {
	PageURL(title string) string
}

// Recorder receives turn and backend call measurements.
type Recorder interface {
	ObserveTurn(outcome string, d time.Duration)
	ObserveBackendCall(op, outcome string, d time.Duration)
	CandidateSkipped(reason string)
}

type noopRecorder struct{}

func (noopRecorder) ObserveTurn(string, time.Duration)                {}
func (noopRecorder) ObserveBackendCall(string, string, time.Duration) {}
func (noopRecorder) CandidateSkipped(string)                          {}

type Options struct {
	SearchLimit      int
	SummarySentences int
	// CallTimeout bounds every backend call; zero disables it.
	CallTimeout  time.Duration
	MaxAmbiguity int
	MaxRelated   int
	MaxFacts     int
}

func DefaultOptions() Options {
	return Options{
		SearchLimit:      constants.ResolverDefaults.SearchLimit,
		SummarySentences: constants.ResolverDefaults.SummarySentences,
		CallTimeout:      constants.APIConfig.CallTimeout,
		MaxAmbiguity:     constants.ResolverDefaults.MaxAmbiguity,
		MaxRelated:       constants.ResolverDefaults.MaxRelated,
		MaxFacts:         constants.ResolverDefaults.MaxFactsShown,
	}
}

// Resolver evaluates one turn at a time: search, filter, score or extract, select.
type Resolver struct {
	backend   Backend
	analyzer  *query.Analyzer
	filter    *ranking.TopicFilter
	scorer    *ranking.Scorer
	extractor *extract.Extractor
	recorder  Recorder
	opts      Options
	logger    *zap.Logger
}

func New(backend Backend, lex *lexicon.Lexicon, opts Options, recorder Recorder, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	defaults := DefaultOptions()
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = defaults.SearchLimit
	}
	if opts.SummarySentences <= 0 {
		opts.SummarySentences = defaults.SummarySentences
	}
	if opts.MaxAmbiguity <= 0 {
		opts.MaxAmbiguity = defaults.MaxAmbiguity
	}
	if opts.MaxRelated < 0 {
		opts.MaxRelated = 0
	}
	if opts.MaxFacts <= 0 {
		opts.MaxFacts = defaults.MaxFacts
	}

	return &Resolver{
		backend:   backend,
		analyzer:  query.NewAnalyzer(lex),
		filter:    ranking.NewTopicFilter(lex.UnwantedTopics),
		scorer:    ranking.NewScorer(ranking.DefaultWeights()),
		extractor: extract.NewExtractor(lex.Units, lex.Months),
		recorder:  recorder,
		opts:      opts,
		logger:    logger,
	}
}

// Resolve never fails: every error path becomes an Answer titled "Error".
func (r *Resolver) Resolve(ctx context.Context, raw string) *domain.Answer {
	start := time.Now()
	log := r.logger.With(zap.String("turn_id", uuid.NewString()))

	var answer *domain.Answer
	var catcher panics.Catcher
	catcher.Try(func() {
		answer = r.resolve(ctx, raw, log)
	})
	if rec := catcher.Recovered(); rec != nil {
		log.Error("Turn panicked", zap.Any("panic", rec.Value))
		answer = backendFailureAnswer(fmt.Errorf("%v", rec.Value))
	}

	outcome := answer.Code
	if outcome == "" {
		outcome = "answer"
	}
	r.recorder.ObserveTurn(outcome, time.Since(start))

	log.Info("Turn resolved",
		zap.String("outcome", outcome),
		zap.String("title", answer.Title),
		zap.String("confidence", answer.Confidence.String()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return answer
}

// Analyze exposes the query stage for diagnostics.
func (r *Resolver) Analyze(raw string) *domain.Query {
	return r.analyzer.Analyze(raw)
}

func (r *Resolver) resolve(ctx context.Context, raw string, log *zap.Logger) *domain.Answer {
	q := r.analyzer.Analyze(raw)
	if q.IsEmpty() {
		log.Debug("Empty query after normalization", zap.String("raw", util.TruncateString(raw, constants.StringLimits.LogQuery)))
		return emptyQueryAnswer()
	}

	log = log.With(
		zap.String("query", util.TruncateString(q.Normalized, constants.StringLimits.LogQuery)),
		zap.String("category", q.Category.String()),
		zap.Bool("measurement", q.IsMeasurement),
		zap.Bool("time", q.IsTime),
		zap.Bool("verify", q.NeedsVerification),
	)

	titles, err := r.search(ctx, q.Normalized)
	if err != nil {
		if amb, ok := errors.AsAmbiguous(err); ok {
			log.Info("Search term is ambiguous", zap.Int("options", len(amb.Options)))
			return ambiguityAnswer(amb.Options, r.opts.MaxAmbiguity)
		}
		if errors.IsNotFound(err) {
			return pageNotFoundAnswer()
		}
		log.Warn("Search failed", zap.Error(err))
		return backendFailureAnswer(err)
	}
	if len(titles) == 0 {
		return noResultsAnswer()
	}

	log.Debug("Search returned candidates", zap.Strings("titles", titles))

	if q.IsMeasurement {
		if answer := r.factPath(ctx, titles, factMeasurement, log); answer != nil {
			return answer
		}
	}
	if q.IsTime {
		if answer := r.factPath(ctx, titles, factDate, log); answer != nil {
			return answer
		}
	}

	return r.generalPath(ctx, q, titles, log)
}

func (r *Resolver) search(ctx context.Context, term string) ([]string, error) {
	var titles []string
	err := r.call(ctx, "search", func(ctx context.Context) error {
		found, err := r.backend.Search(ctx, term, r.opts.SearchLimit)
		titles = found
		return err
	})
	return titles, err
}

func (r *Resolver) summary(ctx context.Context, title string) (string, error) {
	var summary string
	err := r.call(ctx, "summary", func(ctx context.Context) error {
		s, err := r.backend.Summary(ctx, title, r.opts.SummarySentences)
		summary = s
		return err
	})
	return summary, err
}

func (r *Resolver) page(ctx context.Context, title string) (*domain.Page, error) {
	var page *domain.Page
	err := r.call(ctx, "page", func(ctx context.Context) error {
		p, err := r.backend.Page(ctx, title)
		page = p
		return err
	})
	if err == nil && page == nil {
		err = errors.NewPageNotFoundError(title)
	}
	return page, err
}

// call runs one backend operation under the per-call timeout and turns a panic into an error.
func (r *Resolver) call(ctx context.Context, op string, fn func(context.Context) error) error {
	var callCtx context.Context
	var cancel context.CancelFunc
	if r.opts.CallTimeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, r.opts.CallTimeout)
	} else {
		callCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	start := time.Now()
	var err error
	var catcher panics.Catcher
	catcher.Try(func() {
		err = fn(callCtx)
	})
	if rec := catcher.Recovered(); rec != nil {
		err = fmt.Errorf("%s panicked: %v", op, rec.Value)
	}

	r.recorder.ObserveBackendCall(op, string(classifySkip(err)), time.Since(start))
	return err
}

func (r *Resolver) pageURL(title string) string {
	if linker, ok := r.backend.(TitleLinker); ok {
		return linker.PageURL(title)
	}
	return ""
}

func (r *Resolver) skip(log *zap.Logger, title string, reason skipReason, err error) {
	r.recorder.CandidateSkipped(string(reason))
	fields := []zap.Field{
		zap.String("title", title),
		zap.String("reason", string(reason)),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	log.Debug("Candidate skipped", fields...)
}

func isTimeout(err error) bool {
	return stderrors.Is(err, context.DeadlineExceeded)
}

func clip(s string) string {
	return util.TruncateString(strings.TrimSpace(s), constants.StringLimits.AnswerBody)
}

func runeCount(s string) int {
	return utf8.RuneCountInString(s)
}

func sortByScore(scored []domain.ScoredCandidate) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}
