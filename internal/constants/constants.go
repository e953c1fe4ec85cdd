package constants

import "time"

var RetryConfig = struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      time.Duration
}{
	MaxAttempts: 3,
	BaseDelay:   300 * time.Millisecond,
	Jitter:      200 * time.Millisecond,
}

var CircuitBreakerConfig = struct {
	FailureThreshold int
	ResetTimeout     time.Duration
}{
	FailureThreshold: 5,                // consecutive failures before the circuit opens
	ResetTimeout:     30 * time.Second, // time before a half-open probe is allowed
}

var APIConfig = struct {
	WikipediaBaseURL string
	UserAgent        string
	HTTPTimeout      time.Duration
	CallTimeout      time.Duration
}{
	WikipediaBaseURL: "https://en.wikipedia.org/w/api.php",
	UserAgent:        "wikibot/1.0 (https://github.com/kapu/wiki-answer-bot-go)",
	HTTPTimeout:      15 * time.Second,
	CallTimeout:      10 * time.Second,
}

var InputLimits = struct {
	MaxQueryLength int
}{
	MaxQueryLength: 500,
}

var ResolverDefaults = struct {
	SearchLimit      int
	SummarySentences int
	MaxAmbiguity     int
	MaxRelated       int
	MaxFactsShown    int
}{
	SearchLimit:      8,
	SummarySentences: 2,
	MaxAmbiguity:     3,
	MaxRelated:       2,
	MaxFactsShown:    5,
}

var ExtractLimits = struct {
	ScanChars         int
	LongArticleChars  int
	DisambiguationMax int
}{
	ScanChars:         2000,
	LongArticleChars:  1000,
	DisambiguationMax: 20,
}

var StringLimits = struct {
	LogQuery   int
	AnswerBody int
}{
	LogQuery:   80,
	AnswerBody: 1200,
}
