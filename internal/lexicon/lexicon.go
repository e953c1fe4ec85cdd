// Package lexicon holds the keyword and pattern tables used by query analysis,
// ranking and fact extraction.
package lexicon

import "github.com/kapu/wiki-answer-bot-go/internal/domain"

// CategoryPattern pairs an intent category with the regular expression that selects it.
type CategoryPattern struct {
	Category domain.Category
	Pattern  string
}

// Lexicon is the full set of tables. Components receive it at construction so tests
// can swap in small fixtures.
type Lexicon struct {
	// Misspellings maps a whole token to its replacement, which may be several words.
	Misspellings map[string]string
	// FillerPhrases are interrogative and command phrases removed from the search subject.
	FillerPhrases []string
	Articles      []string
	// Categories is tested in order; the first match wins.
	Categories         []CategoryPattern
	MeasurementWords   []string
	TimeWords          []string
	VerificationWords  []string
	UnwantedTopics     []string
	Units              []string
	Months             []string
	SubjectLeadPattern string
}

// Default returns a fresh copy of the built-in tables.
func Default() *Lexicon {
	return &Lexicon{
		Misspellings:       buildMisspellings(),
		FillerPhrases:      buildFillerPhrases(),
		Articles:           []string{"a", "an", "the"},
		Categories:         buildCategoryPatterns(),
		MeasurementWords:   buildMeasurementWords(),
		TimeWords:          buildTimeWords(),
		VerificationWords:  buildVerificationWords(),
		UnwantedTopics:     buildUnwantedTopics(),
		Units:              buildUnits(),
		Months:             buildMonths(),
		SubjectLeadPattern: `^(?:what|who)\s+(?:is|are|was|were)\s+(?:(?:a|an|the)\s+)?(.+)$`,
	}
}

func buildMisspellings() map[string]string {
	return map[string]string{
		"wat":        "what",
		"wht":        "what",
		"whta":       "what",
		"waht":       "what",
		"whats":      "what is",
		"wats":       "what is",
		"whos":       "who is",
		"wheres":     "where is",
		"whens":      "when is",
		"hows":       "how is",
		"hw":         "how",
		"wen":        "when",
		"wher":       "where",
		"u":          "you",
		"ur":         "your",
		"pls":        "please",
		"plz":        "please",
		"abt":        "about",
		"bcuz":       "because",
		"cuz":        "because",
		"definiton":  "definition",
		"defintion":  "definition",
		"explane":    "explain",
		"tallst":     "tallest",
		"hieght":     "height",
		"heigth":     "height",
		"wieght":     "weight",
		"distnace":   "distance",
		"temprature": "temperature",
		"popultion":  "population",
	}
}

// Longer phrases come first so "what is" is removed before "what".
func buildFillerPhrases() []string {
	return []string{
		"can you tell me about",
		"can you tell me",
		"could you tell me",
		"tell me about",
		"i want to know",
		"do you know",
		"please",
		"define",
		"explain",
		"describe",
		"what is",
		"what are",
		"what was",
		"what were",
		"who is",
		"who are",
		"who was",
		"who were",
		"where is",
		"where are",
		"where was",
		"when is",
		"when was",
		"when did",
		"how does",
		"how do",
		"how did",
		"how is",
		"how are",
		"why is",
		"why are",
		"why does",
		"why did",
		"what",
		"who",
		"where",
		"when",
		"how",
		"why",
		"is",
		"are",
		"was",
		"were",
		"does",
		"did",
	}
}

func buildCategoryPatterns() []CategoryPattern {
	return []CategoryPattern{
		{domain.CategoryDefinition, `^(?:what\s+(?:is|are)|define|definition\s+of|meaning\s+of|explain)\b`},
		{domain.CategoryPerson, `\b(?:who|whom|whose|biography|founder|inventor|author)\b`},
		{domain.CategoryLocation, `\b(?:where|located|location|capital\s+of|situated)\b`},
		{domain.CategoryTime, `\b(?:when|what\s+year|what\s+date|what\s+time|how\s+long\s+ago)\b`},
		{domain.CategoryReason, `\b(?:why|reason|cause\s+of|causes\s+of|because)\b`},
		{domain.CategoryProcess, `\b(?:how\s+(?:do|does|did|to|is|are|can)|process|steps|procedure)\b`},
	}
}

func buildMeasurementWords() []string {
	return []string{
		"height", "tall", "tallest", "high", "highest",
		"weight", "weigh", "weighs", "heavy", "heaviest", "mass",
		"distance", "far", "long", "longest", "length",
		"wide", "width", "deep", "deepest", "depth",
		"size", "big", "biggest", "large", "largest", "area",
		"temperature", "hot", "hottest", "cold", "coldest",
		"speed", "fast", "fastest", "measure", "measurement",
	}
}

func buildTimeWords() []string {
	return []string{
		"when", "date", "year", "born", "died", "death",
		"founded", "established", "built", "created", "invented",
		"discovered", "started", "began", "ended", "opened",
	}
}

func buildVerificationWords() []string {
	return []string{
		"exact", "exactly", "precise", "precisely", "official", "officially",
		"accurate", "accurately", "verified", "confirmed", "actual",
	}
}

func buildUnwantedTopics() []string {
	return []string{
		"emoji", "software", "video game", "song", "album", "character", "film",
		"television", "tv series", "manga", "anime", "fictional", "game",
		"painting", "artwork", "novel", "book", "movie",
	}
}

func buildUnits() []string {
	return []string{
		"kilometres", "kilometers", "kilometre", "kilometer", "km",
		"metres", "meters", "metre", "meter",
		"miles", "mile",
		"feet", "foot", "ft",
		"kilograms", "kilogram", "kg",
		"pounds", "pound", "lbs", "lb",
		"tonnes", "tonne", "tons", "ton",
		"celsius", "fahrenheit",
	}
}

func buildMonths() []string {
	return []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
}
