package domain

// Confidence is the discrete label derived from a relevance score.
type Confidence string

const (
	ConfidenceLow      Confidence = "Low"
	ConfidenceMedium   Confidence = "Medium"
	ConfidenceHigh     Confidence = "High"
	ConfidenceVeryHigh Confidence = "Very High"
)

func (c Confidence) String() string {
	return string(c)
}

// Rank orders labels so they can be compared; unknown labels rank lowest.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceVeryHigh:
		return 3
	case ConfidenceHigh:
		return 2
	case ConfidenceMedium:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether c is the same as or better than other.
func (c Confidence) AtLeast(other Confidence) bool {
	return c.Rank() >= other.Rank()
}

// ErrorTitle is the title every error answer carries.
const ErrorTitle = "Error"

// Answer is the terminal output of one turn.
type Answer struct {
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Confidence Confidence `json:"confidence,omitempty"`
	SourceURL  string     `json:"source_url,omitempty"`
	Related    []string   `json:"related,omitempty"`
	// Code is empty for successful answers and carries the error taxonomy code otherwise.
	Code string `json:"code,omitempty"`
	// Options lists disambiguation choices for ambiguous-title answers.
	Options []string `json:"options,omitempty"`
}

func (a *Answer) IsError() bool {
	return a != nil && a.Title == ErrorTitle
}

// NewErrorAnswer builds an error answer with a user-facing message.
func NewErrorAnswer(code, message string) *Answer {
	return &Answer{
		Title: ErrorTitle,
		Body:  message,
		Code:  code,
	}
}
