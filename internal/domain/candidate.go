package domain

// Page is the full article content returned by the encyclopedia backend.
type Page struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	URL        string   `json:"url"`
	References []string `json:"references,omitempty"`
}

func (p *Page) HasReferences() bool {
	return p != nil && len(p.References) > 0
}

// Candidate is one search result considered as a possible answer.
type Candidate struct {
	Title          string `json:"title"`
	Summary        string `json:"summary,omitempty"`
	Content        string `json:"-"`
	URL            string `json:"url,omitempty"`
	HasReferences  bool   `json:"has_references"`
	ReferenceCount int    `json:"reference_count"`
	// Rank is the position in the backend's search results.
	Rank int `json:"rank"`
}

// NewCandidate creates a candidate for a search hit at the given rank.
func NewCandidate(title string, rank int) *Candidate {
	return &Candidate{Title: title, Rank: rank}
}

// AttachPage copies the page fields the ranking stage cares about.
func (c *Candidate) AttachPage(page *Page) {
	if c == nil || page == nil {
		return
	}
	c.Content = page.Content
	c.HasReferences = page.HasReferences()
	c.ReferenceCount = len(page.References)
	if page.URL != "" {
		c.URL = page.URL
	}
}

type ScoredCandidate struct {
	Candidate
	Score      float64    `json:"score"`
	Confidence Confidence `json:"confidence"`
}
