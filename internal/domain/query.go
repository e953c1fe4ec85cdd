package domain

// Query is one user turn after normalization and classification.
type Query struct {
	Raw string `json:"raw"`
	// Cleaned keeps interrogatives ("who", "when") so the classifier can see them.
	Cleaned    string `json:"cleaned"`
	Normalized string `json:"normalized"`
	Intent
}

// IsEmpty reports whether normalization left nothing to search for.
func (q *Query) IsEmpty() bool {
	return q == nil || q.Normalized == ""
}
