package models

// Candidate represents a single response candidate from Gemini
type Candidate struct {
	Text         string
	FinishReason string // e.g. "STOP", "MAX_TOKENS", "SAFETY"
}

// ModelOutput represents the complete generateContent response
type ModelOutput struct {
	Candidates   []Candidate
	Chosen       int // Index of selected candidate
	ModelVersion string
	TotalTokens  int64
}

// Text returns the chosen candidate's text
func (m *ModelOutput) Text() string {
	if c := m.ChosenCandidate(); c != nil {
		return c.Text
	}
	return ""
}

// ChosenCandidate returns a pointer to the chosen candidate
func (m *ModelOutput) ChosenCandidate() *Candidate {
	if m == nil || len(m.Candidates) == 0 {
		return nil
	}
	if m.Chosen < 0 || m.Chosen >= len(m.Candidates) {
		return &m.Candidates[0]
	}
	return &m.Candidates[m.Chosen]
}
