package session

import (
	"sync"
	"time"

	"forgescope/internal/scoring"
	"forgescope/internal/utils"
)

// PassSummary is the per-session record of one scoring pass, kept in a short
// ring buffer for the history endpoint and the dataset log.
type PassSummary struct {
	At            time.Time `json:"at"`
	Buildings     int       `json:"buildings"`
	TopID         string    `json:"top_id,omitempty"`
	TopEfficiency float64   `json:"top_efficiency,omitempty"`
}

// Session owns one user's mutable scoring inputs: the city context and the
// weight profile. Accessors hand out copies, so a scoring pass always works
// on an immutable snapshot and changes take effect on the next pass.
type Session struct {
	mu      sync.RWMutex
	context scoring.CityContext
	weights scoring.WeightProfile
	history *utils.RingBuffer[PassSummary]
}

func newSession(historyLength int) *Session {
	return &Session{
		context: scoring.NewCityContext(),
		weights: scoring.NewWeightProfile(),
		history: utils.NewRingBuffer[PassSummary](historyLength),
	}
}

// Context returns a snapshot of the session's city context.
func (s *Session) Context() scoring.CityContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.context.Clone()
}

// SetContext replaces the city context. Negative daily values are clamped
// to 0 by CityContext.Set.
func (s *Session) SetContext(values map[string]float64) {
	ctx := scoring.NewCityContext()
	for resource, daily := range values {
		ctx.Set(resource, daily)
	}
	s.mu.Lock()
	s.context = ctx
	s.mu.Unlock()
}

// SetResource updates one resource baseline.
func (s *Session) SetResource(resource string, daily float64) {
	s.mu.Lock()
	s.context.Set(resource, daily)
	s.mu.Unlock()
}

// Weights returns a snapshot of the session's weight profile.
func (s *Session) Weights() scoring.WeightProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weights.Clone()
}

// SetWeights replaces the weight profile.
func (s *Session) SetWeights(weights scoring.WeightProfile) {
	s.mu.Lock()
	s.weights = weights.Clone()
	s.mu.Unlock()
}

// RecordPass appends a scoring pass summary to the session history.
func (s *Session) RecordPass(p PassSummary) {
	s.history.Push(p)
}

// History returns the recorded passes, oldest first.
func (s *Session) History() []PassSummary {
	return s.history.ToSlice()
}
