package history

import (
	"forgescope/internal/scoring"
	"forgescope/internal/session"
)

// Repository records completed scoring passes for later offline analysis.
type Repository interface {
	Append(token string, weights scoring.WeightProfile, context scoring.CityContext, summary session.PassSummary)
	Close()
}
