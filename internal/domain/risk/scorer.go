package risk

import (
	"log"
	"time"

	"po-financing-backend/internal/domain/order"
)

// FallbackProbability is used whenever the model cannot produce a prediction.
// Fail-open: a missing model degrades scoring, it does not refuse service.
const FallbackProbability = 0.5

// Model is the trained credit model: a stateless map from the feature vector
// to a repayment probability in [0,1].
type Model interface {
	Predict(f Features) (float64, error)
}

// Score carries the probability plus a flag telling callers the model was
// unavailable and the fallback was used.
type Score struct {
	Probability float64
	Degraded    bool
}

type Scorer struct{ model Model }

// NewScorer accepts a nil model; scoring then degrades to the fallback for
// every request.
func NewScorer(m Model) *Scorer { return &Scorer{model: m} }

func (s *Scorer) Score(po *order.PurchaseOrder, now time.Time) Score {
	if s.model == nil {
		return Score{Probability: FallbackProbability, Degraded: true}
	}
	p, err := s.model.Predict(BuildFeatures(po, now))
	if err != nil {
		log.Printf("risk: model predict failed, using fallback: %v", err)
		return Score{Probability: FallbackProbability, Degraded: true}
	}
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	return Score{Probability: p}
}
