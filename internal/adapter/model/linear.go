package model

import (
	"encoding/json"
	"fmt"
	"os"

	"po-financing-backend/internal/domain/risk"
)

// Linear is a credit model exported by the offline trainer as a weights file:
//
//	{"bias": 0.1, "weights": {"po_amount": ..., "delivery_days": ...,
//	 "vendor_history_score": ..., "buyer_score": ..., "category_risk": ...}}
//
// Training lives outside this service; we only evaluate the artifact.
type Linear struct {
	Bias    float64            `json:"bias"`
	Weights map[string]float64 `json:"weights"`
}

// Load reads the weights file. A missing or malformed file is reported to the
// caller, which is expected to run without a model rather than abort.
func Load(path string) (*Linear, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: read %s: %w", path, err)
	}
	var m Linear
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("model: parse %s: %w", path, err)
	}
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("model: %s has no weights", path)
	}
	return &m, nil
}

func (m *Linear) Predict(f risk.Features) (float64, error) {
	p := m.Bias +
		m.Weights["po_amount"]*f.POAmount +
		m.Weights["delivery_days"]*f.DeliveryDays +
		m.Weights["vendor_history_score"]*f.VendorHistoryScore +
		m.Weights["buyer_score"]*f.BuyerScore +
		m.Weights["category_risk"]*f.CategoryRisk
	return p, nil
}
