package financing

import (
	"time"

	"po-financing-backend/internal/domain/loan"
)

type LoanDTO struct {
	LoanID        string    `json:"loan_id"`
	POID          int64     `json:"po_id"`
	VendorAddress string    `json:"vendor_address"`
	Amount        float64   `json:"amount"`
	RiskScore     float64   `json:"risk_score"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// DecisionDTO is the financing-request response. DegradedScoring flags that
// the fallback probability was used because the model was unavailable.
type DecisionDTO struct {
	POID            int64   `json:"po_id"`
	RiskProbability float64 `json:"risk_probability"`
	Decision        string  `json:"decision"`
	LoanRecordID    string  `json:"loan_record_id"`
	DegradedScoring bool    `json:"degraded_scoring,omitempty"`
}

type RepaymentDTO struct {
	LoanID string `json:"loan_id"`
	Status string `json:"status"`
}

func toLoanDTO(l *loan.Record) LoanDTO {
	return LoanDTO{
		LoanID:        l.LoanID,
		POID:          l.POID,
		VendorAddress: l.VendorAddress,
		Amount:        l.Amount,
		RiskScore:     l.RiskScore,
		Status:        string(l.Status),
		CreatedAt:     l.CreatedAt,
	}
}
