package risk

import "po-financing-backend/internal/domain/loan"

// Decide maps a repayment probability to a financing outcome. Boundary values
// belong to the lower bracket (strict > on the upper bound only); historical
// decisions were made with exactly this tie-break.
func Decide(probability float64) loan.Status {
	switch {
	case probability > 0.7:
		return loan.StatusApproved
	case probability > 0.4:
		return loan.StatusPartial
	default:
		return loan.StatusRejected
	}
}
