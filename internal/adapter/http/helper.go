package http

import (
	"errors"
	"net/http"

	"po-financing-backend/internal/domain/loan"
	"po-financing-backend/internal/domain/order"
)

// ---- helpers ----

// errStatus maps domain errors to HTTP status codes. Unknown errors are
// internal.
func errStatus(err error) int {
	switch {
	case errors.Is(err, order.ErrNotFound), errors.Is(err, loan.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loan.ErrDuplicateActiveLoan), errors.Is(err, loan.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
