package http

import (
	"net/http"

	"po-financing-backend/internal/usecase/financing"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *financing.Usecase }

func NewLoanHandler(uc *financing.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type requestLoanParams struct {
	POID int64 `param:"po_id" validate:"required,gt=0"`
}

type repayLoanParams struct {
	LoanID string `param:"loan_id" validate:"required,hex32"`
}

func (h *LoanHandler) RequestLoan(c echo.Context) error {
	var p requestLoanParams
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid po_id"})
	}
	if err := c.Validate(&p); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.RequestLoan(c.Request().Context(), p.POID)
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) RepayLoan(c echo.Context) error {
	var p repayLoanParams
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	if err := c.Validate(&p); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.RepayLoan(c.Request().Context(), p.LoanID)
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "Loan marked as repaid",
		"loan_id": dto.LoanID,
	})
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	loans, err := h.uc.ListLoans(c.Request().Context())
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) Stats(c echo.Context) error {
	stats, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}
