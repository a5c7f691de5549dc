package http

import (
	"net/http"

	"po-financing-backend/internal/usecase/financing"

	"github.com/labstack/echo/v4"
)

type POHandler struct{ uc *financing.Usecase }

func NewPOHandler(uc *financing.Usecase) *POHandler { return &POHandler{uc: uc} }

type getPOParams struct {
	POID int64 `param:"po_id" validate:"required,gt=0"`
}

func (h *POHandler) GetPurchaseOrder(c echo.Context) error {
	var p getPOParams
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid po_id"})
	}
	if err := c.Validate(&p); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	po, err := h.uc.GetPurchaseOrder(c.Request().Context(), p.POID)
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, po)
}
