package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"po-financing-backend/internal/domain/order"
	"po-financing-backend/internal/testutil/loanmock"
	"po-financing-backend/internal/testutil/oraclemock"

	"github.com/labstack/echo/v4"
)

func TestRoot(t *testing.T) {
	e := echo.New()
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := h.Root(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "PO Financing Backend Running") {
		t.Fatalf("body: %s", rec.Body.String())
	}
}

func TestHealth_ReturnsOKWithRFC3339NanoUTC(t *testing.T) {
	e := echo.New()
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	start := time.Now().UTC()
	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v; raw=%s", err, rec.Body.String())
	}
	if body.Status != "ok" {
		t.Fatalf(`expected status "ok", got %q`, body.Status)
	}

	parsed, err := time.Parse(time.RFC3339Nano, body.Time)
	if err != nil {
		t.Fatalf("time not RFC3339Nano: %v (value=%q)", err, body.Time)
	}
	now := time.Now().UTC()
	if parsed.Before(start.Add(-2*time.Second)) || parsed.After(now.Add(2*time.Second)) {
		t.Fatalf("time not within expected window: parsed=%v start=%v now=%v", parsed, start, now)
	}
}

func TestGetPurchaseOrder_OK(t *testing.T) {
	e := newEchoWithValidator()
	orc := &oraclemock.Client{
		FetchFn: func(ctx context.Context, id int64) (*order.PurchaseOrder, error) {
			return &order.PurchaseOrder{
				ID: id, Buyer: "0xbuyer", Vendor: "0xvendor",
				Amount: 500, DeliveryDate: 1_799_000_000,
				GoodsCategory: order.CategoryElectronics, Status: "Open",
			}, nil
		},
	}
	h := NewPOHandler(newUsecase(orc, &loanmock.Repo{}))
	e.GET("/purchase-orders/:po_id", h.GetPurchaseOrder)

	rec := doRequest(e, http.MethodGet, "/purchase-orders/12")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var po order.PurchaseOrder
	if err := json.Unmarshal(rec.Body.Bytes(), &po); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if po.ID != 12 || po.GoodsCategory != order.CategoryElectronics {
		t.Fatalf("body: %+v", po)
	}
}

func TestGetPurchaseOrder_UnknownIs404(t *testing.T) {
	e := newEchoWithValidator()
	h := NewPOHandler(newUsecase(&oraclemock.Client{}, &loanmock.Repo{}))
	e.GET("/purchase-orders/:po_id", h.GetPurchaseOrder)

	rec := doRequest(e, http.MethodGet, "/purchase-orders/999")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", rec.Code)
	}
}

func TestGetPurchaseOrder_BadIDIs422(t *testing.T) {
	e := newEchoWithValidator()
	h := NewPOHandler(newUsecase(&oraclemock.Client{}, &loanmock.Repo{}))
	e.GET("/purchase-orders/:po_id", h.GetPurchaseOrder)

	rec := doRequest(e, http.MethodGet, "/purchase-orders/-3")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d, want 422", rec.Code)
	}
}
