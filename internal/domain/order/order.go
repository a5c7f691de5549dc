package order

import (
	"context"
	"errors"
)

// ErrNotFound covers every failed lookup: unknown id, ledger unreachable,
// ledger timeout. Callers cannot distinguish them and are not meant to.
var ErrNotFound = errors.New("purchase order not found")

// Goods categories known to the risk table. The ledger may emit others;
// unknown categories fall back to a default risk weight.
const (
	CategoryElectronics  = "Electronics"
	CategoryTextiles     = "Textiles"
	CategoryConstruction = "Construction"
	CategoryFood         = "Food"
	CategoryOther        = "Other"
)

// PurchaseOrder mirrors the ledger's record. It is fetched fresh per request
// and never stored; DeliveryDate is seconds since epoch as the ledger keeps it.
type PurchaseOrder struct {
	ID            int64   `json:"id"`
	Buyer         string  `json:"buyer"`
	Vendor        string  `json:"vendor"`
	Amount        float64 `json:"amount"`
	DeliveryDate  int64   `json:"deliveryDate"`
	GoodsCategory string  `json:"goodsCategory"`
	Status        string  `json:"status"`
}

// Oracle is a read-only view of the ledger: one lookup, no caching, no
// retries. A failed read surfaces as ErrNotFound.
type Oracle interface {
	FetchPurchaseOrder(ctx context.Context, id int64) (*PurchaseOrder, error)
}
