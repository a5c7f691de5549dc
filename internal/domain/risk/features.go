package risk

import (
	"time"

	"po-financing-backend/internal/domain/order"
)

// Placeholder scores standing in for historical-performance lookups. The
// downstream decision thresholds are calibrated against exactly these values,
// so changing them is a model-retraining event, not a code tweak.
const (
	vendorHistoryScore  = 0.85
	buyerScore          = 0.9
	defaultCategoryRisk = 0.2
)

var categoryRisk = map[string]float64{
	order.CategoryElectronics:  0.1,
	order.CategoryTextiles:     0.3,
	order.CategoryConstruction: 0.5,
	order.CategoryFood:         0.2,
}

// Features is the fixed vector the credit model was trained on.
type Features struct {
	POAmount           float64 `json:"po_amount"`
	DeliveryDays       float64 `json:"delivery_days"`
	VendorHistoryScore float64 `json:"vendor_history_score"`
	BuyerScore         float64 `json:"buyer_score"`
	CategoryRisk       float64 `json:"category_risk"`
}

// BuildFeatures derives the model input from a purchase order. Days to
// delivery clamp at zero for overdue orders.
func BuildFeatures(po *order.PurchaseOrder, now time.Time) Features {
	days := (po.DeliveryDate - now.Unix()) / 86400
	if days < 0 {
		days = 0
	}
	risk, ok := categoryRisk[po.GoodsCategory]
	if !ok {
		risk = defaultCategoryRisk
	}
	return Features{
		POAmount:           po.Amount,
		DeliveryDays:       float64(days),
		VendorHistoryScore: vendorHistoryScore,
		BuyerScore:         buyerScore,
		CategoryRisk:       risk,
	}
}
