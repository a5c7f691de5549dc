package loan

import (
	"errors"
	"time"
)

type Status string

const (
	// StatusPending is transient: every create resolves straight to one of the
	// statuses below, so it never reaches the store.
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusPartial  Status = "Partial Approval"
	StatusRejected Status = "Rejected"
	StatusRepaid   Status = "Repaid"
)

// Active reports whether a record in this status counts against the
// one-active-loan-per-PO invariant.
func (s Status) Active() bool { return s == StatusApproved || s == StatusPartial }

// Terminal statuses permit no further mutation.
func (s Status) Terminal() bool { return s == StatusRejected || s == StatusRepaid }

var (
	ErrNotFound            = errors.New("loan record not found")
	ErrDuplicateActiveLoan = errors.New("purchase order already has an active loan")
	ErrInvalidTransition   = errors.New("loan status does not permit this transition")
)

type Record struct {
	ID              uint64    `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string    `gorm:"size:32;uniqueIndex:ux_loan_records_loan_id" json:"loan_id"`
	POID            int64     `gorm:"column:po_id;index:idx_loan_records_po" json:"po_id"`
	VendorAddress   string    `gorm:"size:128" json:"vendor_address"`
	Amount          float64   `gorm:"type:decimal(18,2)" json:"amount"`
	RiskScore       float64   `gorm:"type:decimal(6,4)" json:"risk_score"`
	Status          Status    `gorm:"type:varchar(32)" json:"status"`
	StatusUpdatedAt time.Time `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Record) TableName() string { return "loan_records" }

// MarkRepaid advances an active record to Repaid. Rejected and Repaid are
// terminal, so repeating a repayment fails rather than silently succeeding.
func (r *Record) MarkRepaid(now time.Time) error {
	if !r.Status.Active() {
		return ErrInvalidTransition
	}
	r.Status = StatusRepaid
	r.StatusUpdatedAt = now.UTC()
	return nil
}
