package mysql

import (
	"context"
	"errors"

	loanDomain "po-financing-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

var activeStatuses = []loanDomain.Status{loanDomain.StatusApproved, loanDomain.StatusPartial}

// forUpdate adds a FOR UPDATE locking clause on MySQL. SQLite has no row
// locks; its single-writer lock serializes the transaction anyway.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// CreateIfNoActive runs the active-loan check and the insert in one
// transaction so concurrent requests for the same PO cannot both finance it.
func (r *LoanRepository) CreateIfNoActive(ctx context.Context, l *loanDomain.Record) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing loanDomain.Record
		err := forUpdate(tx).
			Where("po_id = ? AND status IN ?", l.POID, activeStatuses).
			First(&existing).Error
		switch {
		case err == nil:
			return loanDomain.ErrDuplicateActiveLoan
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		return tx.Create(l).Error
	})
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Record) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Record, error) {
	var out loanDomain.Record
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Record, error) {
	var out loanDomain.Record
	res := forUpdate(r.db.WithContext(ctx)).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetActiveByPOID(ctx context.Context, poID int64) (*loanDomain.Record, error) {
	var out loanDomain.Record
	res := r.db.WithContext(ctx).
		Where("po_id = ? AND status IN ?", poID, activeStatuses).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) List(ctx context.Context) ([]loanDomain.Record, error) {
	var out []loanDomain.Record
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

// Stats aggregates in SQL rather than loading every row.
func (r *LoanRepository) Stats(ctx context.Context) (*loanDomain.Stats, error) {
	var out loanDomain.Stats
	res := r.db.WithContext(ctx).Model(&loanDomain.Record{}).
		Select(
			"COALESCE(SUM(CASE WHEN status IN ? THEN amount ELSE 0 END), 0) AS total_capital, "+
				"COALESCE(SUM(CASE WHEN status IN ? THEN 1 ELSE 0 END), 0) AS financed_pos, "+
				"COALESCE(AVG(risk_score), 0) AS average_risk",
			activeStatuses, activeStatuses,
		).
		Scan(&out)
	return &out, res.Error
}
