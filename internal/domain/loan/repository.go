package loan

import "context"

// Stats aggregates the portfolio. TotalCapital and FinancedPOs count only
// active records; AverageRisk averages over every record ever created.
type Stats struct {
	TotalCapital float64 `json:"total_capital"`
	FinancedPOs  int64   `json:"financed_pos"`
	AverageRisk  float64 `json:"average_risk"`
}

type Repository interface {
	// CreateIfNoActive inserts l unless an active record already exists for
	// l.POID, in which case it fails with ErrDuplicateActiveLoan. The check
	// and the insert are atomic.
	CreateIfNoActive(ctx context.Context, l *Record) error

	GetByLoanID(ctx context.Context, loanID string) (*Record, error)
	// GetByLoanIDForUpdate locks the row for the duration of the enclosing tx.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Record, error)
	GetActiveByPOID(ctx context.Context, poID int64) (*Record, error)

	List(ctx context.Context) ([]Record, error)
	Stats(ctx context.Context) (*Stats, error)

	Save(ctx context.Context, l *Record) error
}
