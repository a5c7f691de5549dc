package uowmock

import (
	"context"

	domain "po-financing-backend/internal/domain/loan"
	"po-financing-backend/internal/domain/uow"
)

// UoW fakes the unit of work without a database. When the function fields are
// unset, it runs fn against Repos, fetching the locked loan via the repo's
// GetByLoanIDForUpdate.
type UoW struct {
	Repos uow.Repos

	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn func(ctx context.Context, loanID string, fn func(r uow.Repos, l *domain.Record) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(m.Repos)
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *domain.Record) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	l, err := m.Repos.Loans.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		return err
	}
	return fn(m.Repos, l)
}
