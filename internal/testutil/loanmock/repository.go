package loanmock

import (
	"context"

	domain "po-financing-backend/internal/domain/loan"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset methods return gorm.ErrRecordNotFound / nil like an empty store.
type Repo struct {
	CreateIfNoActiveFn     func(ctx context.Context, l *domain.Record) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Record, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Record, error)
	GetActiveByPOIDFn      func(ctx context.Context, poID int64) (*domain.Record, error)
	ListFn                 func(ctx context.Context) ([]domain.Record, error)
	StatsFn                func(ctx context.Context) (*domain.Stats, error)
	SaveFn                 func(ctx context.Context, l *domain.Record) error
}

func (m *Repo) CreateIfNoActive(ctx context.Context, l *domain.Record) error {
	if m.CreateIfNoActiveFn != nil {
		return m.CreateIfNoActiveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Record, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Record, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetActiveByPOID(ctx context.Context, poID int64) (*domain.Record, error) {
	if m.GetActiveByPOIDFn != nil {
		return m.GetActiveByPOIDFn(ctx, poID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.Record, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Stats(ctx context.Context) (*domain.Stats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	return &domain.Stats{}, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Record) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}
