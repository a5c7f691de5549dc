package loanmock

import (
	"context"
	"errors"
	"testing"

	domain "po-financing-backend/internal/domain/loan"

	"gorm.io/gorm"
)

func TestRepo_CreateIfNoActive(t *testing.T) {
	ctx := context.Background()
	l := &domain.Record{LoanID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}

	// Uses provided func
	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateIfNoActiveFn: func(gotCtx context.Context, got *domain.Record) error {
			called = true
			if gotCtx != ctx {
				t.Fatalf("ctx mismatch")
			}
			if got != l {
				t.Fatalf("arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.CreateIfNoActive(ctx, l); !errors.Is(err, wantErr) {
		t.Fatalf("want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateIfNoActiveFn not called")
	}

	// Default (nil func) → no-op, nil error
	m = &Repo{}
	if err := m.CreateIfNoActive(ctx, l); err != nil {
		t.Fatalf("default: want nil, got %v", err)
	}
}

func TestRepo_GetDefaultsToNotFound(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if _, err := m.GetByLoanID(ctx, "x"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByLoanID default: %v", err)
	}
	if _, err := m.GetByLoanIDForUpdate(ctx, "x"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByLoanIDForUpdate default: %v", err)
	}
	if _, err := m.GetActiveByPOID(ctx, 1); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetActiveByPOID default: %v", err)
	}
}

func TestRepo_StatsDefault(t *testing.T) {
	m := &Repo{}
	s, err := m.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats default: %v", err)
	}
	if s.TotalCapital != 0 || s.FinancedPOs != 0 || s.AverageRisk != 0 {
		t.Fatalf("Stats default: %+v", s)
	}
}
