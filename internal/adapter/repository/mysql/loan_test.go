package mysql

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domain "po-financing-backend/internal/domain/loan"
	"po-financing-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB. A single connection keeps every
// goroutine on the same database and serializes transactions the way the
// sqlite writer lock does for a file DB.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&domain.Record{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeRecord(poID int64, status domain.Status) *domain.Record {
	return &domain.Record{
		LoanID:          id.NewID32(),
		POID:            poID,
		VendorAddress:   "0x70997970c51812dc3a010c7d01b50e0d17dc79c8",
		Amount:          10_000.00,
		RiskScore:       0.62,
		Status:          status,
		StatusUpdatedAt: time.Now().UTC(),
	}
}

func TestCreateIfNoActive_AndGetByLoanID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeRecord(7, domain.StatusApproved)
	if err := repo.CreateIfNoActive(ctx, l); err != nil {
		t.Fatalf("CreateIfNoActive: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.POID != 7 || got.VendorAddress != l.VendorAddress || got.Amount != l.Amount ||
		got.RiskScore != l.RiskScore || got.Status != domain.StatusApproved {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestCreateIfNoActive_RejectsSecondActiveLoan(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	if err := repo.CreateIfNoActive(ctx, makeRecord(42, domain.StatusPartial)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := repo.CreateIfNoActive(ctx, makeRecord(42, domain.StatusApproved))
	if !errors.Is(err, domain.ErrDuplicateActiveLoan) {
		t.Fatalf("second create: got %v, want ErrDuplicateActiveLoan", err)
	}
}

func TestCreateIfNoActive_RejectedDoesNotBlock(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	if err := repo.CreateIfNoActive(ctx, makeRecord(9, domain.StatusRejected)); err != nil {
		t.Fatalf("rejected create: %v", err)
	}
	// a rejected record is not active, so the PO may be re-scored later
	if err := repo.CreateIfNoActive(ctx, makeRecord(9, domain.StatusApproved)); err != nil {
		t.Fatalf("create after rejection: %v", err)
	}
}

func TestCreateIfNoActive_RepaidDoesNotBlock(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeRecord(11, domain.StatusApproved)
	if err := repo.CreateIfNoActive(ctx, l); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := l.MarkRepaid(time.Now().UTC()); err != nil {
		t.Fatalf("MarkRepaid: %v", err)
	}
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.CreateIfNoActive(ctx, makeRecord(11, domain.StatusPartial)); err != nil {
		t.Fatalf("create after repayment: %v", err)
	}
}

func TestCreateIfNoActive_ConcurrentSamePO(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateIfNoActive(ctx, makeRecord(1337, domain.StatusApproved))
		}(i)
	}
	wg.Wait()

	ok, dup := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrDuplicateActiveLoan):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != n-1 {
		t.Fatalf("ok=%d dup=%d, want 1 and %d", ok, dup, n-1)
	}
}

func TestGetActiveByPOID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	if _, err := repo.GetActiveByPOID(ctx, 5); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("empty store: got %v, want ErrRecordNotFound", err)
	}

	l := makeRecord(5, domain.StatusApproved)
	if err := repo.CreateIfNoActive(ctx, l); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.GetActiveByPOID(ctx, 5)
	if err != nil {
		t.Fatalf("GetActiveByPOID: %v", err)
	}
	if got.LoanID != l.LoanID {
		t.Fatalf("got %s, want %s", got.LoanID, l.LoanID)
	}
}

func TestList_InsertionOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	var want []string
	for poID := int64(1); poID <= 3; poID++ {
		l := makeRecord(poID, domain.StatusApproved)
		if err := repo.CreateIfNoActive(ctx, l); err != nil {
			t.Fatalf("create po %d: %v", poID, err)
		}
		want = append(want, l.LoanID)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len=%d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].LoanID != want[i] {
			t.Fatalf("order: got[%d]=%s, want %s", i, got[i].LoanID, want[i])
		}
	}
}

func TestStats(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	// empty store
	s, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.TotalCapital != 0 || s.FinancedPOs != 0 || s.AverageRisk != 0 {
		t.Fatalf("empty stats: %+v", s)
	}

	mk := func(poID int64, amount, score float64, st domain.Status) {
		l := makeRecord(poID, st)
		l.Amount, l.RiskScore = amount, score
		if err := repo.CreateIfNoActive(ctx, l); err != nil {
			t.Fatalf("create po %d: %v", poID, err)
		}
	}
	mk(1, 10_000, 0.8, domain.StatusApproved)
	mk(2, 5_000, 0.6, domain.StatusPartial)
	mk(3, 99_999, 0.2, domain.StatusRejected) // excluded from capital, counted in avg

	s, err = repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.TotalCapital != 15_000 {
		t.Fatalf("TotalCapital=%v, want 15000", s.TotalCapital)
	}
	if s.FinancedPOs != 2 {
		t.Fatalf("FinancedPOs=%v, want 2", s.FinancedPOs)
	}
	if diff := s.AverageRisk - (0.8+0.6+0.2)/3; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("AverageRisk=%v", s.AverageRisk)
	}
}
