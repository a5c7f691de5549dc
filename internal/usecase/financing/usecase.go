package financing

import (
	"context"
	"errors"
	"time"

	"po-financing-backend/internal/domain/loan"
	"po-financing-backend/internal/domain/order"
	"po-financing-backend/internal/domain/risk"
	"po-financing-backend/internal/domain/uow"
	"po-financing-backend/internal/notify"
	"po-financing-backend/pkg/id"

	"gorm.io/gorm"
)

// Broadcaster is the notification side channel. Calls never fail the request
// that produced the event.
type Broadcaster interface {
	Broadcast(e notify.Event)
}

// Usecase composes the oracle, scorer, store and hub per request. All four
// collaborators are injected once at process start.
type Usecase struct {
	oracle order.Oracle
	scorer *risk.Scorer
	repo   loan.Repository
	uow    uow.UnitOfWork
	hub    Broadcaster
}

func NewUsecase(o order.Oracle, s *risk.Scorer, r loan.Repository, tx uow.UnitOfWork, hub Broadcaster) *Usecase {
	return &Usecase{oracle: o, scorer: s, repo: r, uow: tx, hub: hub}
}

func (u *Usecase) GetPurchaseOrder(ctx context.Context, poID int64) (*order.PurchaseOrder, error) {
	return u.oracle.FetchPurchaseOrder(ctx, poID)
}

// RequestLoan turns a purchase-order reference into a financing decision:
// fetch, score, classify, persist, notify. The decision is recorded even when
// it is a rejection; only the active-loan guard blocks creation.
func (u *Usecase) RequestLoan(ctx context.Context, poID int64) (*DecisionDTO, error) {
	po, err := u.oracle.FetchPurchaseOrder(ctx, poID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	score := u.scorer.Score(po, now)
	decision := risk.Decide(score.Probability)

	rec := &loan.Record{
		LoanID:          id.NewID32(),
		POID:            poID,
		VendorAddress:   po.Vendor,
		Amount:          po.Amount,
		RiskScore:       score.Probability,
		Status:          decision,
		StatusUpdatedAt: now,
	}
	if err := u.repo.CreateIfNoActive(ctx, rec); err != nil {
		return nil, err
	}

	// The record is durable from here on: the caller abandoning the request
	// no longer rolls anything back, and the event still goes out.
	u.hub.Broadcast(notify.Event{Type: notify.EventNewLoan, Data: toLoanDTO(rec)})

	return &DecisionDTO{
		POID:            poID,
		RiskProbability: score.Probability,
		Decision:        string(decision),
		LoanRecordID:    rec.LoanID,
		DegradedScoring: score.Degraded,
	}, nil
}

// RepayLoan advances an active loan to Repaid under a row lock, then emits
// LOAN_REPAID.
func (u *Usecase) RepayLoan(ctx context.Context, loanID string) (*RepaymentDTO, error) {
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Record) error {
		if err := l.MarkRepaid(time.Now().UTC()); err != nil {
			return err
		}
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}

	u.hub.Broadcast(notify.Event{
		Type: notify.EventLoanRepaid,
		Data: map[string]string{"loan_id": loanID},
	})
	return &RepaymentDTO{LoanID: loanID, Status: string(loan.StatusRepaid)}, nil
}

func (u *Usecase) ListLoans(ctx context.Context) ([]LoanDTO, error) {
	records, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(records))
	for i := range records {
		out = append(out, toLoanDTO(&records[i]))
	}
	return out, nil
}

func (u *Usecase) Stats(ctx context.Context) (*loan.Stats, error) {
	return u.repo.Stats(ctx)
}
