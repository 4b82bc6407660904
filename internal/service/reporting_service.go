package service

import (
	"context"
	"time"

	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"
	"bank-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// reportingService implements ports.ReportingService. Pure ledger reads; all
// mutation goes through the ledger service.
type reportingService struct {
	accountRepo ports.AccountRepository
	txRepo      ports.TransactionRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	accountRepo ports.AccountRepository,
	txRepo ports.TransactionRepository,
) ports.ReportingService {
	return &reportingService{
		accountRepo: accountRepo,
		txRepo:      txRepo,
	}
}

// GetReport returns the account's transaction history. Without a range the
// total is the live balance. With a range (both bounds required, inclusive)
// the total is the sum of transaction amounts inside the window — the volume
// that moved, not a balance.
func (s *reportingService) GetReport(ctx context.Context, accountID uuid.UUID, from, to *time.Time) (*ports.Report, error) {
	if (from == nil) != (to == nil) {
		return nil, apperror.Validation("both from and to must be provided for a date range")
	}
	if from != nil && from.After(*to) {
		return nil, apperror.Validation("from must not be after to")
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	txns, err := s.txRepo.List(ctx, ports.TransactionListParams{
		AccountID: accountID,
		From:      from,
		To:        to,
	})
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	report := &ports.Report{
		Transactions: txns,
		Ranged:       from != nil,
	}
	if report.Ranged {
		total := decimal.Zero
		for _, txn := range txns {
			total = total.Add(txn.Amount)
		}
		report.Total = total
	} else {
		report.Total = account.Balance
	}

	return report, nil
}

// ListLoans returns all loan rows for the account, any status.
func (s *reportingService) ListLoans(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	loans, err := s.txRepo.ListLoans(ctx, accountID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return loans, nil
}
