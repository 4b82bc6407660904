package service

import (
	"context"
	"fmt"

	"bank-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LoanPolicy decides whether an account may request another loan. The rule
// counts currently approved loans against a configurable cap; requested and
// repaid loans do not consume capacity, so repaying a loan frees a slot.
type LoanPolicy struct {
	txRepo      ports.TransactionRepository
	approvedCap int64
}

// NewLoanPolicy creates a LoanPolicy with the given approved-loan cap.
func NewLoanPolicy(txRepo ports.TransactionRepository, approvedCap int64) *LoanPolicy {
	return &LoanPolicy{
		txRepo:      txRepo,
		approvedCap: approvedCap,
	}
}

// CheckLoanEligible reports whether the account is under the approved-loan
// cap. The count runs inside the caller's transaction, under the account row
// lock, so two concurrent requests cannot both observe a free slot.
func (p *LoanPolicy) CheckLoanEligible(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) (bool, error) {
	count, err := p.txRepo.CountApprovedLoans(ctx, tx, accountID)
	if err != nil {
		return false, fmt.Errorf("count approved loans: %w", err)
	}
	return count < p.approvedCap, nil
}
