package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of balance-affecting event.
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal  TransactionType = "WITHDRAWAL"
	TransactionTypeLoan        TransactionType = "LOAN"
	TransactionTypeLoanPaid    TransactionType = "LOAN_PAID"
	TransactionTypeTransferOut TransactionType = "TRANSFER_OUT"
	TransactionTypeTransferIn  TransactionType = "TRANSFER_IN"
)

// LoanStatus represents the lifecycle state of a LOAN transaction.
// Transitions are linear: REQUESTED -> APPROVED -> REPAID.
type LoanStatus string

const (
	LoanStatusRequested LoanStatus = "REQUESTED"
	LoanStatusApproved  LoanStatus = "APPROVED"
	LoanStatusRepaid    LoanStatus = "REPAID"
)

// Transaction is one entry of the append-only ledger. Amount is always a
// positive magnitude; the type encodes the direction. The only fields that
// ever change after creation are the loan status transitions and, on loan
// approval, the balance snapshot of the approved loan row.
type Transaction struct {
	ID                   uuid.UUID       `json:"id"`
	AccountID            uuid.UUID       `json:"account_id"`
	Amount               decimal.Decimal `json:"amount"`
	BalanceAfter         decimal.Decimal `json:"balance_after_transaction"`
	TransactionType      TransactionType `json:"transaction_type"`
	LoanStatus           *LoanStatus     `json:"loan_status,omitempty"` // LOAN rows only
	RelatedTransactionID *uuid.UUID      `json:"related_transaction_id,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}

// IsLoan reports whether this row is a loan request record.
func (t *Transaction) IsLoan() bool {
	return t.TransactionType == TransactionTypeLoan
}

// IsApprovedLoan reports whether this row is a disbursed, not yet repaid loan.
func (t *Transaction) IsApprovedLoan() bool {
	return t.IsLoan() && t.LoanStatus != nil && *t.LoanStatus == LoanStatusApproved
}

// SignedEffect returns the contribution of this transaction to the account
// balance. A loan request that was never approved contributes nothing; once
// approved the disbursement counts, and the repayment is carried by its own
// LOAN_PAID row.
func (t *Transaction) SignedEffect() decimal.Decimal {
	switch t.TransactionType {
	case TransactionTypeDeposit, TransactionTypeTransferIn:
		return t.Amount
	case TransactionTypeWithdrawal, TransactionTypeLoanPaid, TransactionTypeTransferOut:
		return t.Amount.Neg()
	case TransactionTypeLoan:
		if t.LoanStatus == nil || *t.LoanStatus == LoanStatusRequested {
			return decimal.Zero
		}
		return t.Amount
	}
	return decimal.Zero
}
