package ports

import (
	"context"
	"time"

	"bank-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService validates and applies every balance-affecting operation.
// Each method is atomic with respect to the account store and the ledger:
// either the balance mutation and the appended rows all commit, or nothing
// is observable.
type LedgerService interface {
	Deposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error)
	Withdraw(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error)
	RequestLoan(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error)
	ApproveLoan(ctx context.Context, loanID uuid.UUID) (*domain.Transaction, error)
	PayLoan(ctx context.Context, accountID uuid.UUID, loanID uuid.UUID) (*domain.Transaction, error)
	Transfer(ctx context.Context, fromAccountID uuid.UUID, toAccountNo string, amount decimal.Decimal) (*TransferResult, error)
}

// TransferResult carries the two legs of a committed transfer.
type TransferResult struct {
	OutTransaction *domain.Transaction
	InTransaction  *domain.Transaction
}

// ReportingService reads the ledger; it never mutates state.
type ReportingService interface {
	GetReport(ctx context.Context, accountID uuid.UUID, from, to *time.Time) (*Report, error)
	ListLoans(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error)
}

// Report is the projector output. Total is the live balance when no range was
// supplied, and the sum of transaction amounts inside the range otherwise —
// "how much moved in this window", not "what is my balance now".
type Report struct {
	Transactions []domain.Transaction `json:"transactions"`
	Total        decimal.Decimal      `json:"total"`
	Ranged       bool                 `json:"ranged"`
}

// Notifier hands committed events to the external notification collaborator.
// Delivery is fire-and-forget: errors are logged, never surfaced, and never
// roll back the ledger mutation they describe.
type Notifier interface {
	Notify(ctx context.Context, event domain.NotificationEvent) error
}

// TokenService validates the bearer tokens minted by the external identity
// collaborator and extracts the caller's account id.
type TokenService interface {
	Generate(accountID uuid.UUID, accountNo string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed token claims.
type TokenClaims struct {
	AccountID uuid.UUID
	AccountNo string
}
