package ports

import (
	"context"
	"time"

	"bank-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepository defines persistence operations for accounts.
// Methods accepting pgx.Tx run inside the engine's atomic unit and take the
// account row lock that provides per-account serializability.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByAccountNo(ctx context.Context, accountNo string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance decimal.Decimal) error
	SetBankrupt(ctx context.Context, id uuid.UUID, bankrupt bool) error
}

// TransactionRepository defines persistence for the append-only ledger.
// Rows are never deleted; the only updates are the loan status transitions.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error)
	// ApproveLoan flips a REQUESTED loan to APPROVED and rewrites its balance
	// snapshot to the post-disbursement balance. The one sanctioned in-place
	// transition of a ledger row.
	ApproveLoan(ctx context.Context, tx pgx.Tx, id uuid.UUID, balanceAfter decimal.Decimal) error
	// MarkLoanRepaid flips an APPROVED loan to REPAID. Status only; the
	// repayment itself is a new LOAN_PAID row.
	MarkLoanRepaid(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	CountApprovedLoans(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) (int64, error)
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, error)
	ListLoans(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error)
}

// TransactionListParams filters a ledger read. From/To bound the transaction
// date inclusively; both must be set for range mode.
type TransactionListParams struct {
	AccountID uuid.UUID
	From      *time.Time
	To        *time.Time
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
