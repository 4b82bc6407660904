package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionRepo implements ports.TransactionRepository over the append-only
// transactions table.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

const transactionColumns = `id, account_id, amount, balance_after, transaction_type, loan_status, related_transaction_id, created_at`

// Create appends a ledger row within a database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, account_id, amount, balance_after, transaction_type, loan_status, related_transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.AccountID, t.Amount, t.BalanceAfter,
		t.TransactionType, t.LoanStatus, t.RelatedTransactionID, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE id = $1`, transactionColumns)

	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate fetches a transaction with a row lock, so two concurrent
// loan transitions on the same row cannot both pass their state check.
func (r *TransactionRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE id = $1 FOR UPDATE`, transactionColumns)

	return r.scanTransaction(tx.QueryRow(ctx, query, id))
}

// ApproveLoan flips a REQUESTED loan to APPROVED and rewrites its balance
// snapshot with the post-disbursement balance.
func (r *TransactionRepo) ApproveLoan(ctx context.Context, tx pgx.Tx, id uuid.UUID, balanceAfter decimal.Decimal) error {
	query := `UPDATE transactions SET loan_status = $1, balance_after = $2
		WHERE id = $3 AND transaction_type = $4 AND loan_status = $5`

	tag, err := tx.Exec(ctx, query,
		domain.LoanStatusApproved, balanceAfter,
		id, domain.TransactionTypeLoan, domain.LoanStatusRequested,
	)
	if err != nil {
		return fmt.Errorf("approve loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pending loan not found: %s", id)
	}
	return nil
}

// MarkLoanRepaid flips an APPROVED loan to REPAID. Status only; amount and
// balance snapshot stay untouched.
func (r *TransactionRepo) MarkLoanRepaid(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `UPDATE transactions SET loan_status = $1
		WHERE id = $2 AND transaction_type = $3 AND loan_status = $4`

	tag, err := tx.Exec(ctx, query,
		domain.LoanStatusRepaid,
		id, domain.TransactionTypeLoan, domain.LoanStatusApproved,
	)
	if err != nil {
		return fmt.Errorf("mark loan repaid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("approved loan not found: %s", id)
	}
	return nil
}

// CountApprovedLoans counts disbursed, unrepaid loans for the cap check.
// Runs on the caller's transaction so the count is taken under the account
// row lock.
func (r *TransactionRepo) CountApprovedLoans(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions
		WHERE account_id = $1 AND transaction_type = $2 AND loan_status = $3`

	var count int64
	err := tx.QueryRow(ctx, query, accountID, domain.TransactionTypeLoan, domain.LoanStatusApproved).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count approved loans: %w", err)
	}
	return count, nil
}

// List fetches an account's transactions, optionally bounded by an inclusive
// date range, in stable storage order.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, error) {
	conditions := []string{"account_id = $1"}
	args := []any{params.AccountID}
	argIdx := 2

	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s ORDER BY created_at, id`,
		transactionColumns, strings.Join(conditions, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return r.collectTransactions(rows)
}

// ListLoans fetches all LOAN rows for an account.
func (r *TransactionRepo) ListLoans(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions
		WHERE account_id = $1 AND transaction_type = $2 ORDER BY created_at, id`, transactionColumns)

	rows, err := r.pool.Query(ctx, query, accountID, domain.TransactionTypeLoan)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	return r.collectTransactions(rows)
}

func (r *TransactionRepo) collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{}
		err := rows.Scan(
			&t.ID, &t.AccountID, &t.Amount, &t.BalanceAfter,
			&t.TransactionType, &t.LoanStatus, &t.RelatedTransactionID, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, nil
}

// scanTransaction is a helper to scan a single row into a Transaction.
func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.AccountID, &t.Amount, &t.BalanceAfter,
		&t.TransactionType, &t.LoanStatus, &t.RelatedTransactionID, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
