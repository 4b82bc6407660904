package postgres

import (
	"context"
	"errors"
	"fmt"

	"bank-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create inserts a new account. Invoked by the identity collaborator's
// provisioning path, never by the ledger engine itself.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (id, account_no, balance, is_bankrupt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.AccountNo, a.Balance, a.IsBankrupt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID fetches an account by its UUID (without locking).
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT id, account_no, balance, is_bankrupt, created_at, updated_at
		FROM accounts WHERE id = $1`

	return r.scanAccount(r.pool.QueryRow(ctx, query, id))
}

// GetByAccountNo fetches an account by its account number (non-locking read).
// Used to resolve transfer targets.
func (r *AccountRepo) GetByAccountNo(ctx context.Context, accountNo string) (*domain.Account, error) {
	query := `SELECT id, account_no, balance, is_bankrupt, created_at, updated_at
		FROM accounts WHERE account_no = $1`

	return r.scanAccount(r.pool.QueryRow(ctx, query, accountNo))
}

// GetByIDForUpdate fetches an account with a pessimistic row lock. The lock
// is what serializes concurrent operations against the same account; it MUST
// be called within a transaction.
func (r *AccountRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT id, account_no, balance, is_bankrupt, created_at, updated_at
		FROM accounts WHERE id = $1 FOR UPDATE`

	a := &domain.Account{}
	err := tx.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.AccountNo, &a.Balance, &a.IsBankrupt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account for update: %w", err)
	}
	return a, nil
}

// UpdateBalance writes a new balance within a transaction.
func (r *AccountRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE accounts SET balance = $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, balance, id)
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %s", id)
	}
	return nil
}

// SetBankrupt toggles the bankrupt flag. Administrative path only.
func (r *AccountRepo) SetBankrupt(ctx context.Context, id uuid.UUID, bankrupt bool) error {
	query := `UPDATE accounts SET is_bankrupt = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, bankrupt, id)
	if err != nil {
		return fmt.Errorf("set bankrupt flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %s", id)
	}
	return nil
}

// scanAccount is a helper to scan a single row into an Account.
func (r *AccountRepo) scanAccount(row pgx.Row) (*domain.Account, error) {
	a := &domain.Account{}
	err := row.Scan(
		&a.ID, &a.AccountNo, &a.Balance, &a.IsBankrupt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}
