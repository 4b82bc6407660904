package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory Account Repo ---

type inMemoryAccountRepo struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account
}

func newInMemoryAccountRepo() *inMemoryAccountRepo {
	return &inMemoryAccountRepo{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (r *inMemoryAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.AccountNo == account.AccountNo {
			return fmt.Errorf("account number already exists")
		}
	}
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *inMemoryAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryAccountRepo) GetByAccountNo(ctx context.Context, accountNo string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.AccountNo == accountNo {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryAccountRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	// Row locks are carried by the serializing transactor in this package.
	return r.GetByID(ctx, id)
}

func (r *inMemoryAccountRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("account not found")
	}
	a.Balance = balance
	return nil
}

func (r *inMemoryAccountRepo) SetBankrupt(ctx context.Context, id uuid.UUID, bankrupt bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("account not found")
	}
	a.IsBankrupt = bankrupt
	return nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]*domain.Transaction
	order        []uuid.UUID
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{transactions: make(map[uuid.UUID]*domain.Transaction)}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *txn
	r.transactions[txn.ID] = &cp
	r.order = append(r.order, txn.ID)
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTransactionRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryTransactionRepo) ApproveLoan(ctx context.Context, tx pgx.Tx, id uuid.UUID, balanceAfter decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok {
		return fmt.Errorf("loan not found")
	}
	status := domain.LoanStatusApproved
	t.LoanStatus = &status
	t.BalanceAfter = balanceAfter
	return nil
}

func (r *inMemoryTransactionRepo) MarkLoanRepaid(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok {
		return fmt.Errorf("loan not found")
	}
	status := domain.LoanStatusRepaid
	t.LoanStatus = &status
	return nil
}

func (r *inMemoryTransactionRepo) CountApprovedLoans(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, t := range r.transactions {
		if t.AccountID == accountID && t.IsApprovedLoan() {
			count++
		}
	}
	return count, nil
}

func (r *inMemoryTransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []domain.Transaction{}
	for _, id := range r.order {
		t := r.transactions[id]
		if t.AccountID != params.AccountID {
			continue
		}
		if params.From != nil && t.CreatedAt.Before(*params.From) {
			continue
		}
		if params.To != nil && t.CreatedAt.After(*params.To) {
			continue
		}
		result = append(result, *t)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *inMemoryTransactionRepo) ListLoans(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []domain.Transaction{}
	for _, id := range r.order {
		t := r.transactions[id]
		if t.AccountID == accountID && t.IsLoan() {
			result = append(result, *t)
		}
	}
	return result, nil
}

// --- Serializing Transactor ---

// serialTransactor gives the in-memory stack the same isolation the postgres
// transactor gets from SELECT ... FOR UPDATE: a global mutex is held from
// Begin until Commit or Rollback, so engine operations never interleave.
// Coarser than per-account row locks, but the observable guarantee is the
// same and it keeps the concurrency tests deterministic.
type serialTransactor struct {
	mu sync.Mutex
}

func newSerialTransactor() *serialTransactor {
	return &serialTransactor{}
}

func (t *serialTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &serialTx{release: t.mu.Unlock}, nil
}

// serialTx is a pgx.Tx that only tracks completion; the in-memory repos
// apply writes immediately, so Commit has nothing to flush and Rollback
// cannot undo (rolled-back paths in these tests never write).
type serialTx struct {
	release func()
	done    bool
}

func (t *serialTx) finish() {
	if t.done {
		return
	}
	t.done = true
	t.release()
}

func (t *serialTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *serialTx) Commit(ctx context.Context) error          { t.finish(); return nil }
func (t *serialTx) Rollback(ctx context.Context) error        { t.finish(); return nil }
func (t *serialTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *serialTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *serialTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *serialTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *serialTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *serialTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *serialTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *serialTx) Conn() *pgx.Conn { return nil }
