package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"
	"bank-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerServiceImpl implements ports.LedgerService. Every operation runs
// inside one database transaction and takes the account row lock before
// reading the balance, so concurrent operations against the same account
// serialize at the store. Transfers lock both rows in ascending id order;
// two opposite-direction transfers can therefore never deadlock.
type LedgerServiceImpl struct {
	accountRepo ports.AccountRepository
	txRepo      ports.TransactionRepository
	loanPolicy  *LoanPolicy
	transactor  ports.DBTransactor
	log         zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	accountRepo ports.AccountRepository,
	txRepo ports.TransactionRepository,
	loanPolicy *LoanPolicy,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		loanPolicy:  loanPolicy,
		transactor:  transactor,
		log:         log,
	}
}

// Deposit credits the account and appends a DEPOSIT row.
func (s *LedgerServiceImpl) Deposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, accountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	newBalance := account.Balance.Add(amount)

	txn := &domain.Transaction{
		ID:              uuid.New(),
		AccountID:       account.ID,
		Amount:          amount,
		BalanceAfter:    newBalance,
		TransactionType: domain.TransactionTypeDeposit,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.applyAndAppend(ctx, dbTx, account.ID, newBalance, txn); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("account_id", account.ID.String()).
		Str("amount", amount.String()).
		Msg("deposit applied")

	return txn, nil
}

// Withdraw debits the account and appends a WITHDRAWAL row. Bankrupt
// accounts are rejected, and the balance can never go negative: a withdrawal
// larger than the balance fails before any mutation.
func (s *LedgerServiceImpl) Withdraw(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, accountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}
	if account.IsBankrupt {
		return nil, apperror.ErrAccountBankrupt()
	}
	if amount.GreaterThan(account.Balance) {
		return nil, apperror.ErrInsufficientFunds()
	}

	newBalance := account.Balance.Sub(amount)

	txn := &domain.Transaction{
		ID:              uuid.New(),
		AccountID:       account.ID,
		Amount:          amount,
		BalanceAfter:    newBalance,
		TransactionType: domain.TransactionTypeWithdrawal,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.applyAndAppend(ctx, dbTx, account.ID, newBalance, txn); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("account_id", account.ID.String()).
		Str("amount", amount.String()).
		Msg("withdrawal applied")

	return txn, nil
}

// RequestLoan appends a REQUESTED loan row. No funds move; the balance
// snapshot records the balance at request time. The cap check runs under the
// account row lock so concurrent requests cannot overshoot the cap.
func (s *LedgerServiceImpl) RequestLoan(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, accountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	eligible, err := s.loanPolicy.CheckLoanEligible(ctx, dbTx, account.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("loan eligibility: %w", err))
	}
	if !eligible {
		return nil, apperror.ErrLoanLimitExceeded()
	}

	status := domain.LoanStatusRequested
	txn := &domain.Transaction{
		ID:              uuid.New(),
		AccountID:       account.ID,
		Amount:          amount,
		BalanceAfter:    account.Balance,
		TransactionType: domain.TransactionTypeLoan,
		LoanStatus:      &status,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create loan request: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("account_id", account.ID.String()).
		Str("amount", amount.String()).
		Msg("loan requested")

	return txn, nil
}

// ApproveLoan disburses a pending loan: the loan row flips to APPROVED, the
// account is credited, and the row's balance snapshot is rewritten with the
// post-disbursement balance. Administrative path, not caller-facing.
func (s *LedgerServiceImpl) ApproveLoan(ctx context.Context, loanID uuid.UUID) (*domain.Transaction, error) {
	loan, err := s.txRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find loan: %w", err))
	}
	if loan == nil || !loan.IsLoan() {
		return nil, apperror.ErrNotFound("pending loan")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, loan.AccountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	// Re-read under the lock: a concurrent approval must not disburse twice.
	loan, err = s.txRepo.GetByIDForUpdate(ctx, dbTx, loanID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock loan: %w", err))
	}
	if loan == nil || loan.LoanStatus == nil || *loan.LoanStatus != domain.LoanStatusRequested {
		return nil, apperror.ErrNotFound("pending loan")
	}

	newBalance := account.Balance.Add(loan.Amount)

	if err := s.accountRepo.UpdateBalance(ctx, dbTx, account.ID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}
	if err := s.txRepo.ApproveLoan(ctx, dbTx, loan.ID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("approve loan: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	approved := domain.LoanStatusApproved
	loan.LoanStatus = &approved
	loan.BalanceAfter = newBalance

	s.log.Info().
		Str("tx_id", loan.ID.String()).
		Str("account_id", account.ID.String()).
		Str("amount", loan.Amount.String()).
		Msg("loan approved and disbursed")

	return loan, nil
}

// PayLoan repays an approved loan in full. The repayment is a new LOAN_PAID
// row referencing the loan; the loan row itself only changes status. The
// account must hold strictly more than the loan amount.
func (s *LedgerServiceImpl) PayLoan(ctx context.Context, accountID uuid.UUID, loanID uuid.UUID) (*domain.Transaction, error) {
	loan, err := s.txRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find loan: %w", err))
	}
	if loan == nil || !loan.IsLoan() || loan.AccountID != accountID {
		return nil, apperror.ErrNotFound("loan transaction")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, accountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	loan, err = s.txRepo.GetByIDForUpdate(ctx, dbTx, loanID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock loan: %w", err))
	}
	if loan == nil || !loan.IsApprovedLoan() {
		return nil, apperror.ErrLoanNotApproved()
	}

	// Strict boundary: the balance must exceed the loan amount, equality is
	// not enough.
	if loan.Amount.GreaterThanOrEqual(account.Balance) {
		return nil, apperror.ErrInsufficientFunds()
	}

	newBalance := account.Balance.Sub(loan.Amount)

	txn := &domain.Transaction{
		ID:                   uuid.New(),
		AccountID:            account.ID,
		Amount:               loan.Amount,
		BalanceAfter:         newBalance,
		TransactionType:      domain.TransactionTypeLoanPaid,
		RelatedTransactionID: &loan.ID,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.applyAndAppend(ctx, dbTx, account.ID, newBalance, txn); err != nil {
		return nil, err
	}
	if err := s.txRepo.MarkLoanRepaid(ctx, dbTx, loan.ID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("mark loan repaid: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("loan_id", loan.ID.String()).
		Str("amount", loan.Amount.String()).
		Msg("loan repaid")

	return txn, nil
}

// Transfer atomically moves funds between two accounts, appending one
// TRANSFER_OUT row on the payer and one TRANSFER_IN row on the payee. The
// two rows share the amount but carry no reference to each other.
func (s *LedgerServiceImpl) Transfer(ctx context.Context, fromAccountID uuid.UUID, toAccountNo string, amount decimal.Decimal) (*ports.TransferResult, error) {
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	// Resolve the payee outside the atomic unit; an unknown account number
	// fails before anything is locked.
	target, err := s.accountRepo.GetByAccountNo(ctx, toAccountNo)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("resolve target account: %w", err))
	}
	if target == nil {
		return nil, apperror.ErrAccountNotFound()
	}
	if target.ID == fromAccountID {
		return nil, apperror.Validation("cannot transfer to the same account")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	from, to, err := s.lockAccountPair(ctx, dbTx, fromAccountID, target.ID)
	if err != nil {
		return nil, err
	}

	if amount.GreaterThan(from.Balance) {
		return nil, apperror.ErrInsufficientFunds()
	}

	newFromBalance := from.Balance.Sub(amount)
	newToBalance := to.Balance.Add(amount)
	now := time.Now().UTC()

	outTxn := &domain.Transaction{
		ID:              uuid.New(),
		AccountID:       from.ID,
		Amount:          amount,
		BalanceAfter:    newFromBalance,
		TransactionType: domain.TransactionTypeTransferOut,
		CreatedAt:       now,
	}
	inTxn := &domain.Transaction{
		ID:              uuid.New(),
		AccountID:       to.ID,
		Amount:          amount,
		BalanceAfter:    newToBalance,
		TransactionType: domain.TransactionTypeTransferIn,
		CreatedAt:       now,
	}

	if err := s.applyAndAppend(ctx, dbTx, from.ID, newFromBalance, outTxn); err != nil {
		return nil, err
	}
	if err := s.applyAndAppend(ctx, dbTx, to.ID, newToBalance, inTxn); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("out_tx_id", outTxn.ID.String()).
		Str("in_tx_id", inTxn.ID.String()).
		Str("from", from.ID.String()).
		Str("to", to.ID.String()).
		Str("amount", amount.String()).
		Msg("transfer applied")

	return &ports.TransferResult{OutTransaction: outTxn, InTransaction: inTxn}, nil
}

// lockAccountPair locks both accounts of a transfer in ascending id order.
// The fixed order is what prevents deadlock between two concurrent
// opposite-direction transfers; the caller-driven payer-first order is unsafe.
func (s *LedgerServiceImpl) lockAccountPair(ctx context.Context, dbTx pgx.Tx, fromID, toID uuid.UUID) (from, to *domain.Account, err error) {
	first, second := fromID, toID
	if bytes.Compare(toID[:], fromID[:]) < 0 {
		first, second = toID, fromID
	}

	locked := make(map[uuid.UUID]*domain.Account, 2)
	for _, id := range []uuid.UUID{first, second} {
		account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, id)
		if err != nil {
			return nil, nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
		}
		if account == nil {
			return nil, nil, apperror.ErrAccountNotFound()
		}
		locked[id] = account
	}

	return locked[fromID], locked[toID], nil
}

// applyAndAppend writes the new balance and appends the ledger row inside the
// caller's transaction.
func (s *LedgerServiceImpl) applyAndAppend(ctx context.Context, dbTx pgx.Tx, accountID uuid.UUID, newBalance decimal.Decimal, txn *domain.Transaction) error {
	if err := s.accountRepo.UpdateBalance(ctx, dbTx, accountID, newBalance); err != nil {
		return apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}
	return nil
}
