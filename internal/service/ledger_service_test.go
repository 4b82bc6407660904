package service

import (
	"context"
	"testing"

	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports/mocks"
	"bank-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type ledgerTestDeps struct {
	svc         *LedgerServiceImpl
	accountRepo *mocks.MockAccountRepository
	txRepo      *mocks.MockTransactionRepository
	transactor  *mocks.MockDBTransactor
	ctrl        *gomock.Controller
}

func setupLedgerService(t *testing.T) *ledgerTestDeps {
	return setupLedgerServiceWithCap(t, 3)
}

func setupLedgerServiceWithCap(t *testing.T, approvedCap int64) *ledgerTestDeps {
	ctrl := gomock.NewController(t)
	d := &ledgerTestDeps{
		accountRepo: mocks.NewMockAccountRepository(ctrl),
		txRepo:      mocks.NewMockTransactionRepository(ctrl),
		transactor:  mocks.NewMockDBTransactor(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewLedgerService(
		d.accountRepo, d.txRepo,
		NewLoanPolicy(d.txRepo, approvedCap),
		d.transactor, zerolog.Nop(),
	)
	return d
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ==================== Deposit Tests ====================

func TestLedgerService_Deposit_Success(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, accountID).Return(&domain.Account{
		ID:      accountID,
		Balance: dec("1000"),
	}, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, accountID, dec("1250")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	txn, err := d.svc.Deposit(ctx, accountID, dec("250"))
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, domain.TransactionTypeDeposit, txn.TransactionType)
	assert.True(t, txn.Amount.Equal(dec("250")))
	assert.True(t, txn.BalanceAfter.Equal(dec("1250")))
	assert.Equal(t, accountID, txn.AccountID)
}

func TestLedgerService_Deposit_InvalidAmount(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	for _, amount := range []decimal.Decimal{dec("0"), dec("-10")} {
		txn, err := d.svc.Deposit(context.Background(), uuid.New(), amount)
		assert.Nil(t, txn)
		assertAppError(t, err, "LED_001")
	}
}

func TestLedgerService_Deposit_AccountNotFound(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, accountID).Return(nil, nil)

	txn, err := d.svc.Deposit(ctx, accountID, dec("100"))
	assert.Nil(t, txn)
	assertAppError(t, err, "LED_004")
}

func TestLedgerService_Deposit_BankruptAccountAccepted(t *testing.T) {
	// The bankrupt flag blocks withdrawals only; a bankrupt account can still
	// receive deposits.
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, accountID).Return(&domain.Account{
		ID:         accountID,
		Balance:    dec("0"),
		IsBankrupt: true,
	}, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, accountID, dec("100")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	txn, err := d.svc.Deposit(ctx, accountID, dec("100"))
	require.NoError(t, err)
	assert.True(t, txn.BalanceAfter.Equal(dec("100")))
}

// ==================== Withdraw Tests ====================

func TestLedgerService_Withdraw_Success(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, accountID).Return(&domain.Account{
		ID:      accountID,
		Balance: dec("1000"),
	}, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, accountID, dec("800")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	txn, err := d.svc.Withdraw(ctx, accountID, dec("200"))
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeWithdrawal, txn.TransactionType)
	assert.True(t, txn.BalanceAfter.Equal(dec("800")))
}

func TestLedgerService_Withdraw_ExactBalance(t *testing.T) {
	// Withdrawing the entire balance is allowed; the floor is zero, not above.
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, accountID).Return(&domain.Account{
		ID:      accountID,
		Balance: dec("500"),
	}, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, accountID, dec("0")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	txn, err := d.svc.Withdraw(ctx, accountID, dec("500"))
	require.NoError(t, err)
	assert.True(t, txn.BalanceAfter.IsZero())
}

func TestLedgerService_Withdraw_InsufficientFunds(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, accountID).Return(&domain.Account{
		ID:      accountID,
		Balance: dec("100"),
	}, nil)

	txn, err := d.svc.Withdraw(ctx, accountID, dec("100.01"))
	assert.Nil(t, txn)
	assertAppError(t, err, "LED_002")
}

func TestLedgerService_Withdraw_Bankrupt(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, accountID).Return(&domain.Account{
		ID:         accountID,
		Balance:    dec("1000"),
		IsBankrupt: true,
	}, nil)

	txn, err := d.svc.Withdraw(ctx, accountID, dec("10"))
	assert.Nil(t, txn)
	assertAppError(t, err, "LED_003")
}

func TestLedgerService_Withdraw_InvalidAmount(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	txn, err := d.svc.Withdraw(context.Background(), uuid.New(), dec("-5"))
	assert.Nil(t, txn)
	assertAppError(t, err, "LED_001")
}

// ==================== RequestLoan Tests ====================

func TestLedgerService_RequestLoan_Success(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, accountID).Return(&domain.Account{
		ID:      accountID,
		Balance: dec("1000"),
	}, nil)
	d.txRepo.EXPECT().CountApprovedLoans(ctx, tx, accountID).Return(int64(2), nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	txn, err := d.svc.RequestLoan(ctx, accountID, dec("5000"))
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeLoan, txn.TransactionType)
	require.NotNil(t, txn.LoanStatus)
	assert.Equal(t, domain.LoanStatusRequested, *txn.LoanStatus)
	// No funds move on request; the snapshot is the balance at request time.
	assert.True(t, txn.BalanceAfter.Equal(dec("1000")))
}

func TestLedgerService_RequestLoan_LimitReached(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, accountID).Return(&domain.Account{
		ID: accountID,
	}, nil)
	d.txRepo.EXPECT().CountApprovedLoans(ctx, tx, accountID).Return(int64(3), nil)

	txn, err := d.svc.RequestLoan(ctx, accountID, dec("100"))
	assert.Nil(t, txn)
	assertAppError(t, err, "LOAN_001")
}

func TestLedgerService_RequestLoan_ConfigurableCap(t *testing.T) {
	d := setupLedgerServiceWithCap(t, 5)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, accountID).Return(&domain.Account{
		ID: accountID,
	}, nil)
	d.txRepo.EXPECT().CountApprovedLoans(ctx, tx, accountID).Return(int64(4), nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	_, err := d.svc.RequestLoan(ctx, accountID, dec("100"))
	require.NoError(t, err)
}

// ==================== ApproveLoan Tests ====================

func TestLedgerService_ApproveLoan_Success(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	loanID := uuid.New()
	tx := &mockTx{}
	requested := domain.LoanStatusRequested

	pending := &domain.Transaction{
		ID:              loanID,
		AccountID:       accountID,
		Amount:          dec("5000"),
		BalanceAfter:    dec("1000"),
		TransactionType: domain.TransactionTypeLoan,
		LoanStatus:      &requested,
	}

	d.txRepo.EXPECT().GetByID(ctx, loanID).Return(pending, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, accountID).Return(&domain.Account{
		ID:      accountID,
		Balance: dec("1000"),
	}, nil)
	d.txRepo.EXPECT().GetByIDForUpdate(ctx, tx, loanID).Return(pending, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, accountID, dec("6000")).Return(nil)
	d.txRepo.EXPECT().ApproveLoan(ctx, tx, loanID, dec("6000")).Return(nil)

	txn, err := d.svc.ApproveLoan(ctx, loanID)
	require.NoError(t, err)
	require.NotNil(t, txn.LoanStatus)
	assert.Equal(t, domain.LoanStatusApproved, *txn.LoanStatus)
	assert.True(t, txn.BalanceAfter.Equal(dec("6000")))
}

func TestLedgerService_ApproveLoan_NotALoan(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txnID := uuid.New()

	d.txRepo.EXPECT().GetByID(ctx, txnID).Return(&domain.Transaction{
		ID:              txnID,
		TransactionType: domain.TransactionTypeDeposit,
	}, nil)

	txn, err := d.svc.ApproveLoan(ctx, txnID)
	assert.Nil(t, txn)
	assertAppError(t, err, "LED_005")
}

func TestLedgerService_ApproveLoan_AlreadyApproved(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	loanID := uuid.New()
	tx := &mockTx{}
	requested := domain.LoanStatusRequested
	approved := domain.LoanStatusApproved

	d.txRepo.EXPECT().GetByID(ctx, loanID).Return(&domain.Transaction{
		ID:              loanID,
		AccountID:       accountID,
		TransactionType: domain.TransactionTypeLoan,
		LoanStatus:      &requested,
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, accountID).Return(&domain.Account{
		ID: accountID,
	}, nil)
	// A concurrent approval won the race; the re-read under the lock sees
	// APPROVED and the second disbursement is refused.
	d.txRepo.EXPECT().GetByIDForUpdate(ctx, tx, loanID).Return(&domain.Transaction{
		ID:              loanID,
		AccountID:       accountID,
		TransactionType: domain.TransactionTypeLoan,
		LoanStatus:      &approved,
	}, nil)

	txn, err := d.svc.ApproveLoan(ctx, loanID)
	assert.Nil(t, txn)
	assertAppError(t, err, "LED_005")
}

func TestLedgerService_ApproveLoan_NotFound(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	loanID := uuid.New()

	d.txRepo.EXPECT().GetByID(ctx, loanID).Return(nil, nil)

	txn, err := d.svc.ApproveLoan(ctx, loanID)
	assert.Nil(t, txn)
	assertAppError(t, err, "LED_005")
}

// ==================== PayLoan Tests ====================

func TestLedgerService_PayLoan_Success(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	loanID := uuid.New()
	tx := &mockTx{}
	approved := domain.LoanStatusApproved

	loan := &domain.Transaction{
		ID:              loanID,
		AccountID:       accountID,
		Amount:          dec("5000"),
		TransactionType: domain.TransactionTypeLoan,
		LoanStatus:      &approved,
	}

	d.txRepo.EXPECT().GetByID(ctx, loanID).Return(loan, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, accountID).Return(&domain.Account{
		ID:      accountID,
		Balance: dec("6000"),
	}, nil)
	d.txRepo.EXPECT().GetByIDForUpdate(ctx, tx, loanID).Return(loan, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, accountID, dec("1000")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.txRepo.EXPECT().MarkLoanRepaid(ctx, tx, loanID).Return(nil)

	txn, err := d.svc.PayLoan(ctx, accountID, loanID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeLoanPaid, txn.TransactionType)
	assert.True(t, txn.BalanceAfter.Equal(dec("1000")))
	require.NotNil(t, txn.RelatedTransactionID)
	assert.Equal(t, loanID, *txn.RelatedTransactionID)
}

func TestLedgerService_PayLoan_NotApproved(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	loanID := uuid.New()
	tx := &mockTx{}
	requested := domain.LoanStatusRequested

	loan := &domain.Transaction{
		ID:              loanID,
		AccountID:       accountID,
		Amount:          dec("5000"),
		TransactionType: domain.TransactionTypeLoan,
		LoanStatus:      &requested,
	}

	d.txRepo.EXPECT().GetByID(ctx, loanID).Return(loan, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, accountID).Return(&domain.Account{
		ID:      accountID,
		Balance: dec("10000"),
	}, nil)
	d.txRepo.EXPECT().GetByIDForUpdate(ctx, tx, loanID).Return(loan, nil)

	txn, err := d.svc.PayLoan(ctx, accountID, loanID)
	assert.Nil(t, txn)
	assertAppError(t, err, "LOAN_002")
}

func TestLedgerService_PayLoan_BalanceMustExceedLoan(t *testing.T) {
	// Equality is not enough: a 5000 loan cannot be repaid from exactly 5000.
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	loanID := uuid.New()
	tx := &mockTx{}
	approved := domain.LoanStatusApproved

	loan := &domain.Transaction{
		ID:              loanID,
		AccountID:       accountID,
		Amount:          dec("5000"),
		TransactionType: domain.TransactionTypeLoan,
		LoanStatus:      &approved,
	}

	d.txRepo.EXPECT().GetByID(ctx, loanID).Return(loan, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, accountID).Return(&domain.Account{
		ID:      accountID,
		Balance: dec("5000"),
	}, nil)
	d.txRepo.EXPECT().GetByIDForUpdate(ctx, tx, loanID).Return(loan, nil)

	txn, err := d.svc.PayLoan(ctx, accountID, loanID)
	assert.Nil(t, txn)
	assertAppError(t, err, "LED_002")
}

func TestLedgerService_PayLoan_WrongAccount(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	loanID := uuid.New()
	approved := domain.LoanStatusApproved

	d.txRepo.EXPECT().GetByID(ctx, loanID).Return(&domain.Transaction{
		ID:              loanID,
		AccountID:       uuid.New(), // someone else's loan
		TransactionType: domain.TransactionTypeLoan,
		LoanStatus:      &approved,
	}, nil)

	txn, err := d.svc.PayLoan(ctx, uuid.New(), loanID)
	assert.Nil(t, txn)
	assertAppError(t, err, "LED_005")
}

// ==================== Transfer Tests ====================

func TestLedgerService_Transfer_Success(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	fromID := uuid.New()
	toID := uuid.New()
	tx := &mockTx{}

	d.accountRepo.EXPECT().GetByAccountNo(ctx, "ACC-TARGET").Return(&domain.Account{
		ID:        toID,
		AccountNo: "ACC-TARGET",
		Balance:   dec("100"),
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	// Both rows are locked; lock order is by id, so expectation order cannot
	// assume payer-first.
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, fromID).Return(&domain.Account{
		ID:      fromID,
		Balance: dec("1000"),
	}, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, toID).Return(&domain.Account{
		ID:      toID,
		Balance: dec("100"),
	}, nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, fromID, dec("700")).Return(nil)
	d.accountRepo.EXPECT().UpdateBalance(ctx, tx, toID, dec("400")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil).Times(2)

	result, err := d.svc.Transfer(ctx, fromID, "ACC-TARGET", dec("300"))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.TransactionTypeTransferOut, result.OutTransaction.TransactionType)
	assert.Equal(t, domain.TransactionTypeTransferIn, result.InTransaction.TransactionType)
	assert.True(t, result.OutTransaction.BalanceAfter.Equal(dec("700")))
	assert.True(t, result.InTransaction.BalanceAfter.Equal(dec("400")))
	assert.True(t, result.OutTransaction.Amount.Equal(result.InTransaction.Amount))
	assert.Nil(t, result.OutTransaction.RelatedTransactionID)
	assert.Nil(t, result.InTransaction.RelatedTransactionID)
}

func TestLedgerService_Transfer_UnknownTarget(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.accountRepo.EXPECT().GetByAccountNo(ctx, "ACC-MISSING").Return(nil, nil)

	result, err := d.svc.Transfer(ctx, uuid.New(), "ACC-MISSING", dec("50"))
	assert.Nil(t, result)
	assertAppError(t, err, "LED_004")
}

func TestLedgerService_Transfer_InsufficientFunds(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	fromID := uuid.New()
	toID := uuid.New()
	tx := &mockTx{}

	d.accountRepo.EXPECT().GetByAccountNo(ctx, "ACC-TARGET").Return(&domain.Account{
		ID: toID,
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, fromID).Return(&domain.Account{
		ID:      fromID,
		Balance: dec("10"),
	}, nil)
	d.accountRepo.EXPECT().GetByIDForUpdate(ctx, tx, toID).Return(&domain.Account{
		ID:      toID,
		Balance: dec("0"),
	}, nil)

	result, err := d.svc.Transfer(ctx, fromID, "ACC-TARGET", dec("50"))
	assert.Nil(t, result)
	assertAppError(t, err, "LED_002")
}

func TestLedgerService_Transfer_SelfTransferRejected(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()

	d.accountRepo.EXPECT().GetByAccountNo(ctx, "ACC-SELF").Return(&domain.Account{
		ID:        accountID,
		AccountNo: "ACC-SELF",
	}, nil)

	result, err := d.svc.Transfer(ctx, accountID, "ACC-SELF", dec("50"))
	assert.Nil(t, result)
	assertAppError(t, err, "LED_001")
}

func TestLedgerService_Transfer_InvalidAmount(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	result, err := d.svc.Transfer(context.Background(), uuid.New(), "ACC-X", dec("0"))
	assert.Nil(t, result)
	assertAppError(t, err, "LED_001")
}

// ==================== Helper ====================

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}
