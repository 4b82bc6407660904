package handler

import (
	"context"
	"errors"
	"time"

	"bank-ledger/internal/adapter/http/dto"
	"bank-ledger/internal/adapter/http/middleware"
	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"
	"bank-ledger/internal/metrics"
	"bank-ledger/pkg/apperror"
	"bank-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler handles the balance-affecting endpoints.
type LedgerHandler struct {
	ledgerSvc ports.LedgerService
	notifier  ports.Notifier
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerSvc ports.LedgerService, notifier ports.Notifier) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc, notifier: notifier}
}

// Deposit handles POST /api/v1/accounts/me/deposits.
func (h *LedgerHandler) Deposit(c *gin.Context) {
	accountID, accountNo, ok := callerAccount(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	txn, err := h.ledgerSvc.Deposit(c.Request.Context(), accountID, req.Amount)
	observeLedgerOp("DEPOSIT", err)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.notify(c.Request.Context(), domain.EventDeposit, accountNo, txn)

	response.Created(c, toTransactionResponse(txn))
}

// Withdraw handles POST /api/v1/accounts/me/withdrawals.
func (h *LedgerHandler) Withdraw(c *gin.Context) {
	accountID, accountNo, ok := callerAccount(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	txn, err := h.ledgerSvc.Withdraw(c.Request.Context(), accountID, req.Amount)
	observeLedgerOp("WITHDRAWAL", err)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.notify(c.Request.Context(), domain.EventWithdrawal, accountNo, txn)

	response.Created(c, toTransactionResponse(txn))
}

// Transfer handles POST /api/v1/transfers.
func (h *LedgerHandler) Transfer(c *gin.Context) {
	accountID, accountNo, ok := callerAccount(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.ledgerSvc.Transfer(c.Request.Context(), accountID, req.ToAccountNo, req.Amount)
	observeLedgerOp("TRANSFER", err)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.notify(c.Request.Context(), domain.EventTransfer, accountNo, result.OutTransaction)

	response.Created(c, dto.TransferResponse{
		OutTransaction: toTransactionResponse(result.OutTransaction),
		InTransaction:  toTransactionResponse(result.InTransaction),
	})
}

// notify hands the committed transaction to the notification collaborator.
// Best effort; the response to the caller does not depend on it.
func (h *LedgerHandler) notify(ctx context.Context, eventType domain.NotificationEventType, accountNo string, txn *domain.Transaction) {
	if h.notifier == nil {
		return
	}
	_ = h.notifier.Notify(ctx, domain.NotificationEvent{
		EventType: eventType,
		AccountNo: accountNo,
		Amount:    txn.Amount,
	})
}

// observeLedgerOp records the operation counters for one engine call.
func observeLedgerOp(opType string, err error) {
	if err == nil {
		metrics.LedgerOperationsTotal.WithLabelValues(opType).Inc()
		return
	}
	code := "SYS_001"
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
	}
	metrics.LedgerOperationsFailed.WithLabelValues(opType, code).Inc()
}

// callerAccount extracts the authenticated account from the request context.
func callerAccount(c *gin.Context) (uuid.UUID, string, bool) {
	rawID, ok := c.Get(middleware.CtxAccountID)
	if !ok {
		return uuid.Nil, "", false
	}
	accountID, ok := rawID.(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	accountNo := c.GetString(middleware.CtxAccountNo)
	return accountID, accountNo, true
}

// toTransactionResponse converts domain.Transaction to DTO.
func toTransactionResponse(txn *domain.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:              txn.ID.String(),
		AccountID:       txn.AccountID.String(),
		Amount:          txn.Amount.String(),
		BalanceAfter:    txn.BalanceAfter.String(),
		TransactionType: string(txn.TransactionType),
		CreatedAt:       txn.CreatedAt.Format(time.RFC3339),
	}
	if txn.LoanStatus != nil {
		s := string(*txn.LoanStatus)
		resp.LoanStatus = &s
	}
	if txn.RelatedTransactionID != nil {
		s := txn.RelatedTransactionID.String()
		resp.RelatedTransactionID = &s
	}
	return resp
}
