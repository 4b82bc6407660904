package handler

import (
	"bank-ledger/internal/adapter/http/dto"
	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"
	"bank-ledger/pkg/apperror"
	"bank-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoanHandler handles the loan lifecycle endpoints.
type LoanHandler struct {
	ledgerSvc    ports.LedgerService
	reportingSvc ports.ReportingService
	notifier     ports.Notifier
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(ledgerSvc ports.LedgerService, reportingSvc ports.ReportingService, notifier ports.Notifier) *LoanHandler {
	return &LoanHandler{ledgerSvc: ledgerSvc, reportingSvc: reportingSvc, notifier: notifier}
}

// RequestLoan handles POST /api/v1/loans.
func (h *LoanHandler) RequestLoan(c *gin.Context) {
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

	txn, err := h.ledgerSvc.RequestLoan(c.Request.Context(), accountID, req.Amount)
	observeLedgerOp("LOAN", err)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.notifier != nil {
		_ = h.notifier.Notify(c.Request.Context(), domain.NotificationEvent{
			EventType: domain.EventLoanRequest,
			AccountNo: accountNo,
			Amount:    txn.Amount,
		})
	}

	response.Created(c, toTransactionResponse(txn))
}

// PayLoan handles POST /api/v1/loans/:id/pay.
func (h *LoanHandler) PayLoan(c *gin.Context) {
	accountID, accountNo, ok := callerAccount(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid loan id"))
		return
	}

	txn, err := h.ledgerSvc.PayLoan(c.Request.Context(), accountID, loanID)
	observeLedgerOp("LOAN_PAID", err)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.notifier != nil {
		_ = h.notifier.Notify(c.Request.Context(), domain.NotificationEvent{
			EventType: domain.EventLoanPaid,
			AccountNo: accountNo,
			Amount:    txn.Amount,
		})
	}

	response.OK(c, toTransactionResponse(txn))
}

// ListLoans handles GET /api/v1/loans.
func (h *LoanHandler) ListLoans(c *gin.Context) {
	accountID, _, ok := callerAccount(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	loans, err := h.reportingSvc.ListLoans(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(loans))
	for i := range loans {
		items = append(items, toTransactionResponse(&loans[i]))
	}

	response.OK(c, items)
}
