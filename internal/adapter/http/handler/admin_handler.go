package handler

import (
	"net/http"
	"time"

	"bank-ledger/internal/adapter/http/dto"
	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"
	"bank-ledger/pkg/apperror"
	"bank-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdminHandler handles the internal provisioning and approval endpoints.
// These routes are not exposed to account holders; they serve the operations
// side (account setup, bankruptcy flagging, loan approval).
type AdminHandler struct {
	accountRepo ports.AccountRepository
	ledgerSvc   ports.LedgerService
	notifier    ports.Notifier
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(accountRepo ports.AccountRepository, ledgerSvc ports.LedgerService, notifier ports.Notifier) *AdminHandler {
	return &AdminHandler{accountRepo: accountRepo, ledgerSvc: ledgerSvc, notifier: notifier}
}

// CreateAccount handles POST /internal/accounts.
func (h *AdminHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	existing, err := h.accountRepo.GetByAccountNo(c.Request.Context(), req.AccountNo)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if existing != nil {
		response.Error(c, apperror.Validation("account number already in use"))
		return
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uuid.New(),
		AccountNo: req.AccountNo,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.accountRepo.Create(c.Request.Context(), account); err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	response.Created(c, toAccountResponse(account))
}

// GetAccount handles GET /internal/accounts/:id.
func (h *AdminHandler) GetAccount(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid account id"))
		return
	}

	account, err := h.accountRepo.GetByID(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if account == nil {
		response.Error(c, apperror.ErrAccountNotFound())
		return
	}

	response.OK(c, toAccountResponse(account))
}

// SetBankrupt handles PUT /internal/accounts/:id/bankrupt.
func (h *AdminHandler) SetBankrupt(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid account id"))
		return
	}

	var req dto.SetBankruptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	account, err := h.accountRepo.GetByID(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if account == nil {
		response.Error(c, apperror.ErrAccountNotFound())
		return
	}

	if err := h.accountRepo.SetBankrupt(c.Request.Context(), accountID, req.Bankrupt); err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	c.Status(http.StatusNoContent)
}

// ApproveLoan handles POST /internal/loans/:id/approve.
func (h *AdminHandler) ApproveLoan(c *gin.Context) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid loan id"))
		return
	}

	txn, err := h.ledgerSvc.ApproveLoan(c.Request.Context(), loanID)
	observeLedgerOp("LOAN_APPROVED", err)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.notifier != nil {
		account, lookupErr := h.accountRepo.GetByID(c.Request.Context(), txn.AccountID)
		if lookupErr == nil && account != nil {
			_ = h.notifier.Notify(c.Request.Context(), domain.NotificationEvent{
				EventType: domain.EventLoanApproved,
				AccountNo: account.AccountNo,
				Amount:    txn.Amount,
			})
		}
	}

	response.OK(c, toTransactionResponse(txn))
}

// HealthCheck handles GET /health — deep health check verifying all dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}

// toAccountResponse converts domain.Account to DTO.
func toAccountResponse(account *domain.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:         account.ID.String(),
		AccountNo:  account.AccountNo,
		Balance:    account.Balance.String(),
		IsBankrupt: account.IsBankrupt,
		CreatedAt:  account.CreatedAt.Format(time.RFC3339),
	}
}
