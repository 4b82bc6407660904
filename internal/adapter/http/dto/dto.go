package dto

import (
	"github.com/shopspring/decimal"
)

// AmountRequest is the request body for deposits, withdrawals, and loan
// requests. Amounts are decimal strings; positivity is enforced by the
// ledger engine.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// TransferRequest is the request body for transfers. The payee is addressed
// by account number, not id.
type TransferRequest struct {
	ToAccountNo string          `json:"to_account_no" binding:"required,safe_id,max=50"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// CreateAccountRequest is the request body for account provisioning.
type CreateAccountRequest struct {
	AccountNo string `json:"account_no" binding:"required,safe_id,max=50"`
}

// SetBankruptRequest is the request body for flipping the bankrupt flag.
type SetBankruptRequest struct {
	Bankrupt bool `json:"bankrupt"`
}

// TransactionResponse is the response body for ledger rows.
type TransactionResponse struct {
	ID                   string  `json:"id"`
	AccountID            string  `json:"account_id"`
	Amount               string  `json:"amount"`
	BalanceAfter         string  `json:"balance_after"`
	TransactionType      string  `json:"transaction_type"`
	LoanStatus           *string `json:"loan_status,omitempty"`
	RelatedTransactionID *string `json:"related_transaction_id,omitempty"`
	CreatedAt            string  `json:"created_at"`
}

// TransferResponse carries both legs of a committed transfer.
type TransferResponse struct {
	OutTransaction TransactionResponse `json:"out_transaction"`
	InTransaction  TransactionResponse `json:"in_transaction"`
}

// ReportResponse is the response body for account reports.
type ReportResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        string                `json:"total"`
	Ranged       bool                  `json:"ranged"`
}

// AccountResponse is the response body for account queries.
type AccountResponse struct {
	ID         string `json:"id"`
	AccountNo  string `json:"account_no"`
	Balance    string `json:"balance"`
	IsBankrupt bool   `json:"is_bankrupt"`
	CreatedAt  string `json:"created_at"`
}
