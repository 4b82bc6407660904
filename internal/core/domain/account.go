package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account holds the identity and current balance of one ledger account.
// Accounts are created by the external identity collaborator; the core only
// mutates the balance and reads the bankrupt flag.
type Account struct {
	ID         uuid.UUID       `json:"id"`
	AccountNo  string          `json:"account_no"`
	Balance    decimal.Decimal `json:"balance"`
	IsBankrupt bool            `json:"is_bankrupt"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CanWithdraw reports whether the account may be debited by amount without
// going negative. Bankrupt accounts can never be debited.
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	return !a.IsBankrupt && amount.LessThanOrEqual(a.Balance)
}
