package domain

import (
	"github.com/shopspring/decimal"
)

// NotificationEventType identifies the ledger operation a notification is for.
type NotificationEventType string

const (
	EventDeposit      NotificationEventType = "DEPOSIT"
	EventWithdrawal   NotificationEventType = "WITHDRAWAL"
	EventLoanRequest  NotificationEventType = "LOAN_REQUEST"
	EventLoanApproved NotificationEventType = "LOAN_APPROVED"
	EventLoanPaid     NotificationEventType = "LOAN_PAID"
	EventTransfer     NotificationEventType = "TRANSFER"
)

// NotificationEvent is handed to the external notification collaborator after
// a ledger mutation has committed. Delivery is fire-and-forget.
type NotificationEvent struct {
	EventType NotificationEventType `json:"event_type"`
	AccountNo string                `json:"account_no"`
	Amount    decimal.Decimal       `json:"amount"`
}
