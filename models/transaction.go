package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionCreditPurchase TransactionType = "credit_purchase"
	TransactionSubscription   TransactionType = "subscription"
	TransactionCreditEarned   TransactionType = "credit_earned"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is an append-only ledger entry. UserID is the account the money
// moves for: the buyer on purchases, the partner on earnings.
type Transaction struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	UserID     uint              `json:"userId" gorm:"not null;index"`
	UserName   string            `json:"userName" gorm:"not null"`
	UserMobile string            `json:"userMobile" gorm:"not null"`
	Amount     decimal.Decimal   `json:"amount" gorm:"type:numeric(14,2);not null"`
	Type       TransactionType   `json:"type" gorm:"not null;index"`
	Status     TransactionStatus `json:"status" gorm:"not null;default:'pending';index"`
	Credits    int               `json:"credits" gorm:"not null"`
	CreatedAt  time.Time         `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

func init() {
	// Amounts go to clients as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
