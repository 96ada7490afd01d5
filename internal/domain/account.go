package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a user's single money-holding record. The account number is
// assigned once at creation and never changes; the balance is mutated only
// by ledger operations and can never go below zero.
type Account struct {
	ID            string
	UserID        string
	AccountNumber string
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
