package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeWithdraw TransactionType = "withdraw"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Transaction is an immutable record of one monetary event. Rows are only
// ever inserted; the timestamp is assigned by the store at insert time.
type Transaction struct {
	ID          string
	UserID      string
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}

// TransactionFilter narrows a history listing. Nil fields mean "no filter".
// StartDate and EndDate are inclusive calendar dates.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      *TransactionType
	Limit     int
}
