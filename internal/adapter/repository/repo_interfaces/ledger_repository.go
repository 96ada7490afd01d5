package repo_interfaces

import (
	"context"

	"github.com/bankdash/bank-system/internal/domain"
	"github.com/shopspring/decimal"
)

// LedgerRepository performs the balance-mutating writes. Every method runs
// in a single storage transaction that re-reads the account row(s) under a
// write lock, re-validates against the fresh state, and inserts the
// transaction record(s), all of it committing together or not at all.
type LedgerRepository interface {
	Deposit(ctx context.Context, userID string, amount decimal.Decimal) (domain.Account, error)
	Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (domain.Account, error)
	Transfer(ctx context.Context, senderUserID string, receiverAccountNumber string, amount decimal.Decimal, reference string) (domain.Account, error)
}
