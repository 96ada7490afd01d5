package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/bankdash/bank-system/internal/adapter/repository/repo_interfaces"
)

// 12-digit account numbers: uniform over [10^11, 10^12 - 1].
const (
	accountNumberMin  int64 = 100_000_000_000
	accountNumberSpan int64 = 900_000_000_000
)

// AccountNumberGenerator draws random 12-digit numbers and re-draws on
// collision with an already-assigned number. The collision probability is
// negligible at this space size, so the loop is unbounded; the storage
// UNIQUE constraint is the final arbiter for the check/insert race.
type AccountNumberGenerator struct {
	accountRepo repo_interfaces.AccountRepository
	randInt     func(n int64) int64
}

func NewAccountNumberGenerator(accountRepo repo_interfaces.AccountRepository) *AccountNumberGenerator {
	return &AccountNumberGenerator{
		accountRepo: accountRepo,
		randInt:     rand.Int64N,
	}
}

// NewAccountNumberGeneratorWithRand injects the random source, for tests
// that need deterministic draws.
func NewAccountNumberGeneratorWithRand(accountRepo repo_interfaces.AccountRepository, randInt func(n int64) int64) *AccountNumberGenerator {
	return &AccountNumberGenerator{
		accountRepo: accountRepo,
		randInt:     randInt,
	}
}

func (g *AccountNumberGenerator) Next(ctx context.Context) (string, error) {
	for {
		number := strconv.FormatInt(accountNumberMin+g.randInt(accountNumberSpan), 10)

		taken, err := g.accountRepo.ExistsByAccountNumber(ctx, number)
		if err != nil {
			return "", fmt.Errorf("check account number uniqueness: %w", err)
		}
		if !taken {
			return number, nil
		}
	}
}
