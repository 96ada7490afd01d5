package repo_interfaces

import (
	"context"

	"github.com/bankdash/bank-system/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	// ListByUser returns the user's transactions newest-first, narrowed by
	// the filter.
	ListByUser(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
	// ListByUserAscending returns the full history oldest-first, for
	// statement rendering.
	ListByUserAscending(ctx context.Context, userID string) ([]domain.Transaction, error)
	GetByIDForUser(ctx context.Context, id string, userID string) (domain.Transaction, error)
	SumByType(ctx context.Context, userID string, txType domain.TransactionType) (decimal.Decimal, error)
}
