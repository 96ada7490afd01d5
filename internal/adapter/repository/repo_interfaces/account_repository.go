package repo_interfaces

import (
	"context"

	"github.com/bankdash/bank-system/internal/domain"
)

type AccountRepository interface {
	GetByUserID(ctx context.Context, userID string) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
}
