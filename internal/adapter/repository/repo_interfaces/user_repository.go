package repo_interfaces

import (
	"context"

	"github.com/bankdash/bank-system/internal/domain"
)

type UserRepository interface {
	// CreateWithAccountAndProfile persists a new user together with its
	// account and profile as one atomic unit. No caller can observe a user
	// without both.
	CreateWithAccountAndProfile(ctx context.Context, user domain.User, account domain.Account) (domain.User, domain.Account, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	UpdateDetails(ctx context.Context, user domain.User) (domain.User, error)
}
