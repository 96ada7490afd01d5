package repo_interfaces

import (
	"context"

	"github.com/bankdash/bank-system/internal/domain"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (domain.Profile, error)
	UpdateImagePath(ctx context.Context, userID string, imagePath string) (domain.Profile, error)
}
