package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bankdash/bank-system/internal/domain"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	const query = `
SELECT id, user_id, image_path, created_at, updated_at
FROM profiles
WHERE user_id = $1`

	var profile domain.Profile
	if err := scanProfile(r.db.QueryRowContext(ctx, query, userID), &profile); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Profile{}, domain.ErrRecordNotFound
		}
		return domain.Profile{}, fmt.Errorf("get profile by user id: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepository) UpdateImagePath(ctx context.Context, userID string, imagePath string) (domain.Profile, error) {
	const query = `
UPDATE profiles
SET image_path = $2,
    updated_at = NOW()
WHERE user_id = $1
RETURNING id, user_id, image_path, created_at, updated_at`

	var profile domain.Profile
	if err := scanProfile(r.db.QueryRowContext(ctx, query, userID, imagePath), &profile); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Profile{}, domain.ErrRecordNotFound
		}
		return domain.Profile{}, fmt.Errorf("update profile image path: %w", err)
	}

	return profile, nil
}

func scanProfile(row rowScanner, profile *domain.Profile) error {
	var imagePath sql.NullString
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&imagePath,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return err
	}

	if imagePath.Valid {
		value := imagePath.String
		profile.ImagePath = &value
	}
	return nil
}
