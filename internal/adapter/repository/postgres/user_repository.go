package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bankdash/bank-system/internal/domain"
	"github.com/bankdash/bank-system/internal/logger"
)

type UserRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithAccountAndProfile inserts the user, its account, and its profile
// in one transaction. A username collision maps to ErrDuplicateUsername and
// an account-number collision to ErrAccountNumberTaken so the caller can
// regenerate the number and retry.
func (r *UserRepository) CreateWithAccountAndProfile(ctx context.Context, user domain.User, account domain.Account) (domain.User, domain.Account, error) {
	logger.Info("user repository create", logger.Fields{
		"username":      user.Username,
		"accountNumber": account.AccountNumber,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.User{}, domain.Account{}, fmt.Errorf("begin create user transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const userQuery = `
INSERT INTO users (
	username,
	email,
	first_name,
	last_name,
	password_hash
) VALUES ($1, $2, $3, $4, $5)
RETURNING id, username, email, first_name, last_name, password_hash, created_at, updated_at`

	var created domain.User
	if err = scanUser(tx.QueryRowContext(
		ctx,
		userQuery,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
	), &created); err != nil {
		err = translateUserInsertError(err)
		logger.Error("user repository create user failed", err, logger.Fields{
			"username": user.Username,
		})
		return domain.User{}, domain.Account{}, err
	}

	const accountQuery = `
INSERT INTO accounts (
	user_id,
	account_number,
	balance
) VALUES ($1, $2, $3)
RETURNING id, user_id, account_number, balance, created_at, updated_at`

	var createdAccount domain.Account
	if err = scanAccount(tx.QueryRowContext(
		ctx,
		accountQuery,
		created.ID,
		account.AccountNumber,
		account.Balance,
	), &createdAccount); err != nil {
		err = translateAccountInsertError(err)
		logger.Error("user repository create account failed", err, logger.Fields{
			"username":      user.Username,
			"accountNumber": account.AccountNumber,
		})
		return domain.User{}, domain.Account{}, err
	}

	const profileQuery = `INSERT INTO profiles (user_id) VALUES ($1)`
	if _, err = tx.ExecContext(ctx, profileQuery, created.ID); err != nil {
		err = fmt.Errorf("create profile: %w", err)
		logger.Error("user repository create profile failed", err, logger.Fields{
			"username": user.Username,
		})
		return domain.User{}, domain.Account{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.User{}, domain.Account{}, fmt.Errorf("commit create user transaction: %w", err)
	}

	logger.Info("user repository create success", logger.Fields{
		"userId":        created.ID,
		"accountNumber": createdAccount.AccountNumber,
	})

	return created, createdAccount, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
SELECT id, username, email, first_name, last_name, password_hash, created_at, updated_at
FROM users
WHERE id = $1`

	var user domain.User
	if err := scanUser(r.db.QueryRowContext(ctx, query, id), &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrRecordNotFound
		}
		return domain.User{}, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	const query = `
SELECT id, username, email, first_name, last_name, password_hash, created_at, updated_at
FROM users
WHERE username = $1`

	var user domain.User
	if err := scanUser(r.db.QueryRowContext(ctx, query, username), &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrRecordNotFound
		}
		return domain.User{}, fmt.Errorf("get user by username: %w", err)
	}

	return user, nil
}

func (r *UserRepository) UpdateDetails(ctx context.Context, user domain.User) (domain.User, error) {
	const query = `
UPDATE users
SET email = $2,
    first_name = $3,
    last_name = $4,
    updated_at = NOW()
WHERE id = $1
RETURNING id, username, email, first_name, last_name, password_hash, created_at, updated_at`

	var updated domain.User
	if err := scanUser(r.db.QueryRowContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
	), &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrRecordNotFound
		}
		return domain.User{}, fmt.Errorf("update user details: %w", err)
	}

	return updated, nil
}

func scanUser(row rowScanner, user *domain.User) error {
	return row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

func translateUserInsertError(err error) error {
	if isUniqueViolation(err) && strings.Contains(constraintName(err), "username") {
		return domain.ErrDuplicateUsername
	}
	return fmt.Errorf("create user: %w", err)
}

func translateAccountInsertError(err error) error {
	if isUniqueViolation(err) && strings.Contains(constraintName(err), "account_number") {
		return domain.ErrAccountNumberTaken
	}
	return fmt.Errorf("create account: %w", err)
}
