package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bankdash/bank-system/internal/domain"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (domain.Account, error) {
	const query = `
SELECT id, user_id, account_number, balance, created_at, updated_at
FROM accounts
WHERE user_id = $1`

	var account domain.Account
	if err := scanAccount(r.db.QueryRowContext(ctx, query, userID), &account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("get account by user id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	const query = `
SELECT id, user_id, account_number, balance, created_at, updated_at
FROM accounts
WHERE account_number = $1`

	var account domain.Account
	if err := scanAccount(r.db.QueryRowContext(ctx, query, accountNumber), &account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("get account by account number: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	const query = `SELECT COUNT(1) FROM accounts WHERE account_number = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, accountNumber).Scan(&count); err != nil {
		return false, fmt.Errorf("check account number existence: %w", err)
	}

	return count > 0, nil
}

func scanAccount(row rowScanner, account *domain.Account) error {
	return row.Scan(
		&account.ID,
		&account.UserID,
		&account.AccountNumber,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
}
