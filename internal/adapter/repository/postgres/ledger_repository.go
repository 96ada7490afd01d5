package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bankdash/bank-system/internal/domain"
	"github.com/bankdash/bank-system/internal/logger"
	"github.com/shopspring/decimal"
)

// LedgerRepository owns every balance write. Each operation is one database
// transaction: the account row is re-read under FOR UPDATE, the preconditions
// are re-checked against that fresh state, and the balance update plus the
// transaction insert(s) commit together or not at all.
type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (domain.Account, error) {
	logger.Info("ledger repository deposit", logger.Fields{
		"userId": userID,
		"amount": amount.StringFixed(2),
	})

	var account domain.Account
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		locked, err := lockAccountByUserID(ctx, tx, userID)
		if err != nil {
			return err
		}

		updated, err := applyBalanceDelta(ctx, tx, locked.ID, amount)
		if err != nil {
			return err
		}

		description := fmt.Sprintf("Deposited %s", amount.StringFixed(2))
		if err := insertTransaction(ctx, tx, userID, domain.TransactionTypeDeposit, amount, description); err != nil {
			return err
		}

		account = updated
		return nil
	})
	if err != nil {
		logger.Error("ledger repository deposit failed", err, logger.Fields{
			"userId": userID,
		})
		return domain.Account{}, err
	}

	return account, nil
}

func (r *LedgerRepository) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (domain.Account, error) {
	logger.Info("ledger repository withdraw", logger.Fields{
		"userId": userID,
		"amount": amount.StringFixed(2),
	})

	var account domain.Account
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		locked, err := lockAccountByUserID(ctx, tx, userID)
		if err != nil {
			return err
		}

		if locked.Balance.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}

		updated, err := applyBalanceDelta(ctx, tx, locked.ID, amount.Neg())
		if err != nil {
			return err
		}

		description := fmt.Sprintf("Withdrew %s", amount.StringFixed(2))
		if err := insertTransaction(ctx, tx, userID, domain.TransactionTypeWithdraw, amount, description); err != nil {
			return err
		}

		account = updated
		return nil
	})
	if err != nil {
		logger.Error("ledger repository withdraw failed", err, logger.Fields{
			"userId": userID,
		})
		return domain.Account{}, err
	}

	return account, nil
}

// Transfer moves funds between two accounts. Both rows are locked in
// account-number order so two opposing transfers cannot deadlock, and the
// two balance writes plus the two transaction inserts are one atomic unit.
func (r *LedgerRepository) Transfer(ctx context.Context, senderUserID string, receiverAccountNumber string, amount decimal.Decimal, reference string) (domain.Account, error) {
	logger.Info("ledger repository transfer", logger.Fields{
		"senderUserId":          senderUserID,
		"receiverAccountNumber": receiverAccountNumber,
		"amount":                amount.StringFixed(2),
		"reference":             reference,
	})

	var account domain.Account
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		senderNumber, err := accountNumberForUser(ctx, tx, senderUserID)
		if err != nil {
			return err
		}
		if senderNumber == receiverAccountNumber {
			return domain.ErrSelfTransfer
		}

		first, second := senderNumber, receiverAccountNumber
		if second < first {
			first, second = second, first
		}

		accounts := make(map[string]domain.Account, 2)
		for _, number := range []string{first, second} {
			locked, err := lockAccountByNumber(ctx, tx, number)
			if err != nil {
				return err
			}
			accounts[number] = locked
		}

		sender := accounts[senderNumber]
		receiver := accounts[receiverAccountNumber]

		if sender.Balance.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}

		updatedSender, err := applyBalanceDelta(ctx, tx, sender.ID, amount.Neg())
		if err != nil {
			return err
		}
		if _, err := applyBalanceDelta(ctx, tx, receiver.ID, amount); err != nil {
			return err
		}

		senderDescription := fmt.Sprintf("Transferred %s to account %s (ref %s)", amount.StringFixed(2), receiver.AccountNumber, reference)
		if err := insertTransaction(ctx, tx, sender.UserID, domain.TransactionTypeTransfer, amount, senderDescription); err != nil {
			return err
		}

		receiverDescription := fmt.Sprintf("Received %s from account %s (ref %s)", amount.StringFixed(2), sender.AccountNumber, reference)
		if err := insertTransaction(ctx, tx, receiver.UserID, domain.TransactionTypeDeposit, amount, receiverDescription); err != nil {
			return err
		}

		account = updatedSender
		return nil
	})
	if err != nil {
		logger.Error("ledger repository transfer failed", err, logger.Fields{
			"senderUserId": senderUserID,
			"reference":    reference,
		})
		return domain.Account{}, err
	}

	return account, nil
}

func (r *LedgerRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ledger transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return translateLedgerError(err)
	}

	if err := tx.Commit(); err != nil {
		return translateLedgerError(fmt.Errorf("commit ledger transaction: %w", err))
	}

	return nil
}

func lockAccountByUserID(ctx context.Context, tx *sql.Tx, userID string) (domain.Account, error) {
	const query = `
SELECT id, user_id, account_number, balance, created_at, updated_at
FROM accounts
WHERE user_id = $1
FOR UPDATE`

	var account domain.Account
	if err := scanAccount(tx.QueryRowContext(ctx, query, userID), &account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("lock account by user id: %w", err)
	}

	return account, nil
}

func lockAccountByNumber(ctx context.Context, tx *sql.Tx, accountNumber string) (domain.Account, error) {
	const query = `
SELECT id, user_id, account_number, balance, created_at, updated_at
FROM accounts
WHERE account_number = $1
FOR UPDATE`

	var account domain.Account
	if err := scanAccount(tx.QueryRowContext(ctx, query, accountNumber), &account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("lock account by number: %w", err)
	}

	return account, nil
}

func accountNumberForUser(ctx context.Context, tx *sql.Tx, userID string) (string, error) {
	// Account numbers are immutable, so reading without a lock is safe here;
	// the row itself is locked afterwards in number order.
	const query = `SELECT account_number FROM accounts WHERE user_id = $1`

	var number string
	if err := tx.QueryRowContext(ctx, query, userID).Scan(&number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrAccountNotFound
		}
		return "", fmt.Errorf("resolve account number: %w", err)
	}

	return number, nil
}

func applyBalanceDelta(ctx context.Context, tx *sql.Tx, accountID string, delta decimal.Decimal) (domain.Account, error) {
	const query = `
UPDATE accounts
SET balance = balance + $2::numeric,
    updated_at = NOW()
WHERE id = $1
RETURNING id, user_id, account_number, balance, created_at, updated_at`

	var account domain.Account
	if err := scanAccount(tx.QueryRowContext(ctx, query, accountID, delta), &account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("apply balance delta: %w", err)
	}

	return account, nil
}

func insertTransaction(ctx context.Context, tx *sql.Tx, userID string, txType domain.TransactionType, amount decimal.Decimal, description string) error {
	const query = `
INSERT INTO transactions (user_id, type, amount, description)
VALUES ($1, $2, $3, $4)`

	if _, err := tx.ExecContext(ctx, query, userID, txType, amount, description); err != nil {
		return fmt.Errorf("insert transaction record: %w", err)
	}

	return nil
}

func translateLedgerError(err error) error {
	switch {
	case isSerializationFailure(err):
		return domain.ErrConcurrentModification
	case isCheckViolation(err):
		// The balance >= 0 check constraint is the storage-level backstop
		// behind the in-transaction balance validation.
		return domain.ErrInsufficientFunds
	default:
		return err
	}
}
