package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bankdash/bank-system/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`
SELECT id, user_id, type, amount, description, created_at
FROM transactions
WHERE user_id = $1`)

	args := []any{userID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		sb.WriteString(" AND created_at::date >= $" + strconv.Itoa(len(args)) + "::date")
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		sb.WriteString(" AND created_at::date <= $" + strconv.Itoa(len(args)) + "::date")
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		sb.WriteString(" AND type = $" + strconv.Itoa(len(args)))
	}

	sb.WriteString(" ORDER BY created_at DESC, id DESC")

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (r *TransactionRepository) ListByUserAscending(ctx context.Context, userID string) ([]domain.Transaction, error) {
	const query = `
SELECT id, user_id, type, amount, description, created_at
FROM transactions
WHERE user_id = $1
ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions ascending: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (r *TransactionRepository) GetByIDForUser(ctx context.Context, id string, userID string) (domain.Transaction, error) {
	const query = `
SELECT id, user_id, type, amount, description, created_at
FROM transactions
WHERE id = $1 AND user_id = $2`

	var txn domain.Transaction
	if err := scanTransaction(r.db.QueryRowContext(ctx, query, id, userID), &txn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, domain.ErrRecordNotFound
		}
		return domain.Transaction{}, fmt.Errorf("get transaction by id: %w", err)
	}

	return txn, nil
}

func (r *TransactionRepository) SumByType(ctx context.Context, userID string, txType domain.TransactionType) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(amount), 0)
FROM transactions
WHERE user_id = $1 AND type = $2`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, userID, txType).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum transactions by type: %w", err)
	}

	return total, nil
}

func collectTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var txn domain.Transaction
		if err := scanTransaction(rows, &txn); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return transactions, nil
}

func scanTransaction(row rowScanner, txn *domain.Transaction) error {
	var description sql.NullString
	if err := row.Scan(
		&txn.ID,
		&txn.UserID,
		&txn.Type,
		&txn.Amount,
		&description,
		&txn.CreatedAt,
	); err != nil {
		return err
	}

	txn.Description = description.String
	return nil
}
