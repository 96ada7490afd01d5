package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bankdash/bank-system/internal/adapter/http/models"
	"github.com/bankdash/bank-system/internal/adapter/repository/repo_interfaces"
	"github.com/bankdash/bank-system/internal/commons"
	"github.com/bankdash/bank-system/internal/domain"
	"github.com/bankdash/bank-system/internal/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const recentTransactionLimit = 5

type DashboardService struct {
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository

	// Lifetime totals require two aggregate scans; concurrent dashboard
	// loads for the same user share one computation.
	totals singleflight.Group
}

type lifetimeTotals struct {
	deposits    decimal.Decimal
	withdrawals decimal.Decimal
}

func NewDashboardService(accountRepo repo_interfaces.AccountRepository, transactionRepo repo_interfaces.TransactionRepository) *DashboardService {
	return &DashboardService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

func (s *DashboardService) GetDashboard(ctx context.Context, userID string) (commons.Response[models.DashboardResponse], error) {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.DashboardResponse]("account not found"), err
		}
		logger.Error("dashboard service account lookup failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.DashboardResponse]("failed to load dashboard", "Unable to load dashboard right now"), err
	}

	recent, err := s.transactionRepo.ListByUser(ctx, userID, domain.TransactionFilter{Limit: recentTransactionLimit})
	if err != nil {
		logger.Error("dashboard service recent transactions failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.DashboardResponse]("failed to load dashboard", "Unable to load dashboard right now"), err
	}

	totals, err := s.loadTotals(ctx, userID)
	if err != nil {
		logger.Error("dashboard service totals failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.DashboardResponse]("failed to load dashboard", "Unable to load dashboard right now"), err
	}

	response := models.DashboardResponse{
		AccountNumber:      account.AccountNumber,
		Balance:            account.Balance.StringFixed(2),
		TotalDeposits:      totals.deposits.StringFixed(2),
		TotalWithdrawals:   totals.withdrawals.StringFixed(2),
		RecentTransactions: toTransactionResponses(recent),
	}

	return commons.SuccessResponse("dashboard fetched successfully", response), nil
}

func (s *DashboardService) loadTotals(ctx context.Context, userID string) (lifetimeTotals, error) {
	// The shared computation must not die with whichever caller happened
	// to start it, so it runs on a context detached from cancellation.
	sharedCtx := context.WithoutCancel(ctx)

	result, err, _ := s.totals.Do(userID, func() (any, error) {
		deposits, err := s.transactionRepo.SumByType(sharedCtx, userID, domain.TransactionTypeDeposit)
		if err != nil {
			return nil, fmt.Errorf("sum deposits: %w", err)
		}

		withdrawals, err := s.transactionRepo.SumByType(sharedCtx, userID, domain.TransactionTypeWithdraw)
		if err != nil {
			return nil, fmt.Errorf("sum withdrawals: %w", err)
		}

		return lifetimeTotals{deposits: deposits, withdrawals: withdrawals}, nil
	})
	if err != nil {
		return lifetimeTotals{}, err
	}

	return result.(lifetimeTotals), nil
}

func toTransactionResponses(transactions []domain.Transaction) []models.TransactionResponse {
	out := make([]models.TransactionResponse, 0, len(transactions))
	for _, txn := range transactions {
		out = append(out, models.TransactionResponse{
			ID:          txn.ID,
			Type:        string(txn.Type),
			Amount:      txn.Amount.StringFixed(2),
			Description: txn.Description,
			Timestamp:   txn.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return out
}
