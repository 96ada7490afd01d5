package services

import (
	"context"
	"errors"
	"strings"

	"github.com/bankdash/bank-system/internal/adapter/http/models"
	"github.com/bankdash/bank-system/internal/adapter/repository/repo_interfaces"
	"github.com/bankdash/bank-system/internal/commons"
	"github.com/bankdash/bank-system/internal/domain"
	"github.com/bankdash/bank-system/internal/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService fronts the three balance-mutating operations. Amount shape
// is validated here; balance and existence conditions are validated again
// inside the repository transaction against freshly locked rows, so a stale
// read can never move money.
type LedgerService struct {
	ledgerRepo  repo_interfaces.LedgerRepository
	accountRepo repo_interfaces.AccountRepository
}

func NewLedgerService(ledgerRepo repo_interfaces.LedgerRepository, accountRepo repo_interfaces.AccountRepository) *LedgerService {
	return &LedgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

func (s *LedgerService) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (commons.Response[models.LedgerOperationResponse], error) {
	logger.Info("ledger service deposit request", logger.Fields{
		"userId": userID,
		"amount": amount.String(),
	})

	if err := checkAmount(amount); err != nil {
		return commons.ErrorResponse[models.LedgerOperationResponse]("validation failed", err.Error()), err
	}

	account, err := s.ledgerRepo.Deposit(ctx, userID, amount)
	if err != nil {
		return ledgerFailure("failed to deposit", err)
	}

	logger.Info("ledger service deposit success", logger.Fields{
		"userId":        userID,
		"accountNumber": account.AccountNumber,
	})

	return commons.SuccessResponse("deposit successful", ledgerResult(account)), nil
}

func (s *LedgerService) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (commons.Response[models.LedgerOperationResponse], error) {
	logger.Info("ledger service withdraw request", logger.Fields{
		"userId": userID,
		"amount": amount.String(),
	})

	if err := checkAmount(amount); err != nil {
		return commons.ErrorResponse[models.LedgerOperationResponse]("validation failed", err.Error()), err
	}

	account, err := s.ledgerRepo.Withdraw(ctx, userID, amount)
	if err != nil {
		return ledgerFailure("failed to withdraw", err)
	}

	logger.Info("ledger service withdraw success", logger.Fields{
		"userId":        userID,
		"accountNumber": account.AccountNumber,
	})

	return commons.SuccessResponse("withdrawal successful", ledgerResult(account)), nil
}

func (s *LedgerService) Transfer(ctx context.Context, userID string, receiverAccountNumber string, amount decimal.Decimal) (commons.Response[models.LedgerOperationResponse], error) {
	receiverAccountNumber = strings.TrimSpace(receiverAccountNumber)

	logger.Info("ledger service transfer request", logger.Fields{
		"userId":                userID,
		"receiverAccountNumber": receiverAccountNumber,
		"amount":                amount.String(),
	})

	if err := checkAmount(amount); err != nil {
		return commons.ErrorResponse[models.LedgerOperationResponse]("validation failed", err.Error()), err
	}

	// An unknown receiver fails before a ledger transaction is opened;
	// the repository re-resolves the account under lock.
	if _, err := s.accountRepo.GetByAccountNumber(ctx, receiverAccountNumber); err != nil {
		return ledgerFailure("failed to transfer", err)
	}

	reference := uuid.NewString()
	account, err := s.ledgerRepo.Transfer(ctx, userID, receiverAccountNumber, amount, reference)
	if err != nil {
		return ledgerFailure("failed to transfer", err)
	}

	logger.Info("ledger service transfer success", logger.Fields{
		"userId":                userID,
		"receiverAccountNumber": receiverAccountNumber,
		"reference":             reference,
	})

	return commons.SuccessResponse("transfer successful", ledgerResult(account)), nil
}

func (s *LedgerService) GetAccount(ctx context.Context, userID string) (commons.Response[models.AccountResponse], error) {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("ledger service get account failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	response := models.AccountResponse{
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance.StringFixed(2),
	}

	return commons.SuccessResponse("account fetched successfully", response), nil
}

func checkAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) || amount.Exponent() < -2 {
		return domain.ErrInvalidAmount
	}
	return nil
}

func ledgerResult(account domain.Account) models.LedgerOperationResponse {
	return models.LedgerOperationResponse{
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance.StringFixed(2),
	}
}

func ledgerFailure(message string, err error) (commons.Response[models.LedgerOperationResponse], error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrSelfTransfer),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrConcurrentModification):
		return commons.ErrorResponse[models.LedgerOperationResponse](err.Error()), err
	default:
		logger.Error("ledger service operation failed", err, nil)
		return commons.ErrorResponse[models.LedgerOperationResponse](message, "Unable to process the operation right now"), err
	}
}
