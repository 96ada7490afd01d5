package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bankdash/bank-system/internal/adapter/http/models"
	"github.com/bankdash/bank-system/internal/adapter/repository/repo_interfaces"
	"github.com/bankdash/bank-system/internal/auth"
	"github.com/bankdash/bank-system/internal/commons"
	"github.com/bankdash/bank-system/internal/domain"
	"github.com/bankdash/bank-system/internal/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// How many times an account-number collision at the storage layer is
// retried with a fresh number before registration gives up.
const registerAttempts = 5

type UserService struct {
	userRepo repo_interfaces.UserRepository
	numbers  *AccountNumberGenerator
	tokens   *auth.TokenManager
}

func NewUserService(userRepo repo_interfaces.UserRepository, numbers *AccountNumberGenerator, tokens *auth.TokenManager) *UserService {
	return &UserService{
		userRepo: userRepo,
		numbers:  numbers,
		tokens:   tokens,
	}
}

// Register creates the user together with its account and profile as one
// atomic unit. There is no moment at which the user exists without them.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (commons.Response[models.RegisterResponse], error) {
	logger.Info("user service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("user service register validation failed", err, nil)
		return commons.ErrorResponse[models.RegisterResponse]("validation failed", err.Error()), err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("user service register hash password failed", err, nil)
		return commons.ErrorResponse[models.RegisterResponse]("failed to register", "Unable to register right now"), err
	}

	user := domain.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: string(passwordHash),
	}

	var created domain.User
	var account domain.Account
	for attempt := 0; attempt < registerAttempts; attempt++ {
		number, genErr := s.numbers.Next(ctx)
		if genErr != nil {
			logger.Error("user service register generate account number failed", genErr, nil)
			return commons.ErrorResponse[models.RegisterResponse]("failed to register", "Unable to register right now"), genErr
		}

		created, account, err = s.userRepo.CreateWithAccountAndProfile(ctx, user, domain.Account{
			AccountNumber: number,
			Balance:       decimal.Zero,
		})
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return commons.ErrorResponse[models.RegisterResponse]("username already taken", err.Error()), err
		}
		if !errors.Is(err, domain.ErrAccountNumberTaken) {
			logger.Error("user service register repository failed", err, logger.Fields{
				"username": user.Username,
			})
			return commons.ErrorResponse[models.RegisterResponse]("failed to register", "Unable to register right now"), err
		}
	}
	if err != nil {
		return commons.ErrorResponse[models.RegisterResponse]("failed to register", "Unable to register right now"), err
	}

	response := models.RegisterResponse{
		ID:            created.ID,
		Username:      created.Username,
		AccountNumber: account.AccountNumber,
	}

	logger.Info("user service register success", logger.Fields{
		"userId":        response.ID,
		"username":      response.Username,
		"accountNumber": response.AccountNumber,
	})

	return commons.SuccessResponse("user registered successfully", response), nil
}

func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("user service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoginResponse]("validation failed", err.Error()), err
	}

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.LoginResponse]("invalid credentials"), domain.ErrInvalidCredentials
		}
		logger.Error("user service login lookup failed", err, nil)
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return commons.ErrorResponse[models.LoginResponse]("invalid credentials"), domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		logger.Error("user service login token generation failed", err, logger.Fields{
			"userId": user.ID,
		})
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	logger.Info("user service login success", logger.Fields{
		"userId":   user.ID,
		"username": user.Username,
	})

	return commons.SuccessResponse("login successful", models.LoginResponse{Token: token}), nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	if strings.TrimSpace(id) == "" {
		return domain.User{}, fmt.Errorf("id is required")
	}
	return s.userRepo.GetByID(ctx, id)
}
