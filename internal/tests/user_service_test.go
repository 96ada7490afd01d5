package services_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/bankdash/bank-system/internal/adapter/http/models"
	"github.com/bankdash/bank-system/internal/adapter/repository/memory"
	"github.com/bankdash/bank-system/internal/auth"
	"github.com/bankdash/bank-system/internal/domain"
	"github.com/bankdash/bank-system/internal/usecase/services"
)

func newUserFixture() (*memory.Store, *services.UserService, *auth.TokenManager) {
	store := memory.NewStore()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	numbers := services.NewAccountNumberGenerator(store)
	return store, services.NewUserService(store, numbers, tokens), tokens
}

func TestUserServiceRegisterCreatesUserAccountAndProfile(t *testing.T) {
	store, svc, _ := newUserFixture()

	response, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if response.Data == nil {
		t.Fatal("expected register response data")
	}
	if len(response.Data.AccountNumber) != 12 {
		t.Fatalf("expected a 12-digit account number, got %q", response.Data.AccountNumber)
	}

	ctx := context.Background()

	account, err := store.GetByUserID(ctx, response.Data.ID)
	if err != nil {
		t.Fatalf("account was not created with the user: %v", err)
	}
	if !account.Balance.IsZero() {
		t.Fatalf("new account must start at zero balance, got %s", account.Balance)
	}

	if _, err := store.Profiles().GetByUserID(ctx, response.Data.ID); err != nil {
		t.Fatalf("profile was not created with the user: %v", err)
	}
}

func TestUserServiceRegisterRejectsDuplicateUsername(t *testing.T) {
	_, svc, _ := newUserFixture()

	req := models.RegisterRequest{Username: "alice", Password: "correct-horse"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestUserServiceRegisterRetriesWhenAccountNumberIsTaken(t *testing.T) {
	store := memory.NewStore()
	store.SeedAccount("earlier", strconv.FormatInt(accountNumberMin+7, 10), mustDecimal(t, "0.00"))

	// The generator checks a different, empty store, so its first draw is
	// the number assigned above and the insert itself collides. The second
	// draw must be accepted on retry.
	draws := []int64{7, 42}
	numbers := services.NewAccountNumberGeneratorWithRand(memory.NewStore(), sequenceRand(draws))
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := services.NewUserService(store, numbers, tokens)

	response, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "alice",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register failed despite a free number on retry: %v", err)
	}

	want := strconv.FormatInt(accountNumberMin+42, 10)
	if response.Data.AccountNumber != want {
		t.Fatalf("expected retried account number %s, got %s", want, response.Data.AccountNumber)
	}
}

func TestUserServiceRegisterValidationError(t *testing.T) {
	_, svc, _ := newUserFixture()

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "al", Password: "short"})
	if err == nil {
		t.Fatal("expected validation error for weak registration request")
	}
}

func TestUserServiceLoginReturnsTokenForUser(t *testing.T) {
	_, svc, tokens := newUserFixture()

	registered, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "alice",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	response, err := svc.Login(context.Background(), models.LoginRequest{
		Username: "alice",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	userID, err := tokens.Parse(response.Data.Token)
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if userID != registered.Data.ID {
		t.Fatalf("token subject %q does not match registered user %q", userID, registered.Data.ID)
	}
}

func TestUserServiceLoginRejectsBadCredentials(t *testing.T) {
	_, svc, _ := newUserFixture()

	if _, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "alice",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "wrong"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	_, err = svc.Login(context.Background(), models.LoginRequest{Username: "nobody", Password: "whatever"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
