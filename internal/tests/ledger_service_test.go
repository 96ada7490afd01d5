package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bankdash/bank-system/internal/adapter/repository/memory"
	"github.com/bankdash/bank-system/internal/domain"
	"github.com/bankdash/bank-system/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func newLedgerFixture() (*memory.Store, *services.LedgerService) {
	store := memory.NewStore()
	return store, services.NewLedgerService(store, store)
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", value, err)
	}
	return d
}

func TestLedgerServiceDepositIncreasesBalanceAndAppendsOneTransaction(t *testing.T) {
	store, svc := newLedgerFixture()
	account := store.SeedAccount("alice", "100000000001", mustDecimal(t, "500.00"))

	response, err := svc.Deposit(context.Background(), account.UserID, mustDecimal(t, "100.00"))
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if response.Data.Balance != "600.00" {
		t.Fatalf("expected balance 600.00, got %s", response.Data.Balance)
	}

	transactions := store.Transactions()
	if len(transactions) != 1 {
		t.Fatalf("expected exactly 1 transaction, got %d", len(transactions))
	}
	if transactions[0].Type != domain.TransactionTypeDeposit {
		t.Fatalf("expected deposit transaction, got %s", transactions[0].Type)
	}
	if !transactions[0].Amount.Equal(mustDecimal(t, "100.00")) {
		t.Fatalf("expected transaction amount 100.00, got %s", transactions[0].Amount)
	}
}

func TestLedgerServiceDepositRejectsNonPositiveAmount(t *testing.T) {
	store, svc := newLedgerFixture()
	account := store.SeedAccount("alice", "100000000001", mustDecimal(t, "500.00"))

	for _, raw := range []string{"0", "-5.00"} {
		_, err := svc.Deposit(context.Background(), account.UserID, mustDecimal(t, raw))
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("deposit of %s: expected ErrInvalidAmount, got %v", raw, err)
		}
	}

	if len(store.Transactions()) != 0 {
		t.Fatal("rejected deposit must not append transactions")
	}
}

func TestLedgerServiceDepositRejectsSubCentPrecision(t *testing.T) {
	store, svc := newLedgerFixture()
	account := store.SeedAccount("alice", "100000000001", mustDecimal(t, "500.00"))

	_, err := svc.Deposit(context.Background(), account.UserID, mustDecimal(t, "10.001"))
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for 3 decimal places, got %v", err)
	}
}

func TestLedgerServiceWithdrawInsufficientFundsLeavesStateUntouched(t *testing.T) {
	store, svc := newLedgerFixture()
	account := store.SeedAccount("alice", "100000000001", mustDecimal(t, "500.00"))

	_, err := svc.Withdraw(context.Background(), account.UserID, mustDecimal(t, "600.00"))
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	unchanged, err := store.GetByUserID(context.Background(), account.UserID)
	if err != nil {
		t.Fatalf("reload account: %v", err)
	}
	if !unchanged.Balance.Equal(mustDecimal(t, "500.00")) {
		t.Fatalf("balance must remain 500.00, got %s", unchanged.Balance)
	}
	if len(store.Transactions()) != 0 {
		t.Fatal("failed withdrawal must not append transactions")
	}
}

func TestLedgerServiceTransferInsufficientFundsLeavesStateUntouched(t *testing.T) {
	store, svc := newLedgerFixture()
	sender := store.SeedAccount("alice", "100000000001", mustDecimal(t, "100.00"))
	receiver := store.SeedAccount("bob", "100000000002", mustDecimal(t, "50.00"))

	_, err := svc.Transfer(context.Background(), sender.UserID, receiver.AccountNumber, mustDecimal(t, "200.00"))
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	reloadedSender, err := store.GetByUserID(context.Background(), sender.UserID)
	if err != nil {
		t.Fatalf("reload sender: %v", err)
	}
	if !reloadedSender.Balance.Equal(mustDecimal(t, "100.00")) {
		t.Fatalf("sender balance must remain 100.00, got %s", reloadedSender.Balance)
	}

	reloadedReceiver, err := store.GetByUserID(context.Background(), receiver.UserID)
	if err != nil {
		t.Fatalf("reload receiver: %v", err)
	}
	if !reloadedReceiver.Balance.Equal(mustDecimal(t, "50.00")) {
		t.Fatalf("receiver balance must remain 50.00, got %s", reloadedReceiver.Balance)
	}

	if len(store.Transactions()) != 0 {
		t.Fatal("failed transfer must not append transactions")
	}
}

func TestLedgerServiceTransferToOwnAccountAlwaysFails(t *testing.T) {
	store, svc := newLedgerFixture()
	account := store.SeedAccount("alice", "100000000001", mustDecimal(t, "500.00"))

	for _, raw := range []string{"0.01", "500.00", "999999.99"} {
		_, err := svc.Transfer(context.Background(), account.UserID, account.AccountNumber, mustDecimal(t, raw))
		if !errors.Is(err, domain.ErrSelfTransfer) {
			t.Fatalf("transfer of %s to own account: expected ErrSelfTransfer, got %v", raw, err)
		}
	}
}

func TestLedgerServiceTransferToUnknownAccountFails(t *testing.T) {
	store, svc := newLedgerFixture()
	account := store.SeedAccount("alice", "100000000001", mustDecimal(t, "500.00"))

	_, err := svc.Transfer(context.Background(), account.UserID, "999999999999", mustDecimal(t, "10.00"))
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestLedgerServiceTransferConservesTotalBalance(t *testing.T) {
	store, svc := newLedgerFixture()
	sender := store.SeedAccount("alice", "100000000001", mustDecimal(t, "500.00"))
	receiver := store.SeedAccount("bob", "100000000002", mustDecimal(t, "50.00"))

	response, err := svc.Transfer(context.Background(), sender.UserID, receiver.AccountNumber, mustDecimal(t, "200.00"))
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if response.Data.Balance != "300.00" {
		t.Fatalf("expected sender balance 300.00, got %s", response.Data.Balance)
	}

	reloadedReceiver, err := store.GetByUserID(context.Background(), receiver.UserID)
	if err != nil {
		t.Fatalf("reload receiver: %v", err)
	}
	if !reloadedReceiver.Balance.Equal(mustDecimal(t, "250.00")) {
		t.Fatalf("expected receiver balance 250.00, got %s", reloadedReceiver.Balance)
	}

	transactions := store.Transactions()
	if len(transactions) != 2 {
		t.Fatalf("expected exactly 2 transactions, got %d", len(transactions))
	}
	if transactions[0].Type != domain.TransactionTypeTransfer || transactions[0].UserID != sender.UserID {
		t.Fatalf("first record must be the sender's transfer, got %s for %s", transactions[0].Type, transactions[0].UserID)
	}
	if transactions[1].Type != domain.TransactionTypeDeposit || transactions[1].UserID != receiver.UserID {
		t.Fatalf("second record must be the receiver's deposit, got %s for %s", transactions[1].Type, transactions[1].UserID)
	}

	total := mustDecimal(t, "300.00").Add(reloadedReceiver.Balance)
	if !total.Equal(mustDecimal(t, "550.00")) {
		t.Fatalf("system-wide balance changed: got %s, want 550.00", total)
	}
}

// Walks the documented example: balance 500.00, failed withdrawal of
// 600.00, deposit of 100.00, then a 200.00 transfer to an account holding
// 50.00.
func TestLedgerServiceScenario(t *testing.T) {
	store, svc := newLedgerFixture()
	a := store.SeedAccount("alice", "100000000001", mustDecimal(t, "500.00"))
	b := store.SeedAccount("bob", "100000000002", mustDecimal(t, "50.00"))

	ctx := context.Background()

	if _, err := svc.Withdraw(ctx, a.UserID, mustDecimal(t, "600.00")); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	response, err := svc.Deposit(ctx, a.UserID, mustDecimal(t, "100.00"))
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if response.Data.Balance != "600.00" {
		t.Fatalf("expected balance 600.00 after deposit, got %s", response.Data.Balance)
	}

	response, err = svc.Transfer(ctx, a.UserID, b.AccountNumber, mustDecimal(t, "200.00"))
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if response.Data.Balance != "400.00" {
		t.Fatalf("expected sender balance 400.00, got %s", response.Data.Balance)
	}

	reloadedB, err := store.GetByUserID(ctx, b.UserID)
	if err != nil {
		t.Fatalf("reload receiver: %v", err)
	}
	if !reloadedB.Balance.Equal(mustDecimal(t, "250.00")) {
		t.Fatalf("expected receiver balance 250.00, got %s", reloadedB.Balance)
	}

	if got := len(store.Transactions()); got != 3 {
		t.Fatalf("expected 3 transactions (deposit + transfer pair), got %d", got)
	}
}
