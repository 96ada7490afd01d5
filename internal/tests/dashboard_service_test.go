package services_test

import (
	"context"
	"testing"

	"github.com/bankdash/bank-system/internal/adapter/repository/memory"
	"github.com/bankdash/bank-system/internal/usecase/services"
)

func TestDashboardServiceTotalsAndRecentTransactions(t *testing.T) {
	store := memory.NewStore()
	account := store.SeedAccount("alice", "100000000001", mustDecimal(t, "0.00"))
	ledger := services.NewLedgerService(store, store)
	svc := services.NewDashboardService(store, store)

	ctx := context.Background()
	for i := 0; i < 7; i++ {
		if _, err := ledger.Deposit(ctx, account.UserID, mustDecimal(t, "10.00")); err != nil {
			t.Fatalf("seed deposit %d: %v", i, err)
		}
	}
	if _, err := ledger.Withdraw(ctx, account.UserID, mustDecimal(t, "25.00")); err != nil {
		t.Fatalf("seed withdrawal: %v", err)
	}

	response, err := svc.GetDashboard(ctx, account.UserID)
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}

	if response.Data.Balance != "45.00" {
		t.Fatalf("expected balance 45.00, got %s", response.Data.Balance)
	}
	if response.Data.TotalDeposits != "70.00" {
		t.Fatalf("expected total deposits 70.00, got %s", response.Data.TotalDeposits)
	}
	if response.Data.TotalWithdrawals != "25.00" {
		t.Fatalf("expected total withdrawals 25.00, got %s", response.Data.TotalWithdrawals)
	}
	if len(response.Data.RecentTransactions) != 5 {
		t.Fatalf("expected 5 recent transactions, got %d", len(response.Data.RecentTransactions))
	}
}

func TestDashboardServiceUnknownUser(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewDashboardService(store, store)

	if _, err := svc.GetDashboard(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for unknown user")
	}
}
