package services_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/bankdash/bank-system/internal/adapter/repository/memory"
	"github.com/bankdash/bank-system/internal/domain"
	"github.com/bankdash/bank-system/internal/usecase/services"
)

func seedHistory(t *testing.T, store *memory.Store) (domain.Account, *services.LedgerService) {
	t.Helper()

	account := store.SeedAccount("alice", "100000000001", mustDecimal(t, "0.00"))
	ledger := services.NewLedgerService(store, store)

	ctx := context.Background()
	if _, err := ledger.Deposit(ctx, account.UserID, mustDecimal(t, "500.00")); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}
	if _, err := ledger.Withdraw(ctx, account.UserID, mustDecimal(t, "120.50")); err != nil {
		t.Fatalf("seed withdrawal: %v", err)
	}

	return account, ledger
}

func TestReportServiceWriteCSV(t *testing.T) {
	store := memory.NewStore()
	account, _ := seedHistory(t, store)
	svc := services.NewReportService(store)

	var buf bytes.Buffer
	if err := svc.WriteCSV(context.Background(), &buf, account.UserID, domain.TransactionFilter{}); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse generated csv: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}

	header := strings.Join(records[0], ",")
	if header != "Date,Type,Amount,Description" {
		t.Fatalf("unexpected header row %q", header)
	}

	// Newest first: the withdrawal precedes the deposit.
	if records[1][1] != "Withdraw" || records[1][2] != "120.50" {
		t.Fatalf("unexpected first row %v", records[1])
	}
	if records[2][1] != "Deposit" || records[2][2] != "500.00" {
		t.Fatalf("unexpected second row %v", records[2])
	}
}

func TestReportServiceWriteCSVHonorsTypeFilter(t *testing.T) {
	store := memory.NewStore()
	account, _ := seedHistory(t, store)
	svc := services.NewReportService(store)

	depositType := domain.TransactionTypeDeposit
	var buf bytes.Buffer
	if err := svc.WriteCSV(context.Background(), &buf, account.UserID, domain.TransactionFilter{Type: &depositType}); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse generated csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 deposit row, got %d records", len(records))
	}
	if records[1][1] != "Deposit" {
		t.Fatalf("expected only deposit rows, got %v", records[1])
	}
}

func TestReportServiceWriteMonthlyPDF(t *testing.T) {
	store := memory.NewStore()
	account, _ := seedHistory(t, store)
	svc := services.NewReportService(store)

	var buf bytes.Buffer
	if err := svc.WriteMonthlyPDF(context.Background(), &buf, account.UserID); err != nil {
		t.Fatalf("write monthly pdf: %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("monthly statement is not a PDF document")
	}
}

func TestReportServiceWriteMonthlyPDFEmptyHistory(t *testing.T) {
	store := memory.NewStore()
	account := store.SeedAccount("alice", "100000000001", mustDecimal(t, "0.00"))
	svc := services.NewReportService(store)

	var buf bytes.Buffer
	if err := svc.WriteMonthlyPDF(context.Background(), &buf, account.UserID); err != nil {
		t.Fatalf("write monthly pdf for empty history: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("empty statement is not a PDF document")
	}
}

func TestReportServiceWriteReceiptPDF(t *testing.T) {
	store := memory.NewStore()
	account, _ := seedHistory(t, store)
	svc := services.NewReportService(store)

	transactions := store.Transactions()
	if len(transactions) == 0 {
		t.Fatal("expected seeded transactions")
	}

	var buf bytes.Buffer
	if err := svc.WriteReceiptPDF(context.Background(), &buf, account.UserID, transactions[0].ID); err != nil {
		t.Fatalf("write receipt pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("receipt is not a PDF document")
	}
}

func TestReportServiceWriteReceiptPDFUnknownTransaction(t *testing.T) {
	store := memory.NewStore()
	account, _ := seedHistory(t, store)
	other := store.SeedAccount("bob", "100000000002", mustDecimal(t, "0.00"))
	svc := services.NewReportService(store)

	var buf bytes.Buffer
	err := svc.WriteReceiptPDF(context.Background(), &buf, account.UserID, "missing-id")
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for unknown id, got %v", err)
	}

	// A transaction belonging to another user is just as invisible.
	transactions := store.Transactions()
	err = svc.WriteReceiptPDF(context.Background(), &buf, other.UserID, transactions[0].ID)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for foreign transaction, got %v", err)
	}
}
