package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/bankdash/bank-system/internal/adapter/repository/repo_interfaces"
	"github.com/bankdash/bank-system/internal/domain"
	"github.com/bankdash/bank-system/internal/logger"
	"github.com/jung-kurt/gofpdf"
)

// ReportService renders a user's transaction history as CSV or PDF.
// Formatting only; every number it prints was computed by the ledger.
type ReportService struct {
	transactionRepo repo_interfaces.TransactionRepository
}

func NewReportService(transactionRepo repo_interfaces.TransactionRepository) *ReportService {
	return &ReportService{transactionRepo: transactionRepo}
}

// WriteCSV streams the filtered history as rows of
// Date,Type,Amount,Description with a header row first.
func (s *ReportService) WriteCSV(ctx context.Context, w io.Writer, userID string, filter domain.TransactionFilter) error {
	transactions, err := s.transactionRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return fmt.Errorf("load transactions for csv export: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Date", "Type", "Amount", "Description"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, txn := range transactions {
		record := []string{
			txn.CreatedAt.Format("2006-01-02 15:04:05"),
			titleCase(string(txn.Type)),
			txn.Amount.StringFixed(2),
			txn.Description,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteMonthlyPDF renders the full history oldest-first, grouped by
// calendar month, one labeled table per month.
func (s *ReportService) WriteMonthlyPDF(ctx context.Context, w io.Writer, userID string) error {
	transactions, err := s.transactionRepo.ListByUserAscending(ctx, userID)
	if err != nil {
		return fmt.Errorf("load transactions for pdf export: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Monthly Transaction Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	currentMonth := ""
	for _, txn := range transactions {
		month := txn.CreatedAt.Format("January 2006")
		if month != currentMonth {
			currentMonth = month
			writeMonthHeader(pdf, month)
		}
		writeTransactionRow(pdf, txn)
	}

	if len(transactions) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, "No transactions recorded.", "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		logger.Error("report service pdf rendering failed", err, logger.Fields{
			"userId": userID,
		})
		return fmt.Errorf("render monthly pdf: %w", err)
	}

	return nil
}

// WriteReceiptPDF renders a single transaction owned by the user.
func (s *ReportService) WriteReceiptPDF(ctx context.Context, w io.Writer, userID string, transactionID string) error {
	txn, err := s.transactionRepo.GetByIDForUser(ctx, transactionID, userID)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Transaction Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	rows := [][2]string{
		{"Receipt ID", txn.ID},
		{"Date", txn.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Type", titleCase(string(txn.Type))},
		{"Amount", txn.Amount.StringFixed(2)},
		{"Description", txn.Description},
	}

	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, row[1], "1", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		logger.Error("report service receipt rendering failed", err, logger.Fields{
			"userId":        userID,
			"transactionId": transactionID,
		})
		return fmt.Errorf("render receipt pdf: %w", err)
	}

	return nil
}

func writeMonthHeader(pdf *gofpdf.Fpdf, month string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, month, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(40, 8, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Type", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(0, 8, "Description", "1", 1, "L", true, 0, "")
}

func writeTransactionRow(pdf *gofpdf.Fpdf, txn domain.Transaction) {
	description := txn.Description
	if len(description) > 60 {
		description = description[:60]
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(40, 7, txn.CreatedAt.Format("02-01-2006"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, titleCase(string(txn.Type)), "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, txn.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.CellFormat(0, 7, description, "1", 1, "L", false, 0, "")
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
