package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bankdash/bank-system/internal/adapter/http/middleware"
	"github.com/bankdash/bank-system/internal/adapter/http/models"
	"github.com/bankdash/bank-system/internal/commons"
	"github.com/bankdash/bank-system/internal/domain"
	"github.com/bankdash/bank-system/internal/logger"
)

type TransactionLister interface {
	ListByUser(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

type ReportService interface {
	WriteCSV(ctx context.Context, w io.Writer, userID string, filter domain.TransactionFilter) error
	WriteMonthlyPDF(ctx context.Context, w io.Writer, userID string) error
	WriteReceiptPDF(ctx context.Context, w io.Writer, userID string, transactionID string) error
}

type TransactionController struct {
	transactions TransactionLister
	reports      ReportService
}

func NewTransactionController(transactions TransactionLister, reports ReportService) *TransactionController {
	return &TransactionController{transactions: transactions, reports: reports}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	protect := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("GET /transactions", protect(c.list))
	mux.Handle("GET /transactions/pdf", protect(c.monthlyPDF))
	mux.Handle("GET /transactions/{id}/receipt", protect(c.receiptPDF))
}

func (c *TransactionController) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTransactionFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionListResponse]("validation failed", err.Error()))
		return
	}

	userID := middleware.UserID(r.Context())

	if r.URL.Query().Get("export") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
		if err := c.reports.WriteCSV(r.Context(), w, userID, filter); err != nil {
			// Headers are already out; all that is left is to log.
			logger.Error("transaction controller csv export failed", err, logger.Fields{
				"userId": userID,
			})
		}
		return
	}

	transactions, err := c.transactions.ListByUser(r.Context(), userID, filter)
	if err != nil {
		logger.Error("transaction controller list failed", err, logger.Fields{
			"userId": userID,
		})
		writeJSON(w, http.StatusInternalServerError, commons.ErrorResponse[models.TransactionListResponse]("failed to list transactions", "Unable to fetch transactions right now"))
		return
	}

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

	writeJSON(w, http.StatusOK, commons.SuccessResponse("transactions fetched successfully", models.TransactionListResponse{Transactions: out}))
}

func (c *TransactionController) monthlyPDF(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.pdf"`)

	if err := c.reports.WriteMonthlyPDF(r.Context(), w, userID); err != nil {
		logger.Error("transaction controller pdf export failed", err, logger.Fields{
			"userId": userID,
		})
	}
}

func (c *TransactionController) receiptPDF(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	transactionID := r.PathValue("id")

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt_%s.pdf"`, transactionID))

	if err := c.reports.WriteReceiptPDF(r.Context(), w, userID, transactionID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			w.Header().Del("Content-Disposition")
			w.Header().Set("Content-Type", "application/json")
			writeJSON(w, http.StatusNotFound, commons.ErrorResponse[models.TransactionResponse]("transaction not found"))
			return
		}
		logger.Error("transaction controller receipt export failed", err, logger.Fields{
			"userId":        userID,
			"transactionId": transactionID,
		})
	}
}

func parseTransactionFilter(r *http.Request) (domain.TransactionFilter, error) {
	query := r.URL.Query()
	var filter domain.TransactionFilter

	if raw := query.Get("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return domain.TransactionFilter{}, fmt.Errorf("start_date must be in YYYY-MM-DD format")
		}
		filter.StartDate = &parsed
	}

	if raw := query.Get("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return domain.TransactionFilter{}, fmt.Errorf("end_date must be in YYYY-MM-DD format")
		}
		filter.EndDate = &parsed
	}

	if raw := query.Get("type"); raw != "" && raw != "all" {
		switch txType := domain.TransactionType(raw); txType {
		case domain.TransactionTypeDeposit, domain.TransactionTypeWithdraw, domain.TransactionTypeTransfer:
			filter.Type = &txType
		default:
			return domain.TransactionFilter{}, fmt.Errorf("type must be one of deposit, withdraw, transfer")
		}
	}

	return filter, nil
}
