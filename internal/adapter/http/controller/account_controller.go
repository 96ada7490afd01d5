package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bankdash/bank-system/internal/adapter/http/middleware"
	"github.com/bankdash/bank-system/internal/adapter/http/models"
	"github.com/bankdash/bank-system/internal/commons"
	"github.com/shopspring/decimal"
)

type LedgerService interface {
	GetAccount(ctx context.Context, userID string) (commons.Response[models.AccountResponse], error)
	Deposit(ctx context.Context, userID string, amount decimal.Decimal) (commons.Response[models.LedgerOperationResponse], error)
	Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (commons.Response[models.LedgerOperationResponse], error)
	Transfer(ctx context.Context, userID string, receiverAccountNumber string, amount decimal.Decimal) (commons.Response[models.LedgerOperationResponse], error)
}

type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (commons.Response[models.DashboardResponse], error)
}

type AccountController struct {
	ledger    LedgerService
	dashboard DashboardService
}

func NewAccountController(ledger LedgerService, dashboard DashboardService) *AccountController {
	return &AccountController{ledger: ledger, dashboard: dashboard}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	protect := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("GET /account", protect(c.getAccount))
	mux.Handle("GET /dashboard", protect(c.getDashboard))
	mux.Handle("POST /account/deposit", protect(c.deposit))
	mux.Handle("POST /account/withdraw", protect(c.withdraw))
	mux.Handle("POST /account/transfer", protect(c.transfer))
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	response, err := c.ledger.GetAccount(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) getDashboard(w http.ResponseWriter, r *http.Request) {
	response, err := c.dashboard.GetDashboard(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) deposit(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAmountRequest(w, r)
	if !ok {
		return
	}

	response, err := c.ledger.Deposit(r.Context(), middleware.UserID(r.Context()), req.Amount)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) withdraw(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAmountRequest(w, r)
	if !ok {
		return
	}

	response, err := c.ledger.Withdraw(r.Context(), middleware.UserID(r.Context()), req.Amount)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) transfer(w http.ResponseWriter, r *http.Request) {
	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LedgerOperationResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LedgerOperationResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.ledger.Transfer(r.Context(), middleware.UserID(r.Context()), req.ReceiverAccountNumber, req.Amount)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func decodeAmountRequest(w http.ResponseWriter, r *http.Request) (models.AmountRequest, bool) {
	var req models.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LedgerOperationResponse]("invalid request body", err.Error()))
		return models.AmountRequest{}, false
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LedgerOperationResponse]("validation failed", err.Error()))
		return models.AmountRequest{}, false
	}

	return req, true
}
