package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bankdash/bank-system/internal/adapter/http/models"
	"github.com/bankdash/bank-system/internal/commons"
)

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (commons.Response[models.RegisterResponse], error)
	Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error)
}

type AuthController struct {
	service UserService
}

func NewAuthController(service UserService) *AuthController {
	return &AuthController{service: service}
}

func (c *AuthController) RegisterRoutes(mux *http.ServeMux, _ func(http.Handler) http.Handler) {
	mux.Handle("POST /register", http.HandlerFunc(c.register))
	mux.Handle("POST /login", http.HandlerFunc(c.login))
}

func (c *AuthController) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.RegisterResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.Register(r.Context(), req)
	if err != nil {
		status := statusForError(err)
		if response.Message == "validation failed" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *AuthController) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoginResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.Login(r.Context(), req)
	if err != nil {
		status := statusForError(err)
		if response.Message == "validation failed" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
