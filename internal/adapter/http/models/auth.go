package models

import (
	"errors"
	"strings"
)

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	var errs []string

	username := strings.TrimSpace(r.Username)
	if username == "" {
		errs = append(errs, "username is required")
	} else if len(username) < 3 {
		errs = append(errs, "username must be at least 3 characters")
	}

	if len(r.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}

	if email := strings.TrimSpace(r.Email); email != "" && !strings.Contains(email, "@") {
		errs = append(errs, "email is not valid")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type RegisterResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	AccountNumber string `json:"accountNumber"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, "username is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type LoginResponse struct {
	Token string `json:"token"`
}
