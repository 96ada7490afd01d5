package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (r AmountRequest) Validate() error {
	return validateAmount(r.Amount)
}

type TransferRequest struct {
	ReceiverAccountNumber string          `json:"receiverAccountNumber"`
	Amount                decimal.Decimal `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if !isTwelveDigits(strings.TrimSpace(r.ReceiverAccountNumber)) {
		errs = append(errs, "receiverAccountNumber must be exactly 12 digits")
	}
	if err := validateAmount(r.Amount); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type AccountResponse struct {
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
}

type LedgerOperationResponse struct {
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
}

// validateAmount enforces the wire-level shape only: positive, at most two
// decimal places. Balance-dependent checks belong to the ledger service.
func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount must be greater than zero")
	}
	if amount.Exponent() < -2 {
		return errors.New("amount cannot have more than 2 decimal places")
	}
	return nil
}

func isTwelveDigits(value string) bool {
	if len(value) != 12 {
		return false
	}

	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	return true
}
