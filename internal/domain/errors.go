package domain

import "errors"

// Closed set of failure kinds a ledger operation can signal. Handlers map
// these to HTTP statuses; nothing else about a failure leaks to the caller.
var (
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrSelfTransfer           = errors.New("cannot transfer to own account")
	ErrAccountNotFound        = errors.New("account not found")
	ErrRecordNotFound         = errors.New("record not found")
	ErrConcurrentModification = errors.New("conflicting concurrent update")
	ErrDuplicateUsername      = errors.New("username already taken")
	ErrAccountNumberTaken     = errors.New("account number already assigned")
	ErrInvalidCredentials     = errors.New("invalid username or password")
)
