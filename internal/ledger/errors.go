package ledger

import "errors"

var (
	// ErrAccountNotFound means the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound means the referenced ledger transaction does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInsufficientBalance means a debit (or the inverse applied by a
	// reversal) would drive the account balance negative.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidArgument means the caller supplied a malformed direction or a
	// non-positive amount.
	ErrInvalidArgument = errors.New("invalid argument")
)
