package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientFunds is thrown when no combination of eligible unspents
	// covers amount plus fee.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrDepositRecordNotFound is thrown when looking up a deposit never
	// recorded locally.
	ErrDepositRecordNotFound = errors.New("deposit record not found")
	// ErrDepositRecordAlreadyExists ...
	ErrDepositRecordAlreadyExists = errors.New("deposit record already exists")
)

// InsufficientFundsError reports by how much the eligible unspents fall short
// of amount plus fee, so the caller can decide whether to add funds or to
// allow spending ordinal-bearing outputs.
type InsufficientFundsError struct {
	Shortfall uint64
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf(
		"insufficient funds: eligible utxos short of %d satoshis", e.Shortfall,
	)
}

func (e InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}
