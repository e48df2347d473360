package application

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFeeRate ...
	ErrInvalidFeeRate = errors.New(
		"fee rate must be a positive number of sat/vByte or one of fast, medium, slow",
	)
	// ErrFeeEstimatesUnavailable ...
	ErrFeeEstimatesUnavailable = errors.New("fee estimates unavailable")
	// ErrClassifierUnavailable is returned when the inscription index cannot
	// vouch for the wallet unspents. Spending proceeds only with verified
	// outputs, so an unreachable index blocks the deposit instead of risking
	// inscribed collateral.
	ErrClassifierUnavailable = errors.New("utxo classifier unavailable")
	// ErrInvalidRecipient ...
	ErrInvalidRecipient = errors.New("invalid recipient principal")
)

// BroadcastRejectedError is returned when the mempool refuses the deposit
// transaction. The reason is the verbatim node message.
type BroadcastRejectedError struct {
	Reason string
}

func (e BroadcastRejectedError) Error() string {
	return fmt.Sprintf("transaction rejected by the network: %s", e.Reason)
}

// RegistrationFailedError is returned when the deposit transaction has been
// broadcast but handing its script material to the coordinator failed. The
// outpoint is carried along so the caller never loses track of the funds.
type RegistrationFailedError struct {
	TxID string
	VOut uint32
	Err  error
}

func (e RegistrationFailedError) Error() string {
	return fmt.Sprintf(
		"deposit %s:%d broadcast but not registered, retry later: %s",
		e.TxID, e.VOut, e.Err,
	)
}

func (e RegistrationFailedError) Unwrap() error {
	return e.Err
}
