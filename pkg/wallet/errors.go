package wallet

import "errors"

var (
	// ErrNullSigningKey ...
	ErrNullSigningKey = errors.New("signing key must not be null")
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network must not be null")
	// ErrWIFNetworkMismatch ...
	ErrWIFNetworkMismatch = errors.New("WIF key does not belong to the configured network")
	// ErrNullUnspents ...
	ErrNullUnspents = errors.New("unspents must not be null")
	// ErrNullDepositScript ...
	ErrNullDepositScript = errors.New("deposit output script must not be null")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be a positive number of satoshis")
	// ErrInvalidFeeRate ...
	ErrInvalidFeeRate = errors.New("fee rate must be a positive number of sat/vByte")
	// ErrUnsupportedInputScript is thrown when trying to sign an input not
	// paying to the wallet taproot address.
	ErrUnsupportedInputScript = errors.New("input script is not the wallet taproot script")
)
