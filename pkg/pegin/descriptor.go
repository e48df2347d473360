package pegin

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// ErrInvalidDepositParameters is returned when the deposit amount, signer fee
// or lock time violate the protocol bounds. It is always raised before any
// network or signing work.
var ErrInvalidDepositParameters = errors.New("invalid deposit parameters")

// DepositDescriptor is the value object binding a deposit attempt to its
// derived script material. It is immutable after construction: the same
// inputs always derive byte-identical scripts and the same address, which the
// remote signer set relies on to validate deposits independently.
type DepositDescriptor struct {
	Amount          uint64
	Recipient       Principal
	MaxSignerFee    uint64
	ReclaimLockTime uint32
	DepositScript   []byte
	ReclaimScript   []byte
	Address         *btcutil.AddressTaproot
}

// NewDepositDescriptorOpts is the struct given to NewDepositDescriptor.
type NewDepositDescriptorOpts struct {
	Amount          uint64
	Recipient       Principal
	ReclaimKey      *btcec.PublicKey
	MaxSignerFee    uint64
	ReclaimLockTime uint32
	SignersKey      *btcec.PublicKey
	Net             *chaincfg.Params
}

func (o NewDepositDescriptorOpts) validate() error {
	if o.Amount <= DustThreshold {
		return fmt.Errorf(
			"%w: amount (%d) must be above the dust threshold (%d)",
			ErrInvalidDepositParameters, o.Amount, DustThreshold,
		)
	}
	if o.MaxSignerFee >= o.Amount {
		return fmt.Errorf(
			"%w: max signer fee (%d) must be lower than amount (%d)",
			ErrInvalidDepositParameters, o.MaxSignerFee, o.Amount,
		)
	}
	if o.ReclaimLockTime < MinReclaimLockTime ||
		o.ReclaimLockTime > MaxReclaimLockTime {
		return fmt.Errorf(
			"%w: reclaim lock time (%d) must be in range [%d, %d]",
			ErrInvalidDepositParameters, o.ReclaimLockTime,
			MinReclaimLockTime, MaxReclaimLockTime,
		)
	}
	if o.ReclaimKey == nil {
		return fmt.Errorf("%w: missing reclaim key", ErrInvalidDepositParameters)
	}
	if o.SignersKey == nil {
		return fmt.Errorf("%w: missing signers key", ErrInvalidDepositParameters)
	}
	if o.Net == nil {
		return fmt.Errorf("%w: missing network", ErrInvalidDepositParameters)
	}
	return nil
}

// NewDepositDescriptor derives the deposit and reclaim scripts and the
// taproot deposit address for the given parameters. The derivation is a pure
// function of its inputs.
func NewDepositDescriptor(
	opts NewDepositDescriptorOpts,
) (*DepositDescriptor, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	depositScript, err := DepositScript(
		opts.MaxSignerFee, opts.Recipient, opts.SignersKey,
	)
	if err != nil {
		return nil, err
	}

	reclaimScript, err := ReclaimScript(opts.ReclaimLockTime, opts.ReclaimKey)
	if err != nil {
		return nil, err
	}

	addr, err := DepositTaprootAddress(depositScript, reclaimScript, opts.Net)
	if err != nil {
		return nil, err
	}

	return &DepositDescriptor{
		Amount:          opts.Amount,
		Recipient:       opts.Recipient,
		MaxSignerFee:    opts.MaxSignerFee,
		ReclaimLockTime: opts.ReclaimLockTime,
		DepositScript:   depositScript,
		ReclaimScript:   reclaimScript,
		Address:         addr,
	}, nil
}
