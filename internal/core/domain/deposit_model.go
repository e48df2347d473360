package domain

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/google/uuid"
)

// DepositStatus is the normalized lifecycle state of a deposit as observed
// through the peg coordinator.
type DepositStatus int

const (
	// DepositStatusPending means the deposit is on the base chain but the
	// signers have not acted on it yet.
	DepositStatusPending DepositStatus = iota
	// DepositStatusConfirmed means the deposit gathered enough confirmations
	// and awaits the settlement-layer mint.
	DepositStatusConfirmed
	// DepositStatusMinted means the settlement-layer credit has been issued.
	DepositStatusMinted
	// DepositStatusReclaimable means the signers did not act and the reclaim
	// path is (or will become) spendable by the depositor.
	DepositStatusReclaimable
	// DepositStatusNotFound means the coordinator has no record of the
	// deposit. It is a normal result, distinct from a transport error.
	DepositStatusNotFound
)

func (s DepositStatus) String() string {
	switch s {
	case DepositStatusPending:
		return "pending"
	case DepositStatusConfirmed:
		return "confirmed"
	case DepositStatusMinted:
		return "minted"
	case DepositStatusReclaimable:
		return "reclaimable"
	case DepositStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Deposit holds all the info about a broadcast deposit transaction needed to
// register it with the peg coordinator and to follow it up later. It is
// persisted right after broadcast so that a failed registration can be
// retried even across process restarts, without rebuilding or rebroadcasting
// the transaction.
type Deposit struct {
	AttemptID       uuid.UUID
	TxID            string
	VOut            uint32
	Amount          uint64
	Recipient       string
	MaxSignerFee    uint64
	ReclaimLockTime uint32
	DepositScript   []byte
	ReclaimScript   []byte
	DepositAddress  string
	FeePaid         uint64
	FeeRate         string
	Registered      bool
	Timestamp       int64
}

// Key returns the unique identifier of the deposit record.
func (d Deposit) Key() string {
	buf := []byte(fmt.Sprintf("%s:%d", d.TxID, d.VOut))
	key := hex.EncodeToString(btcutil.Hash160(buf))
	return key
}
