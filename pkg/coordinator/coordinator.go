package coordinator

import "errors"

// ErrDepositNotFound is returned when the coordinator has no record for the
// requested outpoint. It is a normal outcome for deposits the signers have
// not indexed yet, not a transport failure.
var ErrDepositNotFound = errors.New("deposit not found")

// Deposit lifecycle states as reported by the coordinator.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusMinted   = "minted"
	StatusFailed   = "failed"
)

// RegisterDepositArgs is the script material the signer set needs to
// recognize a deposit payment without rescanning scripts themselves.
type RegisterDepositArgs struct {
	TxID          string `json:"bitcoin_txid"`
	OutputIndex   uint32 `json:"bitcoin_tx_output_index"`
	DepositScript string `json:"deposit_script"`
	ReclaimScript string `json:"reclaim_script"`
}

// DepositInfo is the coordinator's view of a registered deposit.
type DepositInfo struct {
	TxID             string `json:"bitcoin_txid"`
	OutputIndex      uint32 `json:"bitcoin_tx_output_index"`
	Recipient        string `json:"recipient"`
	Amount           uint64 `json:"amount"`
	Status           string `json:"status"`
	StatusMessage    string `json:"status_message"`
	LastUpdateHeight uint64 `json:"last_update_height"`
	FulfillmentTxID  string `json:"fulfillment_txid,omitempty"`
}

// Service is the representation of the off-chain peg coordinator that tracks
// deposits on behalf of the signer set.
type Service interface {
	// RegisterDeposit hands the deposit and reclaim script material over to
	// the coordinator. Registration is idempotent and safe to retry.
	RegisterDeposit(args RegisterDepositArgs) (DepositInfo, error)
	// GetDeposit returns the lifecycle state of the deposit identified by the
	// given outpoint, or ErrDepositNotFound if the coordinator has no record
	// of it.
	GetDeposit(txid string, vout uint32) (DepositInfo, error)
}
