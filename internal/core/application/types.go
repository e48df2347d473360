package application

import (
	"strings"

	"github.com/pegin-network/pegin-daemon/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Fee rate tiers mapped to confirmation targets in blocks.
const (
	FeeRateFast   = "fast"
	FeeRateMedium = "medium"
	FeeRateSlow   = "slow"
)

var confTargetByTier = map[string]int{
	FeeRateFast:   1,
	FeeRateMedium: 6,
	FeeRateSlow:   144,
}

// FeeRate is either a named tier resolved against the explorer estimates at
// deposit time, or an explicit rate in sat/vByte.
type FeeRate struct {
	tier     string
	explicit decimal.Decimal
}

// ParseFeeRate accepts a tier name or a positive decimal number of sat/vByte.
func ParseFeeRate(s string) (FeeRate, error) {
	tier := strings.ToLower(strings.TrimSpace(s))
	if _, ok := confTargetByTier[tier]; ok {
		return FeeRate{tier: tier}, nil
	}

	rate, err := decimal.NewFromString(s)
	if err != nil || rate.LessThanOrEqual(decimal.Zero) {
		return FeeRate{}, ErrInvalidFeeRate
	}
	return FeeRate{explicit: rate}, nil
}

// IsExplicit returns whether the rate was given as a number rather than as a
// tier.
func (f FeeRate) IsExplicit() bool {
	return len(f.tier) <= 0
}

func (f FeeRate) String() string {
	if f.IsExplicit() {
		return f.explicit.String()
	}
	return f.tier
}

// DepositRequest collects the caller-provided parameters of a deposit.
type DepositRequest struct {
	Amount          uint64
	Recipient       string
	FeeRate         FeeRate
	IncludeOrdinals bool
}

// DepositResult is the outcome of a successfully broadcast deposit. It
// carries the full script material and the addresses involved so the caller
// can re-register with the coordinator even if the local record was lost.
type DepositResult struct {
	TxID           string
	VOut           uint32
	Amount         uint64
	Recipient      string
	DepositAddress string
	FundingAddress string
	DepositScript  []byte
	ReclaimScript  []byte
	FeePaid        uint64
	FeeRate        decimal.Decimal
	Registered     bool
}

// DepositStatusInfo is the reconciled view of a deposit, combining the
// coordinator state with the locally persisted record when one exists.
type DepositStatusInfo struct {
	TxID             string
	VOut             uint32
	Status           domain.DepositStatus
	StatusMessage    string
	Recipient        string
	Amount           uint64
	LastUpdateHeight uint64
	FulfillmentTxID  string
	Record           *domain.Deposit
}
