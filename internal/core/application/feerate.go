package application

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pegin-network/pegin-daemon/pkg/explorer"
	"github.com/shopspring/decimal"
)

// resolveFeeRate turns a FeeRate into a concrete sat/vByte figure. Explicit
// rates pass through untouched, tiers are resolved against the explorer
// estimates: the estimate of the largest confirmation target not above the
// tier's one wins, so a sparse estimates table degrades towards paying more,
// never less.
func resolveFeeRate(
	explorerSvc explorer.Service, feeRate FeeRate,
) (decimal.Decimal, error) {
	if feeRate.IsExplicit() {
		return feeRate.explicit, nil
	}

	estimates, err := explorerSvc.GetFeeEstimates()
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrFeeEstimatesUnavailable, err)
	}
	if len(estimates) <= 0 {
		return decimal.Zero, ErrFeeEstimatesUnavailable
	}

	targets := make([]int, 0, len(estimates))
	rateByTarget := make(map[int]float64, len(estimates))
	for k, v := range estimates {
		target, err := strconv.Atoi(k)
		if err != nil || target <= 0 || v <= 0 {
			continue
		}
		targets = append(targets, target)
		rateByTarget[target] = v
	}
	if len(targets) <= 0 {
		return decimal.Zero, ErrFeeEstimatesUnavailable
	}
	sort.Ints(targets)

	desired := confTargetByTier[feeRate.tier]
	chosen := targets[0]
	for _, target := range targets {
		if target > desired {
			break
		}
		chosen = target
	}

	return decimal.NewFromFloat(rateByTarget[chosen]), nil
}
