package domain

import (
	"sort"
)

// SelectUnspents performs a coin selection over the given list of unspents to
// cover targetAmount plus the network fee of the resulting transaction shape.
// The fee is recomputed through feeForShape every time an input is added,
// since the transaction virtual size grows with each one. Unspents are
// accumulated largest-first, which guarantees termination with the fewest
// iterations; minimality of the selection is not a goal.
//
// The leftover is returned as change. A leftover below dustThreshold is added
// to the fee instead, so the caller never creates an unspendable output.
func SelectUnspents(
	unspents []Unspent,
	targetAmount uint64,
	includeOrdinals bool,
	dustThreshold uint64,
	feeForShape func(numIns int) uint64,
) (selected []Unspent, fee uint64, change uint64, err error) {
	eligible := make([]Unspent, 0, len(unspents))
	for i := range unspents {
		if unspents[i].IsSpendable(includeOrdinals) {
			eligible = append(eligible, unspents[i])
		}
	}
	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].Value > eligible[j].Value
	})

	selected = make([]Unspent, 0, len(eligible))
	totalAmount := uint64(0)
	for i := range eligible {
		selected = append(selected, eligible[i])
		totalAmount += eligible[i].Value

		fee = feeForShape(len(selected))
		if totalAmount >= targetAmount+fee {
			change = totalAmount - targetAmount - fee
			if change < dustThreshold {
				fee += change
				change = 0
			}
			return selected, fee, change, nil
		}
	}

	required := targetAmount + feeForShape(len(eligible))
	return nil, 0, 0, InsufficientFundsError{
		Shortfall: required - totalAmount,
	}
}
