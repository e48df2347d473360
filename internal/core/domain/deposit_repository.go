package domain

import "context"

// DepositRepository is the abstraction for any kind of database intended to
// persist broadcast Deposits.
type DepositRepository interface {
	// AddDeposit adds the provided deposit to the repository.
	AddDeposit(ctx context.Context, deposit Deposit) error
	// GetDeposit returns the deposit identified by the given outpoint, or
	// ErrDepositRecordNotFound.
	GetDeposit(ctx context.Context, txid string, vout uint32) (*Deposit, error)
	// UpdateDeposit atomically applies updateFn to the deposit identified by
	// the given outpoint and persists the result.
	UpdateDeposit(
		ctx context.Context, txid string, vout uint32,
		updateFn func(deposit *Deposit) (*Deposit, error),
	) error
	// GetAllDeposits returns all recorded deposits.
	GetAllDeposits(ctx context.Context) ([]Deposit, error)
}
