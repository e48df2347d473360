package dbbadger

import (
	"context"

	"github.com/pegin-network/pegin-daemon/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type depositRepositoryImpl struct {
	store *badgerhold.Store
}

// NewDepositRepositoryImpl initialize a badger implementation of the
// domain.DepositRepository
func NewDepositRepositoryImpl(store *badgerhold.Store) domain.DepositRepository {
	return depositRepositoryImpl{store}
}

func (d depositRepositoryImpl) AddDeposit(
	ctx context.Context,
	deposit domain.Deposit,
) error {
	if err := d.store.Insert(deposit.Key(), &deposit); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrDepositRecordAlreadyExists
		}
		return err
	}
	return nil
}

func (d depositRepositoryImpl) GetDeposit(
	ctx context.Context,
	txid string,
	vout uint32,
) (*domain.Deposit, error) {
	return d.getDeposit(txid, vout)
}

func (d depositRepositoryImpl) UpdateDeposit(
	ctx context.Context,
	txid string,
	vout uint32,
	updateFn func(deposit *domain.Deposit) (*domain.Deposit, error),
) error {
	currentDeposit, err := d.getDeposit(txid, vout)
	if err != nil {
		return err
	}

	updatedDeposit, err := updateFn(currentDeposit)
	if err != nil {
		return err
	}

	return d.store.Update(updatedDeposit.Key(), updatedDeposit)
}

func (d depositRepositoryImpl) GetAllDeposits(
	ctx context.Context,
) ([]domain.Deposit, error) {
	var deposits []domain.Deposit
	if err := d.store.Find(&deposits, nil); err != nil {
		return nil, err
	}
	return deposits, nil
}

func (d depositRepositoryImpl) getDeposit(
	txid string,
	vout uint32,
) (*domain.Deposit, error) {
	key := domain.Deposit{TxID: txid, VOut: vout}.Key()

	var deposit domain.Deposit
	if err := d.store.Get(key, &deposit); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrDepositRecordNotFound
		}
		return nil, err
	}
	return &deposit, nil
}
