package application_test

import (
	"context"

	"github.com/pegin-network/pegin-daemon/internal/core/domain"
	"github.com/pegin-network/pegin-daemon/pkg/coordinator"
	"github.com/pegin-network/pegin-daemon/pkg/explorer"
	"github.com/pegin-network/pegin-daemon/pkg/ordinals"
	"github.com/stretchr/testify/mock"
)

// Explorer
type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) GetUnspents(addr string) ([]explorer.Utxo, error) {
	args := m.Called(addr)

	var res []explorer.Utxo
	if a := args.Get(0); a != nil {
		res = a.([]explorer.Utxo)
	}
	return res, args.Error(1)
}

func (m *mockExplorer) GetTransactionHex(txid string) (string, error) {
	args := m.Called(txid)
	return args.String(0), args.Error(1)
}

func (m *mockExplorer) IsTransactionConfirmed(txid string) (bool, error) {
	args := m.Called(txid)
	return args.Bool(0), args.Error(1)
}

func (m *mockExplorer) GetTransactionStatus(
	txid string,
) (explorer.TransactionStatus, error) {
	args := m.Called(txid)

	var res explorer.TransactionStatus
	if a := args.Get(0); a != nil {
		res = a.(explorer.TransactionStatus)
	}
	return res, args.Error(1)
}

func (m *mockExplorer) GetFeeEstimates() (map[string]float64, error) {
	args := m.Called()

	var res map[string]float64
	if a := args.Get(0); a != nil {
		res = a.(map[string]float64)
	}
	return res, args.Error(1)
}

func (m *mockExplorer) BroadcastTransaction(txhex string) (string, error) {
	args := m.Called(txhex)
	return args.String(0), args.Error(1)
}

func (m *mockExplorer) GetBlockHeight() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

// Utxo
type mockUtxo struct {
	hash      string
	index     uint32
	value     uint64
	script    []byte
	confirmed bool
}

func (m mockUtxo) Hash() string      { return m.hash }
func (m mockUtxo) Index() uint32     { return m.index }
func (m mockUtxo) Value() uint64     { return m.value }
func (m mockUtxo) Script() []byte    { return m.script }
func (m mockUtxo) IsConfirmed() bool { return m.confirmed }

// Ordinals index
type mockOrdinals struct {
	mock.Mock
}

func (m *mockOrdinals) GetOutput(
	txid string, vout uint32,
) (ordinals.Output, error) {
	args := m.Called(txid, vout)

	var res ordinals.Output
	if a := args.Get(0); a != nil {
		res = a.(ordinals.Output)
	}
	return res, args.Error(1)
}

// Coordinator
type mockCoordinator struct {
	mock.Mock
}

func (m *mockCoordinator) RegisterDeposit(
	args coordinator.RegisterDepositArgs,
) (coordinator.DepositInfo, error) {
	called := m.Called(args)

	var res coordinator.DepositInfo
	if a := called.Get(0); a != nil {
		res = a.(coordinator.DepositInfo)
	}
	return res, called.Error(1)
}

func (m *mockCoordinator) GetDeposit(
	txid string, vout uint32,
) (coordinator.DepositInfo, error) {
	called := m.Called(txid, vout)

	var res coordinator.DepositInfo
	if a := called.Get(0); a != nil {
		res = a.(coordinator.DepositInfo)
	}
	return res, called.Error(1)
}

// DepositRepository
type mockDepositRepository struct {
	mock.Mock
}

func (m *mockDepositRepository) AddDeposit(
	ctx context.Context, deposit domain.Deposit,
) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

func (m *mockDepositRepository) GetDeposit(
	ctx context.Context, txid string, vout uint32,
) (*domain.Deposit, error) {
	args := m.Called(ctx, txid, vout)

	var res *domain.Deposit
	if a := args.Get(0); a != nil {
		res = a.(*domain.Deposit)
	}
	return res, args.Error(1)
}

func (m *mockDepositRepository) UpdateDeposit(
	ctx context.Context, txid string, vout uint32,
	updateFn func(deposit *domain.Deposit) (*domain.Deposit, error),
) error {
	args := m.Called(ctx, txid, vout, updateFn)
	return args.Error(0)
}

func (m *mockDepositRepository) GetAllDeposits(
	ctx context.Context,
) ([]domain.Deposit, error) {
	args := m.Called(ctx)

	var res []domain.Deposit
	if a := args.Get(0); a != nil {
		res = a.([]domain.Deposit)
	}
	return res, args.Error(1)
}
