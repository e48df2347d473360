package wallet_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/pegin-network/pegin-daemon/internal/core/domain"
	"github.com/pegin-network/pegin-daemon/pkg/wallet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	walletKeyBytes, _ = hex.DecodeString(
		"aabbccddeeff00112233445566778899aabbccddeeff001122334455667788aa",
	)
	depositKeyBytes, _ = hex.DecodeString(
		"1122334455667788991122334455667788991122334455667788991122334455",
	)
)

func newTestWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	key, _ := btcec.PrivKeyFromBytes(walletKeyBytes)
	w, err := wallet.NewWalletFromKey(key, &chaincfg.RegressionNetParams)
	require.NoError(t, err)
	return w
}

// testDepositScript returns a taproot script unrelated to the wallet key,
// standing in for the script-path deposit output.
func testDepositScript(t *testing.T) []byte {
	t.Helper()
	key, _ := btcec.PrivKeyFromBytes(depositKeyBytes)
	w, err := wallet.NewWalletFromKey(key, &chaincfg.RegressionNetParams)
	require.NoError(t, err)
	script, err := w.TaprootScript()
	require.NoError(t, err)
	return script
}

func testUnspents(t *testing.T, w *wallet.Wallet) []domain.Unspent {
	t.Helper()
	script, err := w.TaprootScript()
	require.NoError(t, err)

	return []domain.Unspent{
		{
			TxID:           "aa00000000000000000000000000000000000000000000000000000000000001",
			VOut:           0,
			Value:          150000,
			Script:         script,
			Confirmed:      true,
			Classification: domain.ClassificationCardinal,
		},
		{
			TxID:           "aa00000000000000000000000000000000000000000000000000000000000002",
			VOut:           1,
			Value:          60000,
			Script:         script,
			Confirmed:      true,
			Classification: domain.ClassificationCardinal,
		},
		{
			TxID:           "aa00000000000000000000000000000000000000000000000000000000000003",
			VOut:           0,
			Value:          80000,
			Script:         script,
			Confirmed:      true,
			Classification: domain.ClassificationOrdinal,
		},
	}
}

func TestNewWalletFromWIFRejectsBadInput(t *testing.T) {
	_, err := wallet.NewWalletFromWIF("", &chaincfg.RegressionNetParams)
	require.EqualError(t, err, wallet.ErrNullSigningKey.Error())

	_, err = wallet.NewWalletFromWIF("notawif", &chaincfg.RegressionNetParams)
	require.Error(t, err)
}

func TestTaprootAddress(t *testing.T) {
	w := newTestWallet(t)

	addr, err := w.TaprootAddress()
	require.NoError(t, err)
	require.Equal(t, "bcrt", addr.Hrp())
	require.Len(t, addr.WitnessProgram(), 32)

	script, err := w.TaprootScript()
	require.NoError(t, err)
	require.Len(t, script, 34)
	require.Equal(t, byte(txscript.OP_1), script[0])
}

func TestEstimateTxSize(t *testing.T) {
	oneIn := wallet.EstimateTxSize(
		[]int{wallet.P2TR}, []int{wallet.P2TR, wallet.P2TR},
	)
	require.Equal(t, 154, oneIn)

	twoIns := wallet.EstimateTxSize(
		[]int{wallet.P2TR, wallet.P2TR}, []int{wallet.P2TR, wallet.P2TR},
	)
	require.Equal(t, 212, twoIns)
}

func TestEstimateFees(t *testing.T) {
	fee := wallet.EstimateFees(
		[]int{wallet.P2TR}, []int{wallet.P2TR, wallet.P2TR},
		decimal.NewFromInt(1),
	)
	require.Equal(t, uint64(154), fee)

	// Fractional rates round up to the next satoshi.
	fee = wallet.EstimateFees(
		[]int{wallet.P2TR}, []int{wallet.P2TR, wallet.P2TR},
		decimal.NewFromFloat(1.01),
	)
	require.Equal(t, uint64(156), fee)
}

func TestCreateAndSignDepositTx(t *testing.T) {
	w := newTestWallet(t)
	depositScript := testDepositScript(t)
	unspents := testUnspents(t, w)

	res, err := w.CreateAndSignDepositTx(wallet.CreateDepositTxOpts{
		Unspents:      unspents,
		DepositScript: depositScript,
		Amount:        100000,
		SatsPerVByte:  decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, uint32(0), res.VOut)
	require.Equal(t, uint64(154), res.FeePaid)

	rawTx, err := hex.DecodeString(res.TxHex)
	require.NoError(t, err)
	tx := &wire.MsgTx{}
	require.NoError(t, tx.Deserialize(bytes.NewReader(rawTx)))
	require.Equal(t, res.TxID, tx.TxHash().String())

	// The largest cardinal output alone covers amount plus fee; the
	// ordinal-bearing one must never appear among the inputs.
	require.Len(t, tx.TxIn, 1)
	require.Equal(t, unspents[0].TxID, tx.TxIn[0].PreviousOutPoint.Hash.String())

	// Deposit output at index 0, paying exactly the requested amount.
	require.Len(t, tx.TxOut, 2)
	require.Equal(t, int64(100000), tx.TxOut[0].Value)
	require.Equal(t, depositScript, tx.TxOut[0].PkScript)

	walletScript, err := w.TaprootScript()
	require.NoError(t, err)
	require.Equal(t, walletScript, tx.TxOut[1].PkScript)
	require.Equal(t, int64(res.Change), tx.TxOut[1].Value)

	// inputs = outputs + fee
	require.Equal(
		t,
		int64(unspents[0].Value),
		tx.TxOut[0].Value+tx.TxOut[1].Value+int64(res.FeePaid),
	)

	// Every input must carry a valid key-spend witness.
	prevOuts := map[wire.OutPoint]*wire.TxOut{
		tx.TxIn[0].PreviousOutPoint: wire.NewTxOut(
			int64(unspents[0].Value), walletScript,
		),
	}
	fetcher := txscript.NewMultiPrevOutFetcher(prevOuts)
	sigHashes := txscript.NewTxSigHashes(tx, fetcher)
	for i, txIn := range tx.TxIn {
		prevOut := prevOuts[txIn.PreviousOutPoint]
		engine, err := txscript.NewEngine(
			prevOut.PkScript, tx, i, txscript.StandardVerifyFlags,
			nil, sigHashes, prevOut.Value, fetcher,
		)
		require.NoError(t, err)
		require.NoError(t, engine.Execute())
	}
}

func TestCreateDepositTxInsufficientFunds(t *testing.T) {
	w := newTestWallet(t)
	script, err := w.TaprootScript()
	require.NoError(t, err)

	unspents := []domain.Unspent{
		{
			TxID:           "bb00000000000000000000000000000000000000000000000000000000000001",
			Value:          50000,
			Script:         script,
			Confirmed:      true,
			Classification: domain.ClassificationCardinal,
		},
		{
			TxID:           "bb00000000000000000000000000000000000000000000000000000000000002",
			Value:          40000,
			Script:         script,
			Confirmed:      true,
			Classification: domain.ClassificationCardinal,
		},
		{
			TxID:           "bb00000000000000000000000000000000000000000000000000000000000003",
			Value:          80000,
			Script:         script,
			Confirmed:      true,
			Classification: domain.ClassificationOrdinal,
		},
	}

	_, err = w.CreateAndSignDepositTx(wallet.CreateDepositTxOpts{
		Unspents:      unspents,
		DepositScript: testDepositScript(t),
		Amount:        100000,
		SatsPerVByte:  decimal.NewFromInt(1),
	})
	require.True(t, errors.Is(err, domain.ErrInsufficientFunds))

	var insufficientErr domain.InsufficientFundsError
	require.True(t, errors.As(err, &insufficientErr))
	// 100000 + 212 (fee of the 2-in 2-out shape) - 90000 eligible
	require.Equal(t, uint64(10212), insufficientErr.Shortfall)

	// The same balance succeeds once ordinal-bearing outputs are allowed.
	res, err := w.CreateAndSignDepositTx(wallet.CreateDepositTxOpts{
		Unspents:        unspents,
		DepositScript:   testDepositScript(t),
		Amount:          100000,
		SatsPerVByte:    decimal.NewFromInt(1),
		IncludeOrdinals: true,
	})
	require.NoError(t, err)
	require.Equal(t, uint32(0), res.VOut)
}

func TestCreateDepositTxChangeBelowDustGoesToFee(t *testing.T) {
	w := newTestWallet(t)
	script, err := w.TaprootScript()
	require.NoError(t, err)

	unspents := []domain.Unspent{
		{
			TxID:           "cc00000000000000000000000000000000000000000000000000000000000001",
			Value:          100454,
			Script:         script,
			Confirmed:      true,
			Classification: domain.ClassificationCardinal,
		},
	}

	res, err := w.CreateAndSignDepositTx(wallet.CreateDepositTxOpts{
		Unspents:      unspents,
		DepositScript: testDepositScript(t),
		Amount:        100000,
		SatsPerVByte:  decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	require.Equal(t, uint64(0), res.Change)
	require.Equal(t, uint64(454), res.FeePaid)

	rawTx, err := hex.DecodeString(res.TxHex)
	require.NoError(t, err)
	tx := &wire.MsgTx{}
	require.NoError(t, tx.Deserialize(bytes.NewReader(rawTx)))
	require.Len(t, tx.TxOut, 1)
	require.Equal(t, int64(100000), tx.TxOut[0].Value)
}

func TestCreateDepositTxInvalidOpts(t *testing.T) {
	w := newTestWallet(t)
	unspents := testUnspents(t, w)
	depositScript := testDepositScript(t)

	tests := []struct {
		name string
		opts wallet.CreateDepositTxOpts
		err  error
	}{
		{
			name: "missing unspents",
			opts: wallet.CreateDepositTxOpts{
				DepositScript: depositScript,
				Amount:        100000,
				SatsPerVByte:  decimal.NewFromInt(1),
			},
			err: wallet.ErrNullUnspents,
		},
		{
			name: "missing deposit script",
			opts: wallet.CreateDepositTxOpts{
				Unspents:     unspents,
				Amount:       100000,
				SatsPerVByte: decimal.NewFromInt(1),
			},
			err: wallet.ErrNullDepositScript,
		},
		{
			name: "zero amount",
			opts: wallet.CreateDepositTxOpts{
				Unspents:      unspents,
				DepositScript: depositScript,
				SatsPerVByte:  decimal.NewFromInt(1),
			},
			err: wallet.ErrInvalidAmount,
		},
		{
			name: "zero fee rate",
			opts: wallet.CreateDepositTxOpts{
				Unspents:      unspents,
				DepositScript: depositScript,
				Amount:        100000,
			},
			err: wallet.ErrInvalidFeeRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.CreateAndSignDepositTx(tt.opts)
			require.EqualError(t, err, tt.err.Error())
		})
	}
}
