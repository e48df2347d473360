package wallet

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/pegin-network/pegin-daemon/internal/core/domain"
	"github.com/pegin-network/pegin-daemon/pkg/pegin"
	"github.com/shopspring/decimal"
)

// CreateDepositTxOpts is the struct given to CreateAndSignDepositTx method.
type CreateDepositTxOpts struct {
	Unspents        []domain.Unspent
	DepositScript   []byte
	Amount          uint64
	SatsPerVByte    decimal.Decimal
	IncludeOrdinals bool
}

func (o CreateDepositTxOpts) validate() error {
	if len(o.Unspents) <= 0 {
		return ErrNullUnspents
	}
	if len(o.DepositScript) <= 0 {
		return ErrNullDepositScript
	}
	if o.Amount <= 0 {
		return ErrInvalidAmount
	}
	if o.SatsPerVByte.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidFeeRate
	}
	return nil
}

// DepositTx is the funded and signed deposit transaction along with the
// details the caller needs to register and track it.
type DepositTx struct {
	TxID    string
	TxHex   string
	VOut    uint32
	FeePaid uint64
	Change  uint64
}

// CreateAndSignDepositTx selects wallet unspents covering amount plus fees,
// assembles a transaction paying exactly amount to the deposit script at
// output 0, sends any non-dust change back to the wallet address, and signs
// every input with a taproot key spend.
func (w *Wallet) CreateAndSignDepositTx(opts CreateDepositTxOpts) (*DepositTx, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	walletScript, err := w.TaprootScript()
	if err != nil {
		return nil, err
	}

	// The fee is recomputed for each candidate shape: all inputs are wallet
	// taproot spends, outputs are the deposit output plus a change output.
	// Over-estimating by one change output when change ends up absorbed is
	// at most a handful of satoshis.
	feeForShape := func(numIns int) uint64 {
		ins := make([]int, numIns)
		for i := range ins {
			ins[i] = P2TR
		}
		return EstimateFees(ins, []int{P2TR, P2TR}, opts.SatsPerVByte)
	}

	selected, fee, change, err := domain.SelectUnspents(
		opts.Unspents, opts.Amount, opts.IncludeOrdinals,
		pegin.DustThreshold, feeForShape,
	)
	if err != nil {
		return nil, err
	}

	tx := wire.NewMsgTx(2)

	prevOuts := make(map[wire.OutPoint]*wire.TxOut)
	for _, u := range selected {
		prevHash, err := chainhash.NewHashFromStr(u.TxID)
		if err != nil {
			return nil, err
		}
		outpoint := wire.NewOutPoint(prevHash, u.VOut)
		tx.AddTxIn(wire.NewTxIn(outpoint, nil, nil))

		script := u.Script
		if len(script) <= 0 {
			script = walletScript
		}
		if !bytes.Equal(script, walletScript) {
			return nil, ErrUnsupportedInputScript
		}
		prevOuts[*outpoint] = wire.NewTxOut(int64(u.Value), script)
	}

	// The deposit output always sits at index 0 and pays exactly the
	// requested amount, fees are never deducted from it.
	tx.AddTxOut(wire.NewTxOut(int64(opts.Amount), opts.DepositScript))
	if change > 0 {
		tx.AddTxOut(wire.NewTxOut(int64(change), walletScript))
	}

	prevOutFetcher := txscript.NewMultiPrevOutFetcher(prevOuts)
	sigHashes := txscript.NewTxSigHashes(tx, prevOutFetcher)
	for i, txIn := range tx.TxIn {
		prevOut := prevOuts[txIn.PreviousOutPoint]
		witness, err := txscript.TaprootWitnessSignature(
			tx, sigHashes, i, prevOut.Value, prevOut.PkScript,
			txscript.SigHashDefault, w.signingKey,
		)
		if err != nil {
			return nil, err
		}
		txIn.Witness = witness
	}

	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return nil, err
	}

	return &DepositTx{
		TxID:    tx.TxHash().String(),
		TxHex:   hex.EncodeToString(buf.Bytes()),
		VOut:    0,
		FeePaid: fee,
		Change:  change,
	}, nil
}
