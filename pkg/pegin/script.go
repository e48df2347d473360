package pegin

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

const (
	// DustThreshold is the minimum value in satoshis for an output to be
	// considered economically spendable.
	DustThreshold = 546

	// MinReclaimLockTime and MaxReclaimLockTime bound the relative block
	// height gate of the reclaim path. The upper bound is the largest value
	// a sequence-encoded relative height lock can express.
	MinReclaimLockTime = 1
	MaxReclaimLockTime = 65535
)

// unspendableKeyHex is the BIP-341 nothing-up-my-sleeve point. Using it as
// taproot internal key disables the key-spend path, so the deposit can only
// be moved through one of the two script leaves.
const unspendableKeyHex = "50929b74c1a04954b78b4b6035e97a5e078a5a0f28ec96d547bfee9ace803ac0"

// UnspendableInternalKey returns the internal key committed to by every
// deposit address.
func UnspendableInternalKey() *btcec.PublicKey {
	keyBytes, _ := hex.DecodeString(unspendableKeyHex)
	key, _ := schnorr.ParsePubKey(keyBytes)
	return key
}

// DepositScript returns the leaf script of the cooperative spending path:
//
//	<max_signer_fee (8 bytes BE) || serialized recipient principal>
//	OP_DROP <signers aggregate x-only key> OP_CHECKSIG
//
// The signer set recomputes this script from the registered deposit to
// validate the payment, so the byte layout must not change.
func DepositScript(
	maxSignerFee uint64, recipient Principal, signersKey *btcec.PublicKey,
) ([]byte, error) {
	recipientBytes := recipient.Serialize()
	data := make([]byte, 8, 8+len(recipientBytes))
	binary.BigEndian.PutUint64(data, maxSignerFee)
	data = append(data, recipientBytes...)

	return txscript.NewScriptBuilder().
		AddData(data).
		AddOp(txscript.OP_DROP).
		AddData(schnorr.SerializePubKey(signersKey)).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}

// ReclaimScript returns the leaf script of the unilateral spending path:
//
//	<lock_time> OP_CHECKSEQUENCEVERIFY OP_DROP
//	<reclaim x-only key> OP_CHECKSIG
//
// The path becomes spendable by the depositor once lockTime blocks have
// elapsed on top of the deposit transaction.
func ReclaimScript(lockTime uint32, reclaimKey *btcec.PublicKey) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddInt64(int64(lockTime)).
		AddOp(txscript.OP_CHECKSEQUENCEVERIFY).
		AddOp(txscript.OP_DROP).
		AddData(schnorr.SerializePubKey(reclaimKey)).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}

// DepositTaprootAddress assembles the two leaf scripts into a taproot script
// tree committed to by the unspendable internal key and returns the
// resulting deposit address.
func DepositTaprootAddress(
	depositScript, reclaimScript []byte, net *chaincfg.Params,
) (*btcutil.AddressTaproot, error) {
	depositLeaf := txscript.NewBaseTapLeaf(depositScript)
	reclaimLeaf := txscript.NewBaseTapLeaf(reclaimScript)
	tree := txscript.AssembleTaprootScriptTree(depositLeaf, reclaimLeaf)
	root := tree.RootNode.TapHash()

	outputKey := txscript.ComputeTaprootOutputKey(
		UnspendableInternalKey(), root[:],
	)

	return btcutil.NewAddressTaproot(schnorr.SerializePubKey(outputKey), net)
}
