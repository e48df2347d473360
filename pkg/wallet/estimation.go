package wallet

import (
	"github.com/shopspring/decimal"
)

const (
	P2WPKH = iota
	P2WSH
	P2TR
)

// EstimateTxSize makes an estimation of the virtual size of a transaction
// for which is required to specify the type of the inputs and outputs
// according to the supported segwit script types (P2WPKH, P2WSH, P2TR).
func EstimateTxSize(inScriptTypes, outScriptTypes []int) int {
	baseSize := calcTxSize(false, inScriptTypes, outScriptTypes)
	totalSize := calcTxSize(true, inScriptTypes, outScriptTypes)

	weight := baseSize*3 + totalSize
	vsize := (weight + 3) / 4

	return vsize
}

// EstimateFees returns the fee in satoshis for a transaction of the given
// shape at the given rate, rounded up to the next satoshi.
func EstimateFees(
	inScriptTypes, outScriptTypes []int, satsPerVByte decimal.Decimal,
) uint64 {
	vsize := EstimateTxSize(inScriptTypes, outScriptTypes)
	fee := satsPerVByte.Mul(decimal.NewFromInt(int64(vsize))).Ceil()
	return uint64(fee.IntPart())
}

var (
	// empty scriptsig, still its length is serialized
	scriptSigSizeByScriptType = map[int]int{
		P2WPKH: 1,
		P2WSH:  1,
		P2TR:   1,
	}
	// len + opcodes + program
	scriptPubKeySizeByScriptType = map[int]int{
		P2WPKH: 23,
		P2WSH:  35,
		P2TR:   35,
	}
	// witness stack of a standard spend, including the item count
	witnessSizeByScriptType = map[int]int{
		// count + sig with sighash byte + compressed pubkey
		P2WPKH: 1 + 73 + 34,
		// count + 64-byte schnorr sig of a key spend
		P2TR: 1 + 65,
		// no sane default exists, spends vary with the script
		P2WSH: 1 + 65,
	}
)

func calcTxSize(withWitness bool, inScriptTypes, outScriptTypes []int) int {
	// version + locktime
	txSize := 8 +
		varIntSerializeSize(uint64(len(inScriptTypes))) +
		varIntSerializeSize(uint64(len(outScriptTypes)))

	// hash + index + sequence
	inBaseSize := 40
	for _, scriptType := range inScriptTypes {
		txSize += inBaseSize + scriptSigSizeByScriptType[scriptType]
	}

	// value
	outBaseSize := 8
	for _, scriptType := range outScriptTypes {
		txSize += outBaseSize + scriptPubKeySizeByScriptType[scriptType]
	}

	if withWitness {
		// marker + flag
		txSize += 2
		for _, scriptType := range inScriptTypes {
			txSize += witnessSizeByScriptType[scriptType]
		}
	}

	return txSize
}

func varIntSerializeSize(val uint64) int {
	if val < 0xfd {
		return 1
	}
	if val <= 0xffff {
		return 3
	}
	if val <= 0xffffffff {
		return 5
	}
	return 9
}
