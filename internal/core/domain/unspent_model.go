package domain

// Classification tags an unspent output according to the inscription index.
// Outputs the index could not vouch for stay Unknown and are never spent.
type Classification int

const (
	// ClassificationUnknown means the index gave no answer for the output.
	ClassificationUnknown Classification = iota
	// ClassificationCardinal marks an output holding only fungible satoshis.
	ClassificationCardinal
	// ClassificationOrdinal marks an output carrying inscribed assets.
	ClassificationOrdinal
)

func (c Classification) String() string {
	switch c {
	case ClassificationCardinal:
		return "cardinal"
	case ClassificationOrdinal:
		return "ordinal"
	default:
		return "unknown"
	}
}

// UnspentKey represent the ID of an Unspent, composed by its txid and vout.
type UnspentKey struct {
	TxID string
	VOut uint32
}

// Unspent is the data structure representing a Bitcoin UTXO along with its
// classification. It is a snapshot taken at selection time: it becomes stale
// the moment a spend of it hits the network.
type Unspent struct {
	TxID           string
	VOut           uint32
	Value          uint64
	Script         []byte
	Address        string
	Confirmed      bool
	Classification Classification
}

// Key returns the ID of the Unspent.
func (u Unspent) Key() UnspentKey {
	return UnspentKey{
		TxID: u.TxID,
		VOut: u.VOut,
	}
}

// IsSpendable returns whether the output may fund a deposit. Ordinal-bearing
// outputs qualify only under explicit override, unknown ones never do.
func (u Unspent) IsSpendable(includeOrdinals bool) bool {
	switch u.Classification {
	case ClassificationCardinal:
		return true
	case ClassificationOrdinal:
		return includeOrdinals
	default:
		return false
	}
}
