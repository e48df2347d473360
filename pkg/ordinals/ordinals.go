package ordinals

// Output is the indexed view of a transaction output as reported by an ord
// server. An output carrying at least one inscription or rune balance must
// not be spent as plain bitcoin.
type Output struct {
	Indexed      bool
	Spent        bool
	Value        uint64
	Inscriptions []string
	Runes        map[string]RuneBalance
}

// RuneBalance is the amount of a rune held by an output.
type RuneBalance struct {
	Amount       uint64 `json:"amount"`
	Divisibility int    `json:"divisibility"`
	Symbol       string `json:"symbol"`
}

// HasInscribedAssets returns whether the output carries inscriptions or rune
// balances at any satoshi offset.
func (o Output) HasInscribedAssets() bool {
	return len(o.Inscriptions) > 0 || len(o.Runes) > 0
}

// Service is the representation of an inscription index that reports, for any
// outpoint, the inscribed assets bound to it.
type Service interface {
	// GetOutput returns the indexed details of the output identified by the
	// given txid and output index.
	GetOutput(txid string, vout uint32) (Output, error)
}
