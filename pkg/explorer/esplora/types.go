package esplora

import (
	"encoding/json"
	"fmt"

	"github.com/pegin-network/pegin-daemon/pkg/explorer"
)

/**** UTXO ****/

// witnessUtxo is the implementation of the explorer's Utxo interface for the
// JSON format returned by the esplora /address/{addr}/utxo endpoint. The
// funding script is not part of the listing and is filled in with a second
// lookup of the funding transaction.
type witnessUtxo struct {
	UHash   string `json:"txid"`
	UIndex  uint32 `json:"vout"`
	UValue  uint64 `json:"value"`
	UStatus status `json:"status"`
	UScript []byte `json:"-"`
}

type status struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight int    `json:"block_height"`
	BlockHash   string `json:"block_hash"`
	BlockTime   int    `json:"block_time"`
}

// NewWitnessUtxo returns an explorer.Utxo built from the given details.
func NewWitnessUtxo(
	hash string, index uint32, value uint64, script []byte, confirmed bool,
) explorer.Utxo {
	return witnessUtxo{
		UHash:   hash,
		UIndex:  index,
		UValue:  value,
		UScript: script,
		UStatus: status{Confirmed: confirmed},
	}
}

// NewUtxoFromJSON is the factory for an Utxo given its JSON format.
func NewUtxoFromJSON(utxoJSON string) (explorer.Utxo, error) {
	u := witnessUtxo{}
	if err := json.Unmarshal([]byte(utxoJSON), &u); err != nil {
		return nil, fmt.Errorf("invalid utxo JSON")
	}
	return u, nil
}

func (u witnessUtxo) Hash() string {
	return u.UHash
}

func (u witnessUtxo) Index() uint32 {
	return u.UIndex
}

func (u witnessUtxo) Value() uint64 {
	return u.UValue
}

func (u witnessUtxo) Script() []byte {
	return u.UScript
}

func (u witnessUtxo) IsConfirmed() bool {
	return u.UStatus.Confirmed
}

/**** TRANSACTION STATUS ****/

// txStatus implements explorer.TransactionStatus interface
type txStatus map[string]interface{}

func (s txStatus) Confirmed() bool {
	iConfirmed := s["confirmed"]
	if iConfirmed == nil {
		return false
	}
	confirmed, ok := iConfirmed.(bool)
	if !ok {
		return false
	}
	return confirmed
}

func (s txStatus) BlockHash() string {
	iBlockHash := s["block_hash"]
	if iBlockHash == nil {
		return ""
	}
	blockHash, ok := iBlockHash.(string)
	if !ok {
		return ""
	}
	return blockHash
}

func (s txStatus) BlockHeight() int {
	iBlockHeight := s["block_height"]
	if iBlockHeight == nil {
		return -1
	}
	blockHeight, ok := iBlockHeight.(float64)
	if !ok {
		return -1
	}
	return int(blockHeight)
}

func (s txStatus) BlockTime() int {
	iBlockTime := s["block_time"]
	if iBlockTime == nil {
		return -1
	}
	blockTime, ok := iBlockTime.(float64)
	if !ok {
		return -1
	}
	return int(blockTime)
}
