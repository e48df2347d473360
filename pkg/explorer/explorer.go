package explorer

// Utxo represents an unspent transaction output on the Bitcoin chain.
type Utxo interface {
	Hash() string
	Index() uint32
	Value() uint64
	Script() []byte
	IsConfirmed() bool
}

// TransactionStatus is the chain status of a transaction.
type TransactionStatus interface {
	Confirmed() bool
	BlockHash() string
	BlockHeight() int
	BlockTime() int
}

// Service is the representation of a block explorer that allows to fetch data
// from the blockchain, to estimate fees and to broadcast transactions.
type Service interface {
	// GetUnspents fetches the utxos of the given address, each completed with
	// the script of the funded output.
	GetUnspents(addr string) (unspents []Utxo, err error)
	// GetTransactionHex fetches the transaction in hex format given its hash.
	GetTransactionHex(txid string) (txhex string, err error)
	// IsTransactionConfirmed returns whether the tx identified by its hash has
	// been included in the blockchain.
	IsTransactionConfirmed(txid string) (confirmed bool, err error)
	// GetTransactionStatus returns the status of the tx identified by its hash.
	GetTransactionStatus(txid string) (status TransactionStatus, err error)
	// GetFeeEstimates returns the fee estimates of the explorer as a map of
	// confirmation target (in blocks) to fee rate in sat/vByte.
	GetFeeEstimates() (estimates map[string]float64, err error)
	// BroadcastTransaction attempts to add the given tx in hex format to the
	// mempool and returns its tx hash.
	BroadcastTransaction(txhex string) (txid string, err error)
	// GetBlockHeight returns the number of blocks of the blockchain.
	GetBlockHeight() (int, error)
}
