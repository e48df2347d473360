package esplora

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/btcsuite/btcd/wire"
	"github.com/pegin-network/pegin-daemon/pkg/explorer"
)

func (e *esplora) GetUnspents(addr string) ([]explorer.Utxo, error) {
	return e.getUnspents(addr)
}

func (e *esplora) getUnspents(addr string) ([]explorer.Utxo, error) {
	url := fmt.Sprintf("%s/address/%s/utxo", e.apiURL, addr)
	status, resp, err := e.httpGet(url)
	if err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %s", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf(resp)
	}

	var witnessOuts []witnessUtxo
	if err := json.Unmarshal([]byte(resp), &witnessOuts); err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %s", err)
	}

	unspents := make([]explorer.Utxo, len(witnessOuts))
	chUnspents := make(chan explorer.Utxo)
	chErr := make(chan error, 1)

	for i := range witnessOuts {
		out := witnessOuts[i]
		go e.getUtxoDetails(out, chUnspents, chErr)

		select {
		case err := <-chErr:
			close(chErr)
			close(chUnspents)
			return nil, fmt.Errorf("error on retrieving utxos: %s", err)
		case unspent := <-chUnspents:
			unspents[i] = unspent
		}
	}

	return unspents, nil
}

func (e *esplora) getUtxoDetails(
	unspent witnessUtxo,
	chUnspents chan explorer.Utxo,
	chErr chan error,
) {
	prevoutTxHex, err := e.getTransactionHex(unspent.Hash())
	if err != nil {
		chErr <- err
		return
	}
	trx, err := txFromHex(prevoutTxHex)
	if err != nil {
		chErr <- err
		return
	}
	if int(unspent.Index()) >= len(trx.TxOut) {
		chErr <- fmt.Errorf(
			"tx %s has no output at index %d", unspent.Hash(), unspent.Index(),
		)
		return
	}
	unspent.UScript = trx.TxOut[unspent.Index()].PkScript

	chUnspents <- unspent
}

func txFromHex(txHex string) (*wire.MsgTx, error) {
	raw, err := hex.DecodeString(txHex)
	if err != nil {
		return nil, err
	}
	tx := &wire.MsgTx{}
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return tx, nil
}
