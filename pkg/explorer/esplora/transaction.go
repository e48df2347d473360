package esplora

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pegin-network/pegin-daemon/pkg/explorer"
)

func (e *esplora) GetTransactionHex(hash string) (string, error) {
	return e.getTransactionHex(hash)
}

func (e *esplora) IsTransactionConfirmed(hash string) (bool, error) {
	status, err := e.getTransactionStatus(hash)
	if err != nil {
		return false, err
	}
	return status.Confirmed(), nil
}

func (e *esplora) GetTransactionStatus(
	hash string,
) (explorer.TransactionStatus, error) {
	return e.getTransactionStatus(hash)
}

func (e *esplora) GetFeeEstimates() (map[string]float64, error) {
	url := fmt.Sprintf("%s/fee-estimates", e.apiURL)
	status, resp, err := e.httpGet(url)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf(resp)
	}

	estimates := map[string]float64{}
	if err := json.Unmarshal([]byte(resp), &estimates); err != nil {
		return nil, err
	}

	return estimates, nil
}

func (e *esplora) BroadcastTransaction(txHex string) (string, error) {
	url := fmt.Sprintf("%s/tx", e.apiURL)
	headers := map[string]string{
		"Content-Type": "text/plain",
	}

	status, resp, err := e.httpPost(url, txHex, headers)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf(resp)
	}

	return resp, nil
}

func (e *esplora) GetBlockHeight() (int, error) {
	url := fmt.Sprintf("%s/blocks/tip/height", e.apiURL)
	status, resp, err := e.httpGet(url)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf(resp)
	}

	return strconv.Atoi(resp)
}

func (e *esplora) getTransactionHex(hash string) (string, error) {
	url := fmt.Sprintf("%s/tx/%s/hex", e.apiURL, hash)
	status, resp, err := e.httpGet(url)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf(resp)
	}

	return resp, nil
}

func (e *esplora) getTransactionStatus(
	hash string,
) (explorer.TransactionStatus, error) {
	url := fmt.Sprintf("%s/tx/%s/status", e.apiURL, hash)
	status, resp, err := e.httpGet(url)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf(resp)
	}

	var txStatus txStatus
	if err := json.Unmarshal([]byte(resp), &txStatus); err != nil {
		return nil, err
	}

	return txStatus, nil
}
